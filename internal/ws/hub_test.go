package ws

import (
	"log/slog"
	"testing"
	"time"
)

func recebe(t *testing.T, c *Client, quer string) {
	t.Helper()
	select {
	case got := <-c.Send:
		if string(got) != quer {
			t.Fatalf("got %q, want %q", got, quer)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout esperando %q", quer)
	}
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{Send: make(chan []byte, 1)}
	c2 := &Client{Send: make(chan []byte, 1)}
	h.Register(c1)
	h.Register(c2)

	h.Broadcast([]byte("Cadastro de FUNCIONÁRIO Jose Da Silva"))

	recebe(t, c1, "Cadastro de FUNCIONÁRIO Jose Da Silva")
	recebe(t, c2, "Cadastro de FUNCIONÁRIO Jose Da Silva")
}

func TestHub_SendToClient(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{ID: "alvo", Send: make(chan []byte, 1)}
	c2 := &Client{ID: "outro", Send: make(chan []byte, 1)}
	h.Register(c1)
	h.Register(c2)

	h.SendToClient("alvo", []byte("só para um"))
	recebe(t, c1, "só para um")

	select {
	case got := <-c2.Send:
		t.Fatalf("c2 não devia receber, veio %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_ReplayParaQuemConecta(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{Send: make(chan []byte, 4)}
	h.Register(c1)
	h.Broadcast([]byte("Cadastro de FUNCIONÁRIO Jose Da Silva"))
	h.Broadcast([]byte("Edição de CLIENTE Acme Transportes"))
	recebe(t, c1, "Cadastro de FUNCIONÁRIO Jose Da Silva")
	recebe(t, c1, "Edição de CLIENTE Acme Transportes")

	// quem chega depois recebe o histórico na ordem, só para si
	c2 := &Client{Send: make(chan []byte, 4)}
	h.Register(c2)
	recebe(t, c2, "Cadastro de FUNCIONÁRIO Jose Da Silva")
	recebe(t, c2, "Edição de CLIENTE Acme Transportes")
}

func TestHub_UnregisterFechaOCanal(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c)
	h.Unregister(c)

	select {
	case _, aberto := <-c.Send:
		if aberto {
			t.Fatal("canal devia estar fechado")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout esperando o fechamento do canal")
	}
}

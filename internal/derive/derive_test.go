package derive

import (
	"testing"
	"time"
)

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

// Cenário do cadastro: nascido em 1990-05-15.
func TestIdade_AntesEDepoisDoAniversario(t *testing.T) {
	nasc := dia(1990, 5, 15)

	if got := Idade(nasc, dia(2024, 5, 14)); got != 33 {
		t.Fatalf("véspera: got %d want 33", got)
	}
	if got := Idade(nasc, dia(2024, 5, 15)); got != 34 {
		t.Fatalf("aniversário: got %d want 34", got)
	}
}

func TestIdade_NascimentoVazio(t *testing.T) {
	if got := Idade(time.Time{}, dia(2024, 1, 1)); got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}

// CNH vencida em 2023-10-01, avaliada em 2023-10-06 → -5 dias, Vencido.
func TestDiasRestantes_Vencida(t *testing.T) {
	validade := dia(2023, 10, 1)
	hoje := dia(2023, 10, 6)

	if got := DiasRestantes(validade, hoje); got != -5 {
		t.Fatalf("got %d want -5", got)
	}
	if got := StatusCNH(validade, hoje); got != StatusVencido {
		t.Fatalf("got %q want %q", got, StatusVencido)
	}
}

// O resultado não pode depender da hora do dia da avaliação.
func TestDiasRestantes_NormalizaMeiaNoite(t *testing.T) {
	validade := dia(2023, 10, 10)
	manha := time.Date(2023, 10, 5, 8, 0, 0, 0, time.UTC)
	noite := time.Date(2023, 10, 5, 23, 59, 0, 0, time.UTC)

	if a, b := DiasRestantes(validade, manha), DiasRestantes(validade, noite); a != b || a != 5 {
		t.Fatalf("manhã=%d noite=%d want 5", a, b)
	}
}

func TestStatusCNH_Faixas(t *testing.T) {
	hoje := dia(2024, 1, 1)
	casos := []struct {
		validade time.Time
		want     string
	}{
		{dia(2023, 12, 31), StatusVencido},
		{dia(2024, 1, 1), StatusAVencer},  // 0 dias
		{dia(2024, 1, 31), StatusAVencer}, // 30 dias
		{dia(2024, 2, 1), StatusPrazo},    // 31 dias
		{dia(2025, 6, 1), StatusPrazo},
	}
	for _, c := range casos {
		if got := StatusCNH(c.validade, hoje); got != c.want {
			t.Fatalf("validade=%s: got %q want %q", c.validade.Format("2006-01-02"), got, c.want)
		}
	}
}

// Validade ausente é "sem prazo", não Prazo.
func TestStatusCNH_SemValidade(t *testing.T) {
	if got := StatusCNH(time.Time{}, dia(2024, 1, 1)); got != "" {
		t.Fatalf("got %q want vazio", got)
	}
}

func TestAnosDesde(t *testing.T) {
	if got := AnosDesde(dia(2010, 3, 1), dia(2024, 2, 1)); got != 13 {
		t.Fatalf("got %d want 13", got)
	}
	if got := AnosDesde(time.Time{}, dia(2024, 1, 1)); got != 0 {
		t.Fatalf("vazio: got %d want 0", got)
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/repository"
)

func TestClientes_List(t *testing.T) {
	rm := &clienteRepoMock{
		ListFn: func(_ context.Context, busca string) ([]models.Cliente, error) {
			if busca != "acme" {
				t.Fatalf("busca repassada = %q", busca)
			}
			return []models.Cliente{{Cliente: "Acme", CodigoCliente: "CLI-0000000001"}}, nil
		},
	}
	h := NewClienteHandler(rm, &pubMock{})

	rr := httptest.NewRecorder()
	h.Clientes(rr, httptest.NewRequest(http.MethodGet, "/api/clientes?busca=acme", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "CLI-0000000001") {
		t.Fatalf("código sequencial ausente: %s", rr.Body.String())
	}
}

func TestClientes_Create_NormalizaEPublica(t *testing.T) {
	var publicado string
	rm := &clienteRepoMock{
		CreateFn: func(_ context.Context, c *models.Cliente) (string, error) {
			if c.CNPJ != "12.345.678/0001-90" {
				t.Fatalf("cnpj devia chegar mascarado: %q", c.CNPJ)
			}
			if c.Cliente != "Acme Transportes" {
				t.Fatalf("nome devia chegar canônico: %q", c.Cliente)
			}
			c.ID = "id-1"
			c.CodigoCliente = "CLI-0000000007"
			return "id-1", nil
		},
	}
	pm := &pubMock{
		PublishFn: func(_ context.Context, body string, headers amqp091.Table) error {
			publicado = body
			if headers["entity"] != "cliente" {
				t.Fatalf("header entity = %v", headers["entity"])
			}
			return nil
		},
	}
	h := NewClienteHandler(rm, pm)

	body := `{"cliente":"acme transportes","razao_social":"Acme Ltda","cnpj":"12345678000190"}`
	rr := httptest.NewRecorder()
	h.Clientes(rr, httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewBufferString(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(publicado, "Cadastro de CLIENTE") {
		t.Fatalf("evento: %q", publicado)
	}
}

func TestClientes_Create_CodigoNaoEntraPeloCorpo(t *testing.T) {
	h := NewClienteHandler(&clienteRepoMock{}, &pubMock{})

	// codigo_cliente não existe no DTO; o decode estrito barra
	body := `{"cliente":"Acme","cnpj":"12345678000190","codigo_cliente":"CLI-9999999999"}`
	rr := httptest.NewRecorder()
	h.Clientes(rr, httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewBufferString(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestClientes_Create_CNPJInvalido(t *testing.T) {
	h := NewClienteHandler(&clienteRepoMock{}, &pubMock{})

	body := `{"cliente":"Acme","cnpj":"123"}`
	rr := httptest.NewRecorder()
	h.Clientes(rr, httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewBufferString(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestClienteByID_Delete_PublicaComNome(t *testing.T) {
	var publicado string
	rm := &clienteRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Cliente, error) {
			return &models.Cliente{ID: id, Cliente: "Acme Transportes"}, nil
		},
		DeleteFn: func(_ context.Context, id string) error { return nil },
	}
	pm := &pubMock{
		PublishFn: func(_ context.Context, body string, _ amqp091.Table) error {
			publicado = body
			return nil
		},
	}
	h := NewClienteHandler(rm, pm)

	rr := httptest.NewRecorder()
	h.ClienteByID(rr, httptest.NewRequest(http.MethodDelete, "/api/clientes/id-1", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(publicado, "Exclusão de CLIENTE Acme Transportes") {
		t.Fatalf("evento: %q", publicado)
	}
}

func TestClienteByID_CNPJDuplicado(t *testing.T) {
	rm := &clienteRepoMock{
		ReplaceFn: func(_ context.Context, id string, c *models.Cliente) error {
			return repository.ErrDuplicateCNPJ
		},
	}
	h := NewClienteHandler(rm, &pubMock{})

	body := `{"cliente":"Acme","cnpj":"12345678000190"}`
	rr := httptest.NewRecorder()
	h.ClienteByID(rr, httptest.NewRequest(http.MethodPut, "/api/clientes/id-1", bytes.NewBufferString(body)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestFiliais_List_MontaFiltro(t *testing.T) {
	rm := &filialRepoMock{
		ListFn: func(_ context.Context, filtro repository.FiltroFilial) ([]models.Filial, error) {
			if filtro.Busca != "sul" || filtro.Filial != "SDU" || filtro.Distrital != "Todas" {
				t.Fatalf("filtro mal montado: %+v", filtro)
			}
			return nil, nil
		},
	}
	h := NewFilialHandler(rm, &pubMock{})

	rr := httptest.NewRecorder()
	h.Filiais(rr, httptest.NewRequest(http.MethodGet, "/api/filiais?busca=sul&filial=SDU&distrital=Todas", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestFiliais_Create_SiglaMaiuscula(t *testing.T) {
	rm := &filialRepoMock{
		CreateFn: func(_ context.Context, f *models.Filial) (string, error) {
			if f.Filial != "SDU" {
				t.Fatalf("sigla devia subir para maiúsculas: %q", f.Filial)
			}
			return "id-1", nil
		},
	}
	h := NewFilialHandler(rm, &pubMock{})

	body := `{"filial":"sdu","razao_social":"Base Sul","cnpj":"12345678000190"}`
	rr := httptest.NewRecorder()
	h.Filiais(rr, httptest.NewRequest(http.MethodPost, "/api/filiais", bytes.NewBufferString(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestFornecedores_Create(t *testing.T) {
	rm := &fornecedorRepoMock{
		CreateFn: func(_ context.Context, f *models.Fornecedor) (string, error) {
			if f.TipoFornecedor != "Oficina Mecanica" {
				t.Fatalf("tipo devia chegar canônico: %q", f.TipoFornecedor)
			}
			f.CodigoFornecedor = "FORN-0000000001"
			return "id-1", nil
		},
	}
	h := NewFornecedorHandler(rm, &tipoFornecedorRepoMock{}, &pubMock{})

	body := `{"tipoFornecedor":"oficina mecânica","razao_social":"Oficina do Zé","cnpj":"12345678000190"}`
	rr := httptest.NewRecorder()
	h.Fornecedores(rr, httptest.NewRequest(http.MethodPost, "/api/fornecedores", bytes.NewBufferString(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "FORN-0000000001") {
		t.Fatalf("código sequencial ausente na resposta: %s", rr.Body.String())
	}
}

func TestTiposFornecedor_Post_ParRepetidoDevolveOGravado(t *testing.T) {
	existente := &models.TipoFornecedor{ID: "tp-1", Categoria: "Manutencao", TipoFornecedor: "Oficina Mecanica"}
	tm := &tipoFornecedorRepoMock{
		CreateFn: func(_ context.Context, tf *models.TipoFornecedor) (*models.TipoFornecedor, error) {
			if tf.Categoria != "Manutencao" {
				t.Fatalf("categoria devia chegar canônica: %q", tf.Categoria)
			}
			return existente, nil
		},
	}
	h := NewFornecedorHandler(&fornecedorRepoMock{}, tm, &pubMock{})

	body := `{"categoria":"manutenção","tipoFornecedor":"oficina mecânica"}`
	rr := httptest.NewRecorder()
	h.TiposFornecedor(rr, httptest.NewRequest(http.MethodPost, "/api/fornecedores/tipos", bytes.NewBufferString(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	var got models.TipoFornecedor
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.ID != "tp-1" {
		t.Fatalf("devia voltar o registro já gravado: %+v", got)
	}
}

func TestTiposFornecedor_Post_CamposObrigatorios(t *testing.T) {
	h := NewFornecedorHandler(&fornecedorRepoMock{}, &tipoFornecedorRepoMock{}, &pubMock{})

	rr := httptest.NewRecorder()
	h.TiposFornecedor(rr, httptest.NewRequest(http.MethodPost, "/api/fornecedores/tipos", bytes.NewBufferString(`{"categoria":"Manutencao"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestTipoFornecedorByID_Delete(t *testing.T) {
	tm := &tipoFornecedorRepoMock{
		DeleteFn: func(_ context.Context, id string) error {
			if id != "tp-1" {
				t.Fatalf("id repassado = %q", id)
			}
			return nil
		},
	}
	h := NewFornecedorHandler(&fornecedorRepoMock{}, tm, &pubMock{})

	rr := httptest.NewRecorder()
	h.TipoFornecedorByID(rr, httptest.NewRequest(http.MethodDelete, "/api/fornecedores/tipos/tp-1", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestTipoFornecedorByID_Delete_RotaAntiga(t *testing.T) {
	chamado := false
	tm := &tipoFornecedorRepoMock{
		DeleteFn: func(_ context.Context, id string) error {
			chamado = true
			if id != "tp-2" {
				t.Fatalf("id repassado = %q", id)
			}
			return nil
		},
	}
	h := NewFornecedorHandler(&fornecedorRepoMock{}, tm, &pubMock{})

	rr := httptest.NewRecorder()
	h.TipoFornecedorByID(rr, httptest.NewRequest(http.MethodDelete, "/api/tipoFornecedor/tp-2", nil))
	if rr.Code != http.StatusNoContent || !chamado {
		t.Fatalf("status = %d, chamado = %v", rr.Code, chamado)
	}
}

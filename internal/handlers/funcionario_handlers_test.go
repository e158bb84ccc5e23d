package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/grupolocar/erp-server/internal/anexos"
	"github.com/grupolocar/erp-server/internal/auth"
	"github.com/grupolocar/erp-server/internal/cep"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/repository"
)

var hojeFixo = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

type cepMock struct {
	BuscarFn func(ctx context.Context, v string) (*cep.Endereco, error)
}

func (m *cepMock) Buscar(ctx context.Context, v string) (*cep.Endereco, error) {
	return m.BuscarFn(ctx, v)
}

func novoFuncionarioHandler(rm FuncionarioRepo) *FuncionarioHandler {
	h := NewFuncionarioHandler(rm, &perfilRepoMock{}, &pubMock{}, nil, nil)
	h.Hoje = func() time.Time { return hojeFixo }
	return h
}

func TestFuncionarios_List(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetAllFn: func(_ context.Context) ([]models.Funcionario, error) {
			return []models.Funcionario{{Nome: "Jose Da Silva", CPF: "123.456.789-00"}}, nil
		},
	}
	h := novoFuncionarioHandler(rm)

	rr := httptest.NewRecorder()
	h.Funcionarios(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	var got []models.Funcionario
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 1 || got[0].Nome != "Jose Da Silva" {
		t.Fatalf("payload: %#v", got)
	}
	// a resposta preenche o default do legado
	if got[0].DataUltimoServicoPrestado != "1900-01-01" {
		t.Fatalf("default de dataUltimoServicoPrestado: %q", got[0].DataUltimoServicoPrestado)
	}
}

func TestFuncionarios_List_PorSituacao(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetPorSituacaoFn: func(_ context.Context, situacao string) ([]models.Funcionario, error) {
			if situacao != models.SituacaoFerias {
				t.Fatalf("situacao repassada = %q", situacao)
			}
			return nil, nil
		},
	}
	h := novoFuncionarioHandler(rm)

	rr := httptest.NewRecorder()
	h.Funcionarios(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios?situacao=Férias", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestFuncionarios_Create(t *testing.T) {
	var publicado string
	rm := &funcionarioRepoMock{
		CreateFn: func(_ context.Context, f *models.Funcionario) (string, error) {
			// o handler normaliza antes de persistir
			if f.CPF != "123.456.789-00" {
				t.Fatalf("cpf devia chegar mascarado: %q", f.CPF)
			}
			if f.Nome != "Jose Da Silva" {
				t.Fatalf("nome devia chegar canônico: %q", f.Nome)
			}
			if f.Senha == "" || f.Senha == "segredo123" {
				t.Fatalf("senha devia chegar como hash: %q", f.Senha)
			}
			if !auth.CheckPasswordHash("segredo123", f.Senha) {
				t.Fatalf("hash não confere com a senha")
			}
			f.ID = "id-1"
			return "id-1", nil
		},
	}
	pm := &pubMock{
		PublishFn: func(_ context.Context, body string, _ amqp091.Table) error {
			publicado = body
			return nil
		},
	}
	h := NewFuncionarioHandler(rm, &perfilRepoMock{}, pm, nil, nil)

	body := `{"nome":"josé da silva","cpf":"12345678900","situacao":"Ativo","senha":"segredo123","perfil":"rh"}`
	rr := httptest.NewRecorder()
	h.Funcionarios(rr, httptest.NewRequest(http.MethodPost, "/api/funcionarios", bytes.NewBufferString(body)))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(publicado, "Cadastro de FUNCIONÁRIO") {
		t.Fatalf("evento de auditoria: %q", publicado)
	}
	// a senha nunca volta no JSON
	if strings.Contains(rr.Body.String(), "segredo123") || strings.Contains(rr.Body.String(), `"senha"`) {
		t.Fatalf("senha vazou na resposta: %s", rr.Body.String())
	}
}

func TestFuncionarios_Create_CPFInvalido(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{})

	body := `{"nome":"Jose","cpf":"123"}`
	rr := httptest.NewRecorder()
	h.Funcionarios(rr, httptest.NewRequest(http.MethodPost, "/api/funcionarios", bytes.NewBufferString(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "erro") {
		t.Fatalf("corpo de erro fora do padrão: %s", rr.Body.String())
	}
}

func TestFuncionarios_Create_CPFDuplicado(t *testing.T) {
	rm := &funcionarioRepoMock{
		CreateFn: func(_ context.Context, f *models.Funcionario) (string, error) {
			return "", repository.ErrDuplicateCPF
		},
	}
	h := novoFuncionarioHandler(rm)

	body := `{"nome":"Jose","cpf":"12345678900"}`
	rr := httptest.NewRecorder()
	h.Funcionarios(rr, httptest.NewRequest(http.MethodPost, "/api/funcionarios", bytes.NewBufferString(body)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestFuncionarios_Create_CampoDesconhecido(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{})

	body := `{"nome":"Jose","cpf":"12345678900","campo_inventado":1}`
	rr := httptest.NewRecorder()
	h.Funcionarios(rr, httptest.NewRequest(http.MethodPost, "/api/funcionarios", bytes.NewBufferString(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("campo desconhecido devia dar 400, veio %d", rr.Code)
	}
}

func TestFuncionarioByID_Get_NaoEncontrado(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Funcionario, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := novoFuncionarioHandler(rm)

	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios/nao-existe", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestFuncionarioByID_Put_PreservaAnexosESenha(t *testing.T) {
	atual := &models.Funcionario{
		ID:   "id-1",
		Nome: "Jose Da Silva",
		CPF:  "123.456.789-00",
		Arquivos: models.Arquivos{
			Curriculo: []string{"170_Jose-curriculo.pdf"},
		},
		Senha: "$2a$10$hashantigo",
	}
	rm := &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Funcionario, error) {
			return atual, nil
		},
		ReplaceFn: func(_ context.Context, id string, f *models.Funcionario) error {
			if len(f.Arquivos.Curriculo) != 1 {
				t.Fatalf("anexos deviam sobreviver ao PUT: %#v", f.Arquivos)
			}
			if f.Senha != "$2a$10$hashantigo" {
				t.Fatalf("senha devia ser preservada sem senha no corpo: %q", f.Senha)
			}
			return nil
		},
	}
	h := novoFuncionarioHandler(rm)

	body := `{"nome":"José da Silva","cpf":"12345678900","situacao":"Férias"}`
	req := httptest.NewRequest(http.MethodPut, "/api/funcionarios/id-1", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestFuncionarioByID_Delete(t *testing.T) {
	var publicado string
	rm := &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Funcionario, error) {
			return &models.Funcionario{ID: id, Nome: "Jose Da Silva"}, nil
		},
		DeleteFn: func(_ context.Context, id string) error { return nil },
	}
	pm := &pubMock{
		PublishFn: func(_ context.Context, body string, _ amqp091.Table) error {
			publicado = body
			return nil
		},
	}
	h := NewFuncionarioHandler(rm, &perfilRepoMock{}, pm, nil, nil)

	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, httptest.NewRequest(http.MethodDelete, "/api/funcionarios/id-1", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(publicado, "Exclusão de FUNCIONÁRIO Jose Da Silva") {
		t.Fatalf("evento: %q", publicado)
	}
}

func TestPorStatusCNH(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetAllFn: func(_ context.Context) ([]models.Funcionario, error) {
			return []models.Funcionario{
				{Nome: "Vencida", CPF: "1", ValidadeCNH: "2023-01-01"},
				{Nome: "Em Dia", CPF: "2", ValidadeCNH: "2030-01-01"},
			}, nil
		},
	}
	h := novoFuncionarioHandler(rm)

	rr := httptest.NewRecorder()
	h.PorStatusCNH(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios/funcionarios-status/vencido", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	var got []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 1 || got[0]["nome"] != "Vencida" {
		t.Fatalf("payload: %#v", got)
	}
}

func TestPorStatusCNH_Desconhecido(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{})
	rr := httptest.NewRecorder()
	h.PorStatusCNH(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios/funcionarios-status/qualquer", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestVisao_FacetasEPaginacao(t *testing.T) {
	funcionarios := make([]models.Funcionario, 0, 15)
	for i := 0; i < 12; i++ {
		funcionarios = append(funcionarios, models.Funcionario{Nome: "Ativo Fulano", CPF: "x", Situacao: models.SituacaoAtivo})
	}
	for i := 0; i < 3; i++ {
		funcionarios = append(funcionarios, models.Funcionario{Nome: "Inativo Beltrano", CPF: "y", Situacao: models.SituacaoInativo})
	}
	rm := &funcionarioRepoMock{
		GetAllFn: func(_ context.Context) ([]models.Funcionario, error) { return funcionarios, nil },
	}
	h := novoFuncionarioHandler(rm)

	rr := httptest.NewRecorder()
	h.Visao(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios/visao?situacao=Ativo&pagina=2", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}

	var got struct {
		Itens        []map[string]any `json:"itens"`
		Pagina       int              `json:"pagina"`
		TotalPaginas int              `json:"total_paginas"`
		Total        int              `json:"total"`
		Estatisticas struct {
			PorSituacao map[string]int `json:"por_situacao"`
		} `json:"estatisticas"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v\nbody=%s", err, rr.Body.String())
	}
	if got.Total != 12 || got.TotalPaginas != 2 || got.Pagina != 2 || len(got.Itens) != 2 {
		t.Fatalf("paginação: %+v", got)
	}
	// estatísticas sobre a lista inteira, não a filtrada
	if got.Estatisticas.PorSituacao[models.SituacaoInativo] != 3 {
		t.Fatalf("estatísticas deviam ignorar o filtro: %+v", got.Estatisticas)
	}
}

func TestBuscarCEP(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{})
	h.CEP = &cepMock{
		BuscarFn: func(_ context.Context, v string) (*cep.Endereco, error) {
			if v != "01310100" {
				t.Fatalf("cep repassado = %q", v)
			}
			return &cep.Endereco{Logradouro: "Avenida Paulista", UF: "SP"}, nil
		},
	}

	rr := httptest.NewRecorder()
	h.BuscarCEP(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios/cep/01310100", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	h.CEP = &cepMock{
		BuscarFn: func(_ context.Context, v string) (*cep.Endereco, error) {
			return nil, cep.ErrCEPNaoEncontrado
		},
	}
	rr = httptest.NewRecorder()
	h.BuscarCEP(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios/cep/99999999", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("cep inexistente devia dar 404, veio %d", rr.Code)
	}
}

func TestPerfilIdeal_Cruzamento(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetAllFn: func(_ context.Context) ([]models.Funcionario, error) {
			return []models.Funcionario{
				// 34 anos, habilitado desde 2010, 2 filhos
				{Nome: "Casa", CPF: "1", DataNascimento: "1990-05-15", EmissaoCNH: "2010-01-01", EstadoCivil: "Casado", Filhos: 2},
				// novo demais
				{Nome: "Jovem", CPF: "2", DataNascimento: "2005-01-01", EmissaoCNH: "2023-01-01", EstadoCivil: "Casado", Filhos: 2},
			}, nil
		},
	}
	perfil := &perfilRepoMock{
		GetFn: func(_ context.Context) (*models.PerfilIdeal, error) {
			return &models.PerfilIdeal{
				IdadeMin:            25,
				IdadeMax:            45,
				TempoHabilitacaoMin: 5,
				EstadoCivil:         "Casado",
				FilhosMin:           1,
			}, nil
		},
	}
	h := NewFuncionarioHandler(rm, perfil, &pubMock{}, nil, nil)
	h.Hoje = func() time.Time { return hojeFixo }

	rr := httptest.NewRecorder()
	h.PerfilIdeal(rr, httptest.NewRequest(http.MethodGet, "/api/funcionarios/perfil-ideal", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	var got []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 1 || got[0]["nome"] != "Casa" {
		t.Fatalf("cruzamento: %#v", got)
	}
}

func corpoEdicaoComAnexos(t *testing.T, dados string, novos, ecoados map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("dados", dados); err != nil {
		t.Fatal(err)
	}
	for slot, nome := range novos {
		fw, err := mw.CreateFormFile(slot, nome)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte("conteudo novo")); err != nil {
			t.Fatal(err)
		}
	}
	for slot, nome := range ecoados {
		if err := mw.WriteField(slot+"_existente", nome); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, mw.FormDataContentType()
}

func storeComAnexo(t *testing.T, nome string) *anexos.Store {
	t.Helper()
	st, err := anexos.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(st.Caminho(nome), []byte("antigo"), 0o644); err != nil {
		t.Fatal(err)
	}
	return st
}

func repoComAnexoGravado(gravado **models.Funcionario) *funcionarioRepoMock {
	return &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Funcionario, error) {
			f := &models.Funcionario{ID: id, Nome: "Jose Da Silva", CPF: "123.456.789-00", Senha: "$2a$10$hashantigo"}
			f.Arquivos.SetSlot(models.SlotCurriculo, []string{"antigo.pdf"})
			return f, nil
		},
		ReplaceFn: func(_ context.Context, _ string, f *models.Funcionario) error {
			*gravado = f
			return nil
		},
	}
}

func TestFuncionarioComAnexos_Put_ArquivoNovoSupersedeOAntigo(t *testing.T) {
	st := storeComAnexo(t, "antigo.pdf")
	var gravado *models.Funcionario
	h := NewFuncionarioHandler(repoComAnexoGravado(&gravado), &perfilRepoMock{}, &pubMock{}, st, nil)

	body, ct := corpoEdicaoComAnexos(t,
		`{"nome":"josé da silva","cpf":"12345678900","situacao":"Ativo"}`,
		map[string]string{models.SlotCurriculo: "novo.pdf"}, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/funcionarios/com-anexos/abc", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ComAnexosByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if gravado == nil {
		t.Fatal("Replace não foi chamado")
	}
	slot := gravado.Arquivos.Slot(models.SlotCurriculo)
	if len(slot) != 1 || !strings.HasSuffix(slot[0], "-curriculo.pdf") {
		t.Fatalf("slot depois do upload: %#v", slot)
	}
	if _, err := os.Stat(st.Caminho("antigo.pdf")); !os.IsNotExist(err) {
		t.Fatal("o anexo superado devia sair do disco")
	}
	if _, err := os.Stat(st.Caminho(slot[0])); err != nil {
		t.Fatalf("anexo novo não gravado: %v", err)
	}
	// corpo sem senha preserva o hash gravado
	if gravado.Senha != "$2a$10$hashantigo" {
		t.Fatalf("senha = %q", gravado.Senha)
	}
}

func TestFuncionarioComAnexos_Put_SlotNaoEcoadoELimpo(t *testing.T) {
	st := storeComAnexo(t, "antigo.pdf")
	var gravado *models.Funcionario
	h := NewFuncionarioHandler(repoComAnexoGravado(&gravado), &perfilRepoMock{}, &pubMock{}, st, nil)

	body, ct := corpoEdicaoComAnexos(t,
		`{"nome":"josé da silva","cpf":"12345678900"}`, nil, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/funcionarios/com-anexos/abc", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ComAnexosByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if slot := gravado.Arquivos.Slot(models.SlotCurriculo); len(slot) != 0 {
		t.Fatalf("slot devia esvaziar: %#v", slot)
	}
	if _, err := os.Stat(st.Caminho("antigo.pdf")); !os.IsNotExist(err) {
		t.Fatal("o anexo do slot limpo devia sair do disco")
	}
}

func TestFuncionarioComAnexos_Put_SlotEcoadoPermanece(t *testing.T) {
	st := storeComAnexo(t, "antigo.pdf")
	var gravado *models.Funcionario
	h := NewFuncionarioHandler(repoComAnexoGravado(&gravado), &perfilRepoMock{}, &pubMock{}, st, nil)

	body, ct := corpoEdicaoComAnexos(t,
		`{"nome":"josé da silva","cpf":"12345678900"}`,
		nil, map[string]string{models.SlotCurriculo: "antigo.pdf"})
	req := httptest.NewRequest(http.MethodPut, "/api/funcionarios/com-anexos/abc", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ComAnexosByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if slot := gravado.Arquivos.Slot(models.SlotCurriculo); len(slot) != 1 || slot[0] != "antigo.pdf" {
		t.Fatalf("slot ecoado devia permanecer: %#v", slot)
	}
	if _, err := os.Stat(st.Caminho("antigo.pdf")); err != nil {
		t.Fatalf("anexo ecoado sumiu do disco: %v", err)
	}
}

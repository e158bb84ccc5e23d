package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/normalize"
	"github.com/grupolocar/erp-server/internal/utils"
)

type FornecedorRepo interface {
	List(ctx context.Context, busca string) ([]models.Fornecedor, error)
	GetByID(ctx context.Context, id string) (*models.Fornecedor, error)
	Create(ctx context.Context, f *models.Fornecedor) (string, error)
	Replace(ctx context.Context, id string, f *models.Fornecedor) error
	Delete(ctx context.Context, id string) error
}

type TipoFornecedorRepo interface {
	List(ctx context.Context) ([]models.TipoFornecedor, error)
	Create(ctx context.Context, t *models.TipoFornecedor) (*models.TipoFornecedor, error)
	Delete(ctx context.Context, id string) error
}

type FornecedorHandler struct {
	Repo  FornecedorRepo
	Tipos TipoFornecedorRepo
	Pub   Publisher
}

func NewFornecedorHandler(repo FornecedorRepo, tipos TipoFornecedorRepo, pub Publisher) *FornecedorHandler {
	return &FornecedorHandler{Repo: repo, Tipos: tipos, Pub: pub}
}

// Fornecedores atende /api/fornecedores: GET (?busca=) e POST.
func (h *FornecedorHandler) Fornecedores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		list, err := h.Repo.List(ctx, r.URL.Query().Get("busca"))
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto FornecedorDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarRegistro(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		f := dto.paraModelo()
		normalize.Fornecedor(&f)

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &f); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Cadastro", &f)
		utils.WriteJSON(w, http.StatusCreated, f)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// FornecedorByID atende /api/fornecedores/{id}: GET, PUT e DELETE.
func (h *FornecedorHandler) FornecedorByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r.URL.Path, "fornecedores")
	if !ok {
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		f, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, f)

	case http.MethodPut:
		var dto FornecedorDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarRegistro(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		f := dto.paraModelo()
		normalize.Fornecedor(&f)

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if err := h.Repo.Replace(ctx, id, &f); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Edição", &f)
		utils.WriteJSON(w, http.StatusOK, f)

	case http.MethodDelete:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()

		f, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		if err := h.Repo.Delete(ctx, id); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Exclusão", f)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// TiposFornecedor atende /api/fornecedores/tipos: o catálogo categoria/tipo.
// POST de um par já existente devolve o registro gravado, sem duplicar.
func (h *FornecedorHandler) TiposFornecedor(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		list, err := h.Tipos.List(ctx)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto TipoFornecedorDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if strings.TrimSpace(dto.Categoria) == "" || strings.TrimSpace(dto.TipoFornecedor) == "" {
			utils.BadRequest(w, "categoria e tipoFornecedor são obrigatórios")
			return
		}

		t := models.TipoFornecedor{Categoria: dto.Categoria, TipoFornecedor: dto.TipoFornecedor}
		normalize.TipoFornecedor(&t)

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		gravado, err := h.Tipos.Create(ctx, &t)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusCreated, gravado)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// TipoFornecedorByID atende DELETE /api/fornecedores/tipos/{id} e o apelido
// antigo DELETE /api/tipoFornecedor/{id}.
func (h *FornecedorHandler) TipoFornecedorByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	partes := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	id := partes[len(partes)-1]
	if id == "" || id == "tipos" || id == "tipoFornecedor" {
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	if err := h.Tipos.Delete(ctx, id); err != nil {
		respondErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FornecedorHandler) publishEvent(acao string, f *models.Fornecedor) {
	if h.Pub == nil || f == nil {
		return
	}
	msg := fmt.Sprintf("%s de FORNECEDOR %s", acao, f.RazaoSocial)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":    strings.ToLower(acao),
		"entity":    "fornecedor",
		"entity_id": f.ID,
		"cnpj":      f.CNPJ,
		"nome":      f.RazaoSocial,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

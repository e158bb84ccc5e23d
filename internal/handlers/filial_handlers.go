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
	"github.com/grupolocar/erp-server/internal/repository"
	"github.com/grupolocar/erp-server/internal/utils"
)

type FilialRepo interface {
	List(ctx context.Context, filtro repository.FiltroFilial) ([]models.Filial, error)
	GetByID(ctx context.Context, id string) (*models.Filial, error)
	Create(ctx context.Context, f *models.Filial) (string, error)
	Replace(ctx context.Context, id string, f *models.Filial) error
	Delete(ctx context.Context, id string) error
}

type FilialHandler struct {
	Repo FilialRepo
	Pub  Publisher
}

func NewFilialHandler(repo FilialRepo, pub Publisher) *FilialHandler {
	return &FilialHandler{Repo: repo, Pub: pub}
}

// Filiais atende /api/filiais: GET com busca e facetas (filial, distrital,
// responsavel, cidade; "Todos"/"Todas" não restringe) e POST.
func (h *FilialHandler) Filiais(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filtro := repository.FiltroFilial{
			Busca:       q.Get("busca"),
			Filial:      q.Get("filial"),
			Distrital:   q.Get("distrital"),
			Responsavel: q.Get("responsavel"),
			Cidade:      q.Get("cidade"),
		}

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		list, err := h.Repo.List(ctx, filtro)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto FilialDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarRegistro(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		f := dto.paraModelo()
		normalize.Filial(&f)

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

// FilialByID atende /api/filiais/{id}: GET, PUT e DELETE.
func (h *FilialHandler) FilialByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r.URL.Path, "filiais")
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
		var dto FilialDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarRegistro(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		f := dto.paraModelo()
		normalize.Filial(&f)

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

func (h *FilialHandler) publishEvent(acao string, f *models.Filial) {
	if h.Pub == nil || f == nil {
		return
	}
	nome := f.Filial
	if nome == "" {
		nome = f.RazaoSocial
	}
	msg := fmt.Sprintf("%s de FILIAL %s", acao, nome)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":    strings.ToLower(acao),
		"entity":    "filial",
		"entity_id": f.ID,
		"cnpj":      f.CNPJ,
		"nome":      nome,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

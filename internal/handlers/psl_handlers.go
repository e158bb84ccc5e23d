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

type PslRepo interface {
	List(ctx context.Context, filtro repository.FiltroPsl) ([]models.Psl, error)
	GetByID(ctx context.Context, id string) (*models.Psl, error)
	Create(ctx context.Context, p *models.Psl) (string, error)
	Replace(ctx context.Context, id string, p *models.Psl) error
	Delete(ctx context.Context, id string) error
}

type PslDTO struct {
	Data          string `json:"data"` // YYYY-MM-DD
	Filial        string `json:"filial"`
	Distrital     string `json:"distrital,omitempty"`
	OcorrenciaPsl string `json:"ocorrencia_psl"`
	Observacao    string `json:"observacao,omitempty"`
}

func validarPsl(d PslDTO) error {
	if normalize.ParseData(d.Data).IsZero() {
		return fmt.Errorf("data inválida: %q", d.Data)
	}
	if strings.TrimSpace(d.Filial) == "" {
		return fmt.Errorf("filial é obrigatória")
	}
	if strings.TrimSpace(d.OcorrenciaPsl) == "" {
		return fmt.Errorf("ocorrencia_psl é obrigatória")
	}
	return nil
}

func (d PslDTO) paraModelo() models.Psl {
	return models.Psl{
		Data:          normalize.ParseData(d.Data),
		Filial:        d.Filial,
		Distrital:     d.Distrital,
		OcorrenciaPsl: d.OcorrenciaPsl,
		Observacao:    d.Observacao,
	}
}

type PslHandler struct {
	Repo PslRepo
	Pub  Publisher
}

func NewPslHandler(repo PslRepo, pub Publisher) *PslHandler {
	return &PslHandler{Repo: repo, Pub: pub}
}

// Ocorrencias atende /api/psl: GET com busca, facetas e intervalo de datas
// ([data_inicio, data_fim], fim incluindo o dia inteiro), e POST.
func (h *PslHandler) Ocorrencias(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filtro := repository.FiltroPsl{
			Busca:      q.Get("busca"),
			Filial:     q.Get("filial"),
			Distrital:  q.Get("distrital"),
			Ocorrencia: q.Get("ocorrencia"),
			DataInicio: normalize.ParseData(q.Get("data_inicio")),
			DataFim:    normalize.ParseData(q.Get("data_fim")),
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
		var dto PslDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarPsl(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		p := dto.paraModelo()
		normalize.Psl(&p)

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &p); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Cadastro", &p)
		utils.WriteJSON(w, http.StatusCreated, p)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// OcorrenciaByID atende /api/psl/{id}: GET, PUT e DELETE.
func (h *PslHandler) OcorrenciaByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r.URL.Path, "psl")
	if !ok {
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		p, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, p)

	case http.MethodPut:
		var dto PslDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarPsl(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		p := dto.paraModelo()
		normalize.Psl(&p)

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if err := h.Repo.Replace(ctx, id, &p); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Edição", &p)
		utils.WriteJSON(w, http.StatusOK, p)

	case http.MethodDelete:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()

		p, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		if err := h.Repo.Delete(ctx, id); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Exclusão", p)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *PslHandler) publishEvent(acao string, p *models.Psl) {
	if h.Pub == nil || p == nil {
		return
	}
	msg := fmt.Sprintf("%s de OCORRÊNCIA PSL %s (%s)", acao, p.OcorrenciaPsl, p.Filial)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":    strings.ToLower(acao),
		"entity":    "psl",
		"entity_id": p.ID,
		"filial":    p.Filial,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

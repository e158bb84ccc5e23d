package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/grupolocar/erp-server/internal/agenda"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

type AgendaRepo interface {
	List(ctx context.Context, data string) ([]models.AgendaRecord, error)
	ImportBatch(ctx context.Context, recs []models.AgendaRecord) (int, error)
	UpdateHoraInicio(ctx context.Context, id, hora string) error
	Delete(ctx context.Context, id string) error
}

type AgendaHandler struct {
	Repo AgendaRepo
}

func NewAgendaHandler(repo AgendaRepo) *AgendaHandler {
	return &AgendaHandler{Repo: repo}
}

// Agenda atende /api/agenda: GET lista (?data=YYYY-MM-DD) e POST importa a
// planilha xlsx (multipart, campo "planilha").
func (h *AgendaHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		list, err := h.Repo.List(ctx, r.URL.Query().Get("data"))
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			utils.BadRequest(w, "multipart inválido: "+err.Error())
			return
		}
		file, _, err := r.FormFile("planilha")
		if err != nil {
			utils.BadRequest(w, "campo planilha é obrigatório")
			return
		}
		defer file.Close()

		recs, err := agenda.Importar(file)
		if err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		n, err := h.Repo.ImportBatch(ctx, recs)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusCreated, map[string]any{
			"importados": n,
			"registros":  recs,
		})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type HoraDTO struct {
	HoraInicio string `json:"hora_inicio"`
}

// AgendaByID atende /api/agenda/{id}/hora (PUT, a única edição permitida) e
// DELETE /api/agenda/{id}.
func (h *AgendaHandler) AgendaByID(w http.ResponseWriter, r *http.Request) {
	resto := strings.TrimPrefix(r.URL.Path, "/api/agenda/")
	parts := strings.Split(strings.Trim(resto, "/"), "/")

	switch {
	case len(parts) == 2 && parts[1] == "hora" && r.Method == http.MethodPut:
		var dto HoraDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		hora := agenda.NormalizarHora(dto.HoraInicio)
		if !agenda.HoraValida(hora) {
			utils.BadRequest(w, "hora_inicio deve ser HH:MM de meia em meia hora")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if err := h.Repo.UpdateHoraInicio(ctx, parts[0], hora); err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"hora_inicio": hora})

	case len(parts) == 1 && parts[0] != "" && r.Method == http.MethodDelete:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if err := h.Repo.Delete(ctx, parts[0]); err != nil {
			respondErro(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

type LogRepo interface {
	Create(ctx context.Context, e *models.LogEntry) (string, error)
	List(ctx context.Context, limit int64) ([]models.LogEntry, error)
}

type LogDTO struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Route   string         `json:"route,omitempty"`
	Method  string         `json:"method,omitempty"`
	UserID  string         `json:"userId,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type LogHandler struct {
	Repo LogRepo
}

func NewLogHandler(repo LogRepo) *LogHandler {
	return &LogHandler{Repo: repo}
}

// Logs atende /api/logs: POST registra uma entrada na trilha, GET lista as
// mais recentes (?limit=).
func (h *LogHandler) Logs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var limit int64
		if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil {
			limit = v
		}
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		list, err := h.Repo.List(ctx, limit)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto LogDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if strings.TrimSpace(dto.Message) == "" {
			utils.BadRequest(w, "message é obrigatória")
			return
		}
		level := strings.ToLower(strings.TrimSpace(dto.Level))
		switch level {
		case "":
			level = "info"
		case "info", "warn", "error":
		default:
			utils.BadRequest(w, "level deve ser info, warn ou error")
			return
		}

		e := models.LogEntry{
			Level:   level,
			Message: dto.Message,
			Route:   dto.Route,
			Method:  dto.Method,
			IP:      r.RemoteAddr,
			UserID:  dto.UserID,
			Meta:    dto.Meta,
		}
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &e); err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusCreated, e)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

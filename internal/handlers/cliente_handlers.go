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

type ClienteRepo interface {
	List(ctx context.Context, busca string) ([]models.Cliente, error)
	GetByID(ctx context.Context, id string) (*models.Cliente, error)
	Create(ctx context.Context, c *models.Cliente) (string, error)
	Replace(ctx context.Context, id string, c *models.Cliente) error
	Delete(ctx context.Context, id string) error
}

type ClienteHandler struct {
	Repo ClienteRepo
	Pub  Publisher
}

func NewClienteHandler(repo ClienteRepo, pub Publisher) *ClienteHandler {
	return &ClienteHandler{Repo: repo, Pub: pub}
}

// Clientes atende /api/clientes: GET (?busca=) e POST.
func (h *ClienteHandler) Clientes(w http.ResponseWriter, r *http.Request) {
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
		var dto ClienteDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarRegistro(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		c := dto.paraModelo()
		normalize.Cliente(&c)

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &c); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Cadastro", &c)
		utils.WriteJSON(w, http.StatusCreated, c)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ClienteByID atende /api/clientes/{id}: GET, PUT e DELETE.
func (h *ClienteHandler) ClienteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r.URL.Path, "clientes")
	if !ok {
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, c)

	case http.MethodPut:
		var dto ClienteDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarRegistro(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		c := dto.paraModelo()
		normalize.Cliente(&c)

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		// o replace preserva codigo_cliente e created_at do documento atual
		if err := h.Repo.Replace(ctx, id, &c); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Edição", &c)
		utils.WriteJSON(w, http.StatusOK, c)

	case http.MethodDelete:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()

		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		if err := h.Repo.Delete(ctx, id); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Exclusão", c)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ClienteHandler) publishEvent(acao string, c *models.Cliente) {
	if h.Pub == nil || c == nil {
		return
	}
	nome := c.Cliente
	if nome == "" {
		nome = c.RazaoSocial
	}
	msg := fmt.Sprintf("%s de CLIENTE %s", acao, nome)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":    strings.ToLower(acao),
		"entity":    "cliente",
		"entity_id": c.ID,
		"cnpj":      c.CNPJ,
		"nome":      nome,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

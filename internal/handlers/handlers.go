// Package handlers expõe a API REST. Cada entidade tem seu handler com um
// switch por método, no padrão do mux da biblioteca padrão: rota exata para
// a coleção, rota com barra final para o recurso por id.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/grupolocar/erp-server/internal/repository"
	"github.com/grupolocar/erp-server/internal/utils"
)

const tempoLimite = 5 * time.Second

type Publisher interface {
	Publish(ctx context.Context, body string, headers amqp091.Table) error
	Close() error
}

// idDaRota extrai o {id} de /api/<recurso>/{id}.
func idDaRota(path, recurso string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] == recurso && parts[2] != "" {
		return parts[2], true
	}
	return "", false
}

// respondErro traduz os erros sentinela do armazenamento para HTTP.
func respondErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
	case errors.Is(err, repository.ErrDuplicateCPF):
		utils.Erro(w, http.StatusConflict, "cpf já cadastrado")
	case errors.Is(err, repository.ErrDuplicateCNPJ):
		utils.Erro(w, http.StatusConflict, "cnpj já cadastrado")
	case errors.Is(err, repository.ErrDuplicateUsername):
		utils.Erro(w, http.StatusConflict, "username já cadastrado")
	case errors.Is(err, repository.ErrStorageUnavailable):
		utils.Erro(w, http.StatusServiceUnavailable, "armazenamento indisponível")
	default:
		utils.Erro(w, http.StatusInternalServerError, err.Error())
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

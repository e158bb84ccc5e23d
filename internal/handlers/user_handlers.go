package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/grupolocar/erp-server/internal/auth"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/normalize"
	"github.com/grupolocar/erp-server/internal/repository"
	"github.com/grupolocar/erp-server/internal/utils"
)

type UserRepo interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) (string, error)
	Update(ctx context.Context, id string, u *models.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}

type UserDTO struct {
	Username         string   `json:"username"`
	Password         string   `json:"password,omitempty"`
	Nome             string   `json:"nome,omitempty"`
	Email            string   `json:"email,omitempty"`
	Role             string   `json:"role"`
	PermittedModules []string `json:"permittedModules,omitempty"`
}

type SenhaDTO struct {
	Password string `json:"password"`
}

func validarUser(d UserDTO, novo bool) error {
	if strings.TrimSpace(d.Username) == "" {
		return errors.New("username é obrigatório")
	}
	if novo && len(d.Password) < 6 {
		return errors.New("password deve ter ao menos 6 caracteres")
	}
	if !models.RoleValida(d.Role) {
		return fmt.Errorf("role desconhecida: %s", d.Role)
	}
	return nil
}

type UserHandler struct {
	Repo          UserRepo
	JWTSecret     string
	JWTExpiration time.Duration
}

func NewUserHandler(repo UserRepo, secret string, expiration time.Duration) *UserHandler {
	return &UserHandler{Repo: repo, JWTSecret: secret, JWTExpiration: expiration}
}

// Usuarios atende /api/usuarios: GET lista e POST cria.
func (h *UserHandler) Usuarios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		list, err := h.Repo.List(ctx)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto UserDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarUser(dto, true); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		hash, err := auth.HashPassword(dto.Password)
		if err != nil {
			respondErro(w, err)
			return
		}
		u := models.User{
			Username:         strings.TrimSpace(dto.Username),
			Password:         hash,
			Nome:             normalize.Nome(dto.Nome),
			Email:            normalize.Email(dto.Email),
			Role:             dto.Role,
			PermittedModules: dto.PermittedModules,
		}

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &u); err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusCreated, u)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// UsuarioByID atende /api/usuarios/{id} (GET, PUT, DELETE) e
// PUT /api/usuarios/{id}/senha para troca de senha.
func (h *UserHandler) UsuarioByID(w http.ResponseWriter, r *http.Request) {
	resto := strings.TrimPrefix(r.URL.Path, "/api/usuarios/")
	parts := strings.Split(strings.Trim(resto, "/"), "/")

	if len(parts) == 2 && parts[1] == "senha" {
		h.trocarSenha(w, r, parts[0])
		return
	}
	if len(parts) != 1 || parts[0] == "" {
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
		return
	}
	id := parts[0]

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		u, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, u)

	case http.MethodPut:
		var dto UserDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarUser(dto, false); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if dto.Password != "" {
			utils.BadRequest(w, "senha muda em /api/usuarios/{id}/senha")
			return
		}

		u := models.User{
			Username:         strings.TrimSpace(dto.Username),
			Nome:             normalize.Nome(dto.Nome),
			Email:            normalize.Email(dto.Email),
			Role:             dto.Role,
			PermittedModules: dto.PermittedModules,
		}
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if err := h.Repo.Update(ctx, id, &u); err != nil {
			respondErro(w, err)
			return
		}
		atualizado, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, atualizado)

	case http.MethodDelete:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if err := h.Repo.Delete(ctx, id); err != nil {
			respondErro(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) trocarSenha(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var dto SenhaDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, "json inválido: "+err.Error())
		return
	}
	if len(dto.Password) < 6 {
		utils.BadRequest(w, "password deve ter ao menos 6 caracteres")
		return
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		respondErro(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	if err := h.Repo.UpdatePassword(ctx, id, hash); err != nil {
		respondErro(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "senha atualizada"})
}

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login atende POST /api/auth/login: valida as credenciais e emite o JWT.
// Usuário inexistente e senha errada respondem igual, sem vazar qual foi.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var dto LoginDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, "json inválido: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	u, err := h.Repo.GetByUsername(ctx, strings.TrimSpace(dto.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Erro(w, http.StatusUnauthorized, "credenciais inválidas")
			return
		}
		respondErro(w, err)
		return
	}
	if !auth.CheckPasswordHash(dto.Password, u.Password) {
		utils.Erro(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}

	token, err := auth.GenerateJWT(u.ID, u.Role, h.JWTSecret, h.JWTExpiration)
	if err != nil {
		respondErro(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u,
	})
}

// Me atende GET /api/auth/me: o usuário da sessão do token.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s, ok := auth.FromContext(r.Context())
	if !ok {
		utils.Erro(w, http.StatusUnauthorized, "sessão ausente")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	u, err := h.Repo.GetByID(ctx, s.UserID)
	if err != nil {
		respondErro(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/grupolocar/erp-server/internal/auth"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/repository"
)

const segredoTeste = "segredo-de-teste"

func novoUserHandler(rm UserRepo) *UserHandler {
	return NewUserHandler(rm, segredoTeste, time.Hour)
}

func TestUsuarios_Create(t *testing.T) {
	rm := &userRepoMock{
		CreateFn: func(_ context.Context, u *models.User) (string, error) {
			if u.Username != "maria" {
				t.Fatalf("username: %q", u.Username)
			}
			if !auth.CheckPasswordHash("senha123", u.Password) {
				t.Fatalf("senha devia chegar como hash bcrypt")
			}
			return "id-1", nil
		},
	}
	h := novoUserHandler(rm)

	body := `{"username":"maria","password":"senha123","role":"rh"}`
	rr := httptest.NewRecorder()
	h.Usuarios(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewBufferString(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	// o hash nunca sai no JSON
	if strings.Contains(rr.Body.String(), "password") || strings.Contains(rr.Body.String(), "$2a$") {
		t.Fatalf("hash vazou na resposta: %s", rr.Body.String())
	}
}

func TestUsuarios_Create_SenhaCurta(t *testing.T) {
	h := novoUserHandler(&userRepoMock{})

	body := `{"username":"maria","password":"123","role":"rh"}`
	rr := httptest.NewRecorder()
	h.Usuarios(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewBufferString(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestUsuarios_Create_RoleDesconhecida(t *testing.T) {
	h := novoUserHandler(&userRepoMock{})

	body := `{"username":"maria","password":"senha123","role":"chefe"}`
	rr := httptest.NewRecorder()
	h.Usuarios(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewBufferString(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestUsuarios_Create_UsernameDuplicado(t *testing.T) {
	rm := &userRepoMock{
		CreateFn: func(_ context.Context, u *models.User) (string, error) {
			return "", repository.ErrDuplicateUsername
		},
	}
	h := novoUserHandler(rm)

	body := `{"username":"maria","password":"senha123","role":"rh"}`
	rr := httptest.NewRecorder()
	h.Usuarios(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewBufferString(body)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestUsuarioByID_Put_RejeitaSenhaNoCorpo(t *testing.T) {
	h := novoUserHandler(&userRepoMock{})

	body := `{"username":"maria","password":"outra123","role":"rh"}`
	rr := httptest.NewRecorder()
	h.UsuarioByID(rr, httptest.NewRequest(http.MethodPut, "/api/usuarios/id-1", bytes.NewBufferString(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "senha") {
		t.Fatalf("erro devia apontar a rota de senha: %s", rr.Body.String())
	}
}

func TestUsuarioByID_TrocarSenha(t *testing.T) {
	rm := &userRepoMock{
		UpdatePasswordFn: func(_ context.Context, id, hash string) error {
			if id != "id-1" {
				t.Fatalf("id repassado = %q", id)
			}
			if !auth.CheckPasswordHash("novaSenha1", hash) {
				t.Fatalf("hash não confere")
			}
			return nil
		},
	}
	h := novoUserHandler(rm)

	body := `{"password":"novaSenha1"}`
	rr := httptest.NewRecorder()
	h.UsuarioByID(rr, httptest.NewRequest(http.MethodPut, "/api/usuarios/id-1/senha", bytes.NewBufferString(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
}

func usuarioComSenha(t *testing.T, senha string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(senha)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &models.User{ID: "id-1", Username: "maria", Password: hash, Role: "rh"}
}

func TestLogin(t *testing.T) {
	u := usuarioComSenha(t, "senha123")
	rm := &userRepoMock{
		GetByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			if username != "maria" {
				return nil, repository.ErrNotFound
			}
			return u, nil
		},
	}
	h := novoUserHandler(rm)

	body := `{"username":"maria","password":"senha123"}`
	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}

	var got struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	claims, err := auth.ValidateJWT(got.Token, segredoTeste)
	if err != nil {
		t.Fatalf("token emitido não valida: %v", err)
	}
	if claims.UserID != "id-1" || claims.Role != "rh" {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestLogin_CredenciaisInvalidasRespondemIgual(t *testing.T) {
	u := usuarioComSenha(t, "senha123")
	rm := &userRepoMock{
		GetByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			if username != "maria" {
				return nil, repository.ErrNotFound
			}
			return u, nil
		},
	}
	h := novoUserHandler(rm)

	corpos := []string{
		`{"username":"nao-existe","password":"senha123"}`, // usuário desconhecido
		`{"username":"maria","password":"errada"}`,        // senha errada
	}
	var respostas []string
	for _, body := range corpos {
		rr := httptest.NewRecorder()
		h.Login(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body)))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d para %s", rr.Code, body)
		}
		respostas = append(respostas, rr.Body.String())
	}
	if respostas[0] != respostas[1] {
		t.Fatalf("as duas falhas deviam responder idêntico: %q vs %q", respostas[0], respostas[1])
	}
}

func TestMe(t *testing.T) {
	u := usuarioComSenha(t, "senha123")
	rm := &userRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.User, error) {
			if id != "id-1" {
				return nil, repository.ErrNotFound
			}
			return u, nil
		},
	}
	h := novoUserHandler(rm)

	token, err := auth.GenerateJWT("id-1", "rh", segredoTeste, time.Hour)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	auth.Middleware(segredoTeste, http.HandlerFunc(h.Me)).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"username":"maria"`) {
		t.Fatalf("payload: %s", rr.Body.String())
	}
}

func TestMe_SemSessao(t *testing.T) {
	h := novoUserHandler(&userRepoMock{})

	rr := httptest.NewRecorder()
	h.Me(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rr.Code)
	}
}

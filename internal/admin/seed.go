package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/grupolocar/erp-server/internal/auth"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/normalize"
	"github.com/grupolocar/erp-server/internal/repository"
)

//go:embed seeds/usuarios.json
var usuariosJSON []byte

//go:embed seeds/funcionarios.json
var funcionariosJSON []byte

// SeedUsuarios cria os usuários iniciais se a coleção estiver vazia. Todos
// entram com a senha informada (trocada depois em /api/usuarios/{id}/senha).
// Idempotente: com qualquer usuário já gravado, não faz nada.
func SeedUsuarios(ctx context.Context, repo *repository.UserRepository, senha string, log *slog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("seed_usuarios_skip", "existing", n)
		return nil
	}

	var items []models.User
	if err := json.Unmarshal(usuariosJSON, &items); err != nil {
		return err
	}
	hash, err := auth.HashPassword(senha)
	if err != nil {
		return err
	}

	for _, u := range items {
		u.Password = hash
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := repo.Create(ictx, &u)
		cancel()
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateUsername) {
				log.Info("seed_user_exists", "username", u.Username)
				continue
			}
			return err
		}
		log.Info("seed_user_created", "username", u.Username, "role", u.Role)
	}
	log.Info("seed_usuarios_done", "count", len(items))
	return nil
}

// SeedFuncionarios grava um quadro de exemplo. Idempotente pelo CPF: quem já
// existe é ignorado.
func SeedFuncionarios(ctx context.Context, repo *repository.FuncionarioRepository, log *slog.Logger) error {
	var items []models.Funcionario
	if err := json.Unmarshal(funcionariosJSON, &items); err != nil {
		return err
	}

	for _, f := range items {
		normalize.Funcionario(&f)

		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := repo.Create(ictx, &f)
		cancel()
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateCPF) {
				log.Info("seed_funcionario_exists", "cpf", f.CPF)
				continue
			}
			return err
		}
		log.Info("seed_funcionario_created", "nome", f.Nome)
	}
	log.Info("seed_funcionarios_done", "count", len(items))
	return nil
}

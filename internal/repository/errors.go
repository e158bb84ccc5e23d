package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Taxonomia de erros da camada de dados. Os handlers mapeiam:
// duplicado -> 409, não encontrado -> 404, indisponível -> 503.
var (
	ErrDuplicateCNPJ      = errors.New("cnpj already exists")
	ErrDuplicateCPF       = errors.New("cpf already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrNotFound           = errors.New("record not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// isDup identifica violação de índice único (código 11000 do Mongo).
func isDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

// indisponivel embrulha qualquer outra falha do driver como indisponibilidade
// do banco: a API responde 503 em vez de devolver lista vazia em silêncio.
func indisponivel(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

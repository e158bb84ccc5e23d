package models

import "time"

// Papéis de acesso (mesmo conjunto do enum antigo).
var Roles = []string{
	"admin",
	"rh",
	"usuario",
	"Departamento Pessoal",
	"Comercial",
	"Financeiro",
	"Controladoria",
}

func RoleValida(r string) bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

type User struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Username         string    `bson:"username" json:"username"` // único
	Password         string    `bson:"password" json:"-"`        // hash bcrypt, nunca sai no JSON
	Nome             string    `bson:"nome,omitempty" json:"nome,omitempty"`
	Email            string    `bson:"email,omitempty" json:"email,omitempty"`
	Role             string    `bson:"role" json:"role"`
	PermittedModules []string  `bson:"permittedModules" json:"permittedModules"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

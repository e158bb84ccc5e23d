package models

import "time"

// AgendaRecord: linha importada da planilha de programação comercial.
// Após a importação só o horário de início pode ser editado.
type AgendaRecord struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Loc        string    `bson:"loc" json:"loc"`
	Data       string    `bson:"data" json:"data"`               // YYYY-MM-DD
	HoraInicio string    `bson:"hora_inicio" json:"hora_inicio"` // HH:MM, de meia em meia hora
	Filial     string    `bson:"filial" json:"filial"`
	Operador   string    `bson:"operador" json:"operador"`
	Status     string    `bson:"status" json:"status"` // ok | warning | error
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// PerfilIdeal: configuração única usada para cruzar funcionários com o
// perfil desejado pela operação.
type PerfilIdeal struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	IdadeMin            int       `bson:"idade_min" json:"idade_min"`
	IdadeMax            int       `bson:"idade_max" json:"idade_max"`
	TempoHabilitacaoMin int       `bson:"tempo_habilitacao_min" json:"tempo_habilitacao_min"`
	EstadoCivil         string    `bson:"estado_civil" json:"estado_civil"`
	FilhosMin           int       `bson:"filhos_min" json:"filhos_min"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}

package models

import "time"

// Psl: ocorrência operacional por filial/distrital/data. A data é Date de
// verdade (não string) porque a listagem filtra por intervalo.
type Psl struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Data          time.Time `bson:"data" json:"data"`
	Filial        string    `bson:"filial" json:"filial"`
	Distrital     string    `bson:"distrital" json:"distrital"`
	OcorrenciaPsl string    `bson:"ocorrencia_psl" json:"ocorrencia_psl"`
	Observacao    string    `bson:"observacao" json:"observacao"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

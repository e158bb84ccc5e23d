package models

import "time"

/*
Cadastros comerciais (cliente, filial, fornecedor): mesma forma de registro,
cada um com um código sequencial legível atribuído UMA vez na criação e
imutável depois (CLI-/FIL-/FORN- + sequência com zero à esquerda).
*/

type Cliente struct {
	ID            string `bson:"_id,omitempty" json:"id"`
	CodigoCliente string `bson:"codigo_cliente" json:"codigo_cliente"`

	Cliente      string `bson:"cliente" json:"cliente"`
	RazaoSocial  string `bson:"razao_social" json:"razao_social"`
	CNPJ         string `bson:"cnpj" json:"cnpj"` // único (mascarado)
	InscEstadual string `bson:"insc_estadual,omitempty" json:"insc_estadual,omitempty"`
	Responsavel  string `bson:"responsavel" json:"responsavel"`
	Cargo        string `bson:"cargo" json:"cargo"`
	Telefone     string `bson:"telefone" json:"telefone"`
	Email        string `bson:"email" json:"email"`
	Endereco     string `bson:"endereco" json:"endereco"`
	Complemento  string `bson:"complemento,omitempty" json:"complemento,omitempty"`
	Cidade       string `bson:"cidade" json:"cidade"`
	Bairro       string `bson:"bairro" json:"bairro"`
	Estado       string `bson:"estado" json:"estado"`
	CEP          string `bson:"cep" json:"cep"`
	Observacao   string `bson:"observacao,omitempty" json:"observacao,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Filial struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	CodigoFilial string `bson:"codigo_filial" json:"codigo_filial"`

	Cliente      string `bson:"cliente" json:"cliente"`
	Filial       string `bson:"filial" json:"filial"` // sigla: só letras, maiúsculas, máx 10
	Distrital    string `bson:"distrital" json:"distrital"`
	RazaoSocial  string `bson:"razao_social" json:"razao_social"`
	CNPJ         string `bson:"cnpj" json:"cnpj"` // único (mascarado)
	InscEstadual string `bson:"insc_estadual,omitempty" json:"insc_estadual,omitempty"`
	Responsavel  string `bson:"responsavel" json:"responsavel"`
	Cargo        string `bson:"cargo" json:"cargo"`
	Telefone     string `bson:"telefone" json:"telefone"`
	Email        string `bson:"email" json:"email"`
	Endereco     string `bson:"endereco" json:"endereco"`
	Complemento  string `bson:"complemento,omitempty" json:"complemento,omitempty"`
	Cidade       string `bson:"cidade" json:"cidade"`
	Bairro       string `bson:"bairro" json:"bairro"`
	Estado       string `bson:"estado" json:"estado"`
	CEP          string `bson:"cep" json:"cep"`
	Observacao   string `bson:"observacao,omitempty" json:"observacao,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Fornecedor struct {
	ID               string `bson:"_id,omitempty" json:"id"`
	CodigoFornecedor string `bson:"codigo_fornecedor" json:"codigo_fornecedor"`

	TipoFornecedor string `bson:"tipoFornecedor" json:"tipoFornecedor"`
	RazaoSocial    string `bson:"razao_social" json:"razao_social"`
	CNPJ           string `bson:"cnpj" json:"cnpj"` // único (mascarado)
	InscEstadual   string `bson:"insc_estadual,omitempty" json:"insc_estadual,omitempty"`
	Responsavel    string `bson:"responsavel" json:"responsavel"`
	Cargo          string `bson:"cargo" json:"cargo"`
	Telefone       string `bson:"telefone" json:"telefone"`
	Email          string `bson:"email" json:"email"`
	Endereco       string `bson:"endereco" json:"endereco"`
	Complemento    string `bson:"complemento,omitempty" json:"complemento,omitempty"`
	Cidade         string `bson:"cidade" json:"cidade"`
	Bairro         string `bson:"bairro" json:"bairro"`
	Estado         string `bson:"estado" json:"estado"`
	CEP            string `bson:"cep" json:"cep"`

	Banco   string `bson:"banco,omitempty" json:"banco,omitempty"`
	Agencia string `bson:"agencia,omitempty" json:"agencia,omitempty"`
	Conta   string `bson:"conta,omitempty" json:"conta,omitempty"`
	Pix     string `bson:"pix,omitempty" json:"pix,omitempty"`

	Observacao string `bson:"observacao,omitempty" json:"observacao,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type TipoFornecedor struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Categoria      string    `bson:"categoria" json:"categoria"`
	TipoFornecedor string    `bson:"tipoFornecedor" json:"tipoFornecedor"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

package handlers

import "github.com/grupolocar/erp-server/internal/models"

// DTOs dos cadastros comerciais. O código sequencial nunca entra: quem
// manda codigo_* no corpo tem o valor ignorado, o banco é a fonte.

type ClienteDTO struct {
	Cliente      string `json:"cliente"`
	RazaoSocial  string `json:"razao_social"`
	CNPJ         string `json:"cnpj"`
	InscEstadual string `json:"insc_estadual,omitempty"`
	Responsavel  string `json:"responsavel,omitempty"`
	Cargo        string `json:"cargo,omitempty"`
	Telefone     string `json:"telefone,omitempty"`
	Email        string `json:"email,omitempty"`
	Endereco     string `json:"endereco,omitempty"`
	Complemento  string `json:"complemento,omitempty"`
	Cidade       string `json:"cidade,omitempty"`
	Bairro       string `json:"bairro,omitempty"`
	Estado       string `json:"estado,omitempty"`
	CEP          string `json:"cep,omitempty"`
	Observacao   string `json:"observacao,omitempty"`
}

func (d ClienteDTO) cnpj() string     { return d.CNPJ }
func (d ClienteDTO) cep() string      { return d.CEP }
func (d ClienteDTO) telefone() string { return d.Telefone }
func (d ClienteDTO) nomeExibicao() string {
	if d.Cliente != "" {
		return d.Cliente
	}
	return d.RazaoSocial
}

func (d ClienteDTO) paraModelo() models.Cliente {
	return models.Cliente{
		Cliente:      d.Cliente,
		RazaoSocial:  d.RazaoSocial,
		CNPJ:         d.CNPJ,
		InscEstadual: d.InscEstadual,
		Responsavel:  d.Responsavel,
		Cargo:        d.Cargo,
		Telefone:     d.Telefone,
		Email:        d.Email,
		Endereco:     d.Endereco,
		Complemento:  d.Complemento,
		Cidade:       d.Cidade,
		Bairro:       d.Bairro,
		Estado:       d.Estado,
		CEP:          d.CEP,
		Observacao:   d.Observacao,
	}
}

type FilialDTO struct {
	Cliente      string `json:"cliente"`
	Filial       string `json:"filial"`
	Distrital    string `json:"distrital,omitempty"`
	RazaoSocial  string `json:"razao_social"`
	CNPJ         string `json:"cnpj"`
	InscEstadual string `json:"insc_estadual,omitempty"`
	Responsavel  string `json:"responsavel,omitempty"`
	Cargo        string `json:"cargo,omitempty"`
	Telefone     string `json:"telefone,omitempty"`
	Email        string `json:"email,omitempty"`
	Endereco     string `json:"endereco,omitempty"`
	Complemento  string `json:"complemento,omitempty"`
	Cidade       string `json:"cidade,omitempty"`
	Bairro       string `json:"bairro,omitempty"`
	Estado       string `json:"estado,omitempty"`
	CEP          string `json:"cep,omitempty"`
	Observacao   string `json:"observacao,omitempty"`
}

func (d FilialDTO) cnpj() string     { return d.CNPJ }
func (d FilialDTO) cep() string      { return d.CEP }
func (d FilialDTO) telefone() string { return d.Telefone }
func (d FilialDTO) nomeExibicao() string {
	if d.Filial != "" {
		return d.Filial
	}
	return d.RazaoSocial
}

func (d FilialDTO) paraModelo() models.Filial {
	return models.Filial{
		Cliente:      d.Cliente,
		Filial:       d.Filial,
		Distrital:    d.Distrital,
		RazaoSocial:  d.RazaoSocial,
		CNPJ:         d.CNPJ,
		InscEstadual: d.InscEstadual,
		Responsavel:  d.Responsavel,
		Cargo:        d.Cargo,
		Telefone:     d.Telefone,
		Email:        d.Email,
		Endereco:     d.Endereco,
		Complemento:  d.Complemento,
		Cidade:       d.Cidade,
		Bairro:       d.Bairro,
		Estado:       d.Estado,
		CEP:          d.CEP,
		Observacao:   d.Observacao,
	}
}

type FornecedorDTO struct {
	TipoFornecedor string `json:"tipoFornecedor"`
	RazaoSocial    string `json:"razao_social"`
	CNPJ           string `json:"cnpj"`
	InscEstadual   string `json:"insc_estadual,omitempty"`
	Responsavel    string `json:"responsavel,omitempty"`
	Cargo          string `json:"cargo,omitempty"`
	Telefone       string `json:"telefone,omitempty"`
	Email          string `json:"email,omitempty"`
	Endereco       string `json:"endereco,omitempty"`
	Complemento    string `json:"complemento,omitempty"`
	Cidade         string `json:"cidade,omitempty"`
	Bairro         string `json:"bairro,omitempty"`
	Estado         string `json:"estado,omitempty"`
	CEP            string `json:"cep,omitempty"`
	Banco          string `json:"banco,omitempty"`
	Agencia        string `json:"agencia,omitempty"`
	Conta          string `json:"conta,omitempty"`
	Pix            string `json:"pix,omitempty"`
	Observacao     string `json:"observacao,omitempty"`
}

func (d FornecedorDTO) cnpj() string         { return d.CNPJ }
func (d FornecedorDTO) cep() string          { return d.CEP }
func (d FornecedorDTO) telefone() string     { return d.Telefone }
func (d FornecedorDTO) nomeExibicao() string { return d.RazaoSocial }

func (d FornecedorDTO) paraModelo() models.Fornecedor {
	return models.Fornecedor{
		TipoFornecedor: d.TipoFornecedor,
		RazaoSocial:    d.RazaoSocial,
		CNPJ:           d.CNPJ,
		InscEstadual:   d.InscEstadual,
		Responsavel:    d.Responsavel,
		Cargo:          d.Cargo,
		Telefone:       d.Telefone,
		Email:          d.Email,
		Endereco:       d.Endereco,
		Complemento:    d.Complemento,
		Cidade:         d.Cidade,
		Bairro:         d.Bairro,
		Estado:         d.Estado,
		CEP:            d.CEP,
		Banco:          d.Banco,
		Agencia:        d.Agencia,
		Conta:          d.Conta,
		Pix:            d.Pix,
		Observacao:     d.Observacao,
	}
}

type TipoFornecedorDTO struct {
	Categoria      string `json:"categoria"`
	TipoFornecedor string `json:"tipoFornecedor"`
}

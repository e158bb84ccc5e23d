package handlers

import "github.com/grupolocar/erp-server/internal/models"

// FuncionarioDTO espelha o modelo, mas aceita a senha da aba Acesso (que no
// modelo nunca sai no JSON).
type FuncionarioDTO struct {
	Matricula string `json:"matricula,omitempty"`

	Nome        string `json:"nome"`
	Sexo        string `json:"sexo,omitempty"`
	Profissao   string `json:"profissao,omitempty"`
	Situacao    string `json:"situacao,omitempty"`
	Contrato    string `json:"contrato,omitempty"`
	PJ          bool   `json:"pj,omitempty"`
	Telefone    string `json:"telefone,omitempty"`
	Email       string `json:"email,omitempty"`
	EstadoCivil string `json:"estado_civil,omitempty"`
	Filhos      string `json:"filhos,omitempty"`

	DataAdmissao   string `json:"data_admissao,omitempty"`
	DataDemissao   string `json:"data_demissao,omitempty"`
	DataNascimento string `json:"data_nascimento,omitempty"`

	Endereco    string `json:"endereco,omitempty"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro,omitempty"`
	Municipio   string `json:"municipio,omitempty"`
	Estado      string `json:"estado,omitempty"`
	CEP         string `json:"cep,omitempty"`

	Banco   string `json:"banco,omitempty"`
	Agencia string `json:"agencia,omitempty"`
	Conta   string `json:"conta,omitempty"`
	Pix     string `json:"pix,omitempty"`

	CPF string `json:"cpf"`
	RG  string `json:"rg,omitempty"`

	CNH         string   `json:"cnh,omitempty"`
	Categoria   []string `json:"categoria,omitempty"`
	EmissaoCNH  string   `json:"emissao_cnh,omitempty"`
	ValidadeCNH string   `json:"validade_cnh,omitempty"`

	NomeFamiliar    string `json:"nome_familiar,omitempty"`
	ContatoFamiliar string `json:"contato_familiar,omitempty"`
	Indicado        string `json:"indicado,omitempty"`
	Observacao      string `json:"observacao,omitempty"`

	DataUltimoServicoPrestado string `json:"dataUltimoServicoPrestado,omitempty"`

	// Aba Acesso, somente admin
	Senha  string `json:"senha,omitempty"`
	Perfil string `json:"perfil,omitempty"`
}

// paraModelo monta o Funcionario cru; a normalização canônica roda depois,
// no handler. Filhos chega como texto livre do formulário.
func (d FuncionarioDTO) paraModelo() models.Funcionario {
	return models.Funcionario{
		Matricula:      d.Matricula,
		Nome:           d.Nome,
		Sexo:           d.Sexo,
		Profissao:      d.Profissao,
		Situacao:       d.Situacao,
		Contrato:       d.Contrato,
		PJ:             d.PJ,
		Telefone:       d.Telefone,
		Email:          d.Email,
		EstadoCivil:    d.EstadoCivil,
		DataAdmissao:   d.DataAdmissao,
		DataDemissao:   d.DataDemissao,
		DataNascimento: d.DataNascimento,
		Endereco:       d.Endereco,
		Complemento:    d.Complemento,
		Bairro:         d.Bairro,
		Municipio:      d.Municipio,
		Estado:         d.Estado,
		CEP:            d.CEP,
		Banco:          d.Banco,
		Agencia:        d.Agencia,
		Conta:          d.Conta,
		Pix:            d.Pix,
		CPF:            d.CPF,
		RG:             d.RG,
		CNH:            d.CNH,
		Categoria:      d.Categoria,
		EmissaoCNH:     d.EmissaoCNH,
		ValidadeCNH:    d.ValidadeCNH,

		NomeFamiliar:    d.NomeFamiliar,
		ContatoFamiliar: d.ContatoFamiliar,
		Indicado:        d.Indicado,
		Observacao:      d.Observacao,

		DataUltimoServicoPrestado: d.DataUltimoServicoPrestado,

		Perfil: d.Perfil,
	}
}

// PerfilIdealDTO é a configuração do cruzamento de perfil.
type PerfilIdealDTO struct {
	IdadeMin            int    `json:"idade_min"`
	IdadeMax            int    `json:"idade_max"`
	TempoHabilitacaoMin int    `json:"tempo_habilitacao_min"`
	EstadoCivil         string `json:"estado_civil,omitempty"`
	FilhosMin           int    `json:"filhos_min"`
}

package models

import "time"

// Situações de um funcionário.
const (
	SituacaoAprovacaoPendente = "Aprovação Pendente"
	SituacaoEntrevista        = "Entrevista"
	SituacaoAtivo             = "Ativo"
	SituacaoInativo           = "Inativo"
	SituacaoFerias            = "Férias"
	SituacaoBloqueado         = "Bloqueado"
	SituacaoPJ                = "PJ"
)

// CategoriasCNH válidas (subconjunto permitido em Funcionario.Categoria).
var CategoriasCNH = []string{"A", "B", "C", "D", "E"}

// Slots de anexos de um funcionário. Cada slot guarda no máximo um arquivo;
// um novo upload substitui (e apaga do disco) o anterior.
const (
	SlotCNHArquivo            = "cnh_arquivo"
	SlotComprovanteResidencia = "comprovante_residencia"
	SlotNadaConsta            = "nada_consta"
	SlotComprovanteMEI        = "comprovante_mei"
	SlotCurriculo             = "curriculo"
)

var SlotsAnexos = []string{
	SlotCNHArquivo,
	SlotComprovanteResidencia,
	SlotNadaConsta,
	SlotComprovanteMEI,
	SlotCurriculo,
}

// Arquivos: nome do arquivo salvo por slot (lista vazia = slot livre).
type Arquivos struct {
	CNHArquivo            []string `bson:"cnh_arquivo" json:"cnh_arquivo"`
	ComprovanteResidencia []string `bson:"comprovante_residencia" json:"comprovante_residencia"`
	NadaConsta            []string `bson:"nada_consta" json:"nada_consta"`
	ComprovanteMEI        []string `bson:"comprovante_mei" json:"comprovante_mei"`
	Curriculo             []string `bson:"curriculo" json:"curriculo"`
}

// Slot devolve o conteúdo de um slot pelo nome.
func (a *Arquivos) Slot(nome string) []string {
	switch nome {
	case SlotCNHArquivo:
		return a.CNHArquivo
	case SlotComprovanteResidencia:
		return a.ComprovanteResidencia
	case SlotNadaConsta:
		return a.NadaConsta
	case SlotComprovanteMEI:
		return a.ComprovanteMEI
	case SlotCurriculo:
		return a.Curriculo
	}
	return nil
}

// SetSlot substitui o conteúdo de um slot.
func (a *Arquivos) SetSlot(nome string, v []string) {
	switch nome {
	case SlotCNHArquivo:
		a.CNHArquivo = v
	case SlotComprovanteResidencia:
		a.ComprovanteResidencia = v
	case SlotNadaConsta:
		a.NadaConsta = v
	case SlotComprovanteMEI:
		a.ComprovanteMEI = v
	case SlotCurriculo:
		a.Curriculo = v
	}
}

// Datas de formulário trafegam como "YYYY-MM-DD" (vazio = não informado);
// a normalização server-side garante o formato antes de persistir.
type Funcionario struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Matricula string `bson:"matricula,omitempty" json:"matricula,omitempty"`

	Nome        string `bson:"nome" json:"nome"`
	Sexo        string `bson:"sexo,omitempty" json:"sexo,omitempty"`
	Profissao   string `bson:"profissao,omitempty" json:"profissao,omitempty"`
	Situacao    string `bson:"situacao,omitempty" json:"situacao,omitempty"`
	Contrato    string `bson:"contrato,omitempty" json:"contrato,omitempty"`
	PJ          bool   `bson:"pj" json:"pj"`
	Telefone    string `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	EstadoCivil string `bson:"estado_civil,omitempty" json:"estado_civil,omitempty"`
	Filhos      int    `bson:"filhos" json:"filhos"`

	DataAdmissao   string `bson:"data_admissao,omitempty" json:"data_admissao,omitempty"`
	DataDemissao   string `bson:"data_demissao,omitempty" json:"data_demissao,omitempty"`
	DataNascimento string `bson:"data_nascimento,omitempty" json:"data_nascimento,omitempty"`

	Endereco    string `bson:"endereco,omitempty" json:"endereco,omitempty"`
	Complemento string `bson:"complemento,omitempty" json:"complemento,omitempty"`
	Bairro      string `bson:"bairro,omitempty" json:"bairro,omitempty"`
	Municipio   string `bson:"municipio,omitempty" json:"municipio,omitempty"`
	Estado      string `bson:"estado,omitempty" json:"estado,omitempty"`
	CEP         string `bson:"cep,omitempty" json:"cep,omitempty"`

	Banco   string `bson:"banco,omitempty" json:"banco,omitempty"`
	Agencia string `bson:"agencia,omitempty" json:"agencia,omitempty"`
	Conta   string `bson:"conta,omitempty" json:"conta,omitempty"`
	Pix     string `bson:"pix,omitempty" json:"pix,omitempty"`

	CPF string `bson:"cpf" json:"cpf"` // único na coleção (mascarado)
	RG  string `bson:"rg,omitempty" json:"rg,omitempty"`

	CNH         string   `bson:"cnh,omitempty" json:"cnh,omitempty"`
	Categoria   []string `bson:"categoria,omitempty" json:"categoria,omitempty"`
	EmissaoCNH  string   `bson:"emissao_cnh,omitempty" json:"emissao_cnh,omitempty"`
	ValidadeCNH string   `bson:"validade_cnh,omitempty" json:"validade_cnh,omitempty"`

	NomeFamiliar    string `bson:"nome_familiar,omitempty" json:"nome_familiar,omitempty"`
	ContatoFamiliar string `bson:"contato_familiar,omitempty" json:"contato_familiar,omitempty"`
	Indicado        string `bson:"indicado,omitempty" json:"indicado,omitempty"`
	Observacao      string `bson:"observacao,omitempty" json:"observacao,omitempty"`

	DataUltimoServicoPrestado string `bson:"dataUltimoServicoPrestado,omitempty" json:"dataUltimoServicoPrestado,omitempty"`

	Arquivos Arquivos `bson:"arquivos" json:"arquivos"`

	// Aba Acesso (somente admin). Senha nunca sai no JSON.
	Senha  string `bson:"senha,omitempty" json:"-"`
	Perfil string `bson:"perfil,omitempty" json:"perfil,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

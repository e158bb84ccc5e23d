package normalize

import (
	"strings"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

// Funcionario canonicaliza o documento inteiro antes de persistir.
func Funcionario(f *models.Funcionario) {
	f.Nome = Nome(f.Nome)
	f.Sexo = Nome(f.Sexo)
	f.Profissao = Nome(f.Profissao)
	f.Situacao = strings.TrimSpace(f.Situacao)
	f.Contrato = Nome(f.Contrato)
	f.EstadoCivil = Nome(f.EstadoCivil)

	f.Telefone = utils.MaskTelefone(f.Telefone)
	f.Email = Email(f.Email)

	f.Endereco = Nome(f.Endereco)
	f.Complemento = Nome(f.Complemento)
	f.Bairro = Nome(f.Bairro)
	f.Municipio = Nome(f.Municipio)
	f.Estado = UF(f.Estado)
	f.CEP = utils.MaskCEP(f.CEP)

	f.Banco = strings.TrimSpace(f.Banco)
	f.Agencia = strings.TrimSpace(f.Agencia)
	f.Conta = strings.TrimSpace(f.Conta)
	f.Pix = strings.TrimSpace(f.Pix)

	f.CPF = utils.MaskCPF(f.CPF)
	f.RG = utils.MaskRG(f.RG)

	f.CNH = utils.SoDigitos(strings.TrimSpace(f.CNH))
	f.Categoria = Categorias(f.Categoria)

	f.DataAdmissao = Data(f.DataAdmissao)
	f.DataDemissao = Data(f.DataDemissao)
	f.DataNascimento = Data(f.DataNascimento)
	f.EmissaoCNH = Data(f.EmissaoCNH)
	f.ValidadeCNH = Data(f.ValidadeCNH)
	f.DataUltimoServicoPrestado = Data(f.DataUltimoServicoPrestado)

	f.NomeFamiliar = Nome(f.NomeFamiliar)
	f.ContatoFamiliar = utils.MaskTelefone(f.ContatoFamiliar)
	f.Indicado = Nome(f.Indicado)
	f.Observacao = utils.RemoverAcentos(strings.TrimSpace(f.Observacao))
}

// FuncionarioResposta ajusta o documento lido para o formato de resposta:
// datas em ISO, slots de anexos sempre presentes (nunca nil no JSON) e o
// default histórico de dataUltimoServicoPrestado.
func FuncionarioResposta(f *models.Funcionario) {
	f.DataAdmissao = Data(f.DataAdmissao)
	f.DataDemissao = Data(f.DataDemissao)
	f.DataNascimento = Data(f.DataNascimento)
	f.EmissaoCNH = Data(f.EmissaoCNH)
	f.ValidadeCNH = Data(f.ValidadeCNH)
	if Data(f.DataUltimoServicoPrestado) == "" {
		f.DataUltimoServicoPrestado = "1900-01-01"
	}
	for _, slot := range models.SlotsAnexos {
		if f.Arquivos.Slot(slot) == nil {
			f.Arquivos.SetSlot(slot, []string{})
		}
	}
}

package normalize

import (
	"strings"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

// Cliente: normalização campo a campo do cadastro de clientes.
func Cliente(c *models.Cliente) {
	c.Cliente = utils.Truncar(Nome(c.Cliente), 80)
	c.RazaoSocial = NomeLivre(c.RazaoSocial, 100)
	c.CNPJ = utils.MaskCNPJ(c.CNPJ)
	if c.InscEstadual != "" {
		c.InscEstadual = utils.MaskIE(c.InscEstadual)
	}
	c.Responsavel = utils.Truncar(Nome(c.Responsavel), 100)
	c.Cargo = utils.Truncar(Nome(c.Cargo), 70)
	c.Telefone = utils.MaskTelefone(c.Telefone)
	c.Email = utils.Truncar(Email(c.Email), 100)
	c.Endereco = NomeLivre(c.Endereco, 100)
	c.Complemento = NomeLivre(c.Complemento, 70)
	c.Cidade = utils.Truncar(Nome(c.Cidade), 70)
	c.Bairro = utils.Truncar(Nome(c.Bairro), 70)
	c.Estado = UF(c.Estado)
	c.CEP = utils.MaskCEP(c.CEP)
	c.Observacao = NomeLivre(c.Observacao, 100)
}

// Filial: idem, com a sigla em maiúsculas.
func Filial(f *models.Filial) {
	f.Cliente = utils.Truncar(Nome(f.Cliente), 100)
	f.Filial = SiglaFilial(f.Filial)
	f.Distrital = utils.Truncar(Nome(f.Distrital), 70)
	f.RazaoSocial = NomeLivre(f.RazaoSocial, 100)
	f.CNPJ = utils.MaskCNPJ(f.CNPJ)
	if f.InscEstadual != "" {
		f.InscEstadual = utils.MaskIE(f.InscEstadual)
	}
	f.Responsavel = utils.Truncar(Nome(f.Responsavel), 100)
	f.Cargo = utils.Truncar(Nome(f.Cargo), 70)
	f.Telefone = utils.MaskTelefone(f.Telefone)
	f.Email = utils.Truncar(Email(f.Email), 100)
	f.Endereco = NomeLivre(f.Endereco, 100)
	f.Complemento = NomeLivre(f.Complemento, 70)
	f.Cidade = utils.Truncar(Nome(f.Cidade), 70)
	f.Bairro = utils.Truncar(Nome(f.Bairro), 70)
	f.Estado = UF(f.Estado)
	f.CEP = utils.MaskCEP(f.CEP)
	f.Observacao = NomeLivre(f.Observacao, 100)
}

// Fornecedor: idem cliente, mais os dados bancários.
func Fornecedor(f *models.Fornecedor) {
	f.TipoFornecedor = Nome(f.TipoFornecedor)
	f.RazaoSocial = NomeLivre(f.RazaoSocial, 100)
	f.CNPJ = utils.MaskCNPJ(f.CNPJ)
	if f.InscEstadual != "" {
		f.InscEstadual = utils.MaskIE(f.InscEstadual)
	}
	f.Responsavel = utils.Truncar(Nome(f.Responsavel), 100)
	f.Cargo = utils.Truncar(Nome(f.Cargo), 70)
	f.Telefone = utils.MaskTelefone(f.Telefone)
	f.Email = utils.Truncar(Email(f.Email), 100)
	f.Endereco = NomeLivre(f.Endereco, 100)
	f.Complemento = NomeLivre(f.Complemento, 70)
	f.Cidade = utils.Truncar(Nome(f.Cidade), 70)
	f.Bairro = utils.Truncar(Nome(f.Bairro), 70)
	f.Estado = UF(f.Estado)
	f.CEP = utils.MaskCEP(f.CEP)
	f.Banco = utils.Truncar(strings.TrimSpace(f.Banco), 60)
	f.Agencia = utils.Truncar(strings.TrimSpace(f.Agencia), 10)
	f.Conta = utils.Truncar(strings.TrimSpace(f.Conta), 25)
	f.Pix = utils.Truncar(strings.TrimSpace(f.Pix), 35)
	f.Observacao = NomeLivre(f.Observacao, 100)
}

// TipoFornecedor: título simples nos dois campos.
func TipoFornecedor(t *models.TipoFornecedor) {
	t.Categoria = Nome(t.Categoria)
	t.TipoFornecedor = Nome(t.TipoFornecedor)
}

// Psl: filial só sem acentos (sem TitleCase), demais campos com primeira
// maiúscula — o padrão herdado da tela de ocorrências.
func Psl(p *models.Psl) {
	p.Filial = utils.RemoverAcentos(strings.TrimSpace(p.Filial))
	p.Distrital = primeiraMaiuscula(p.Distrital)
	p.OcorrenciaPsl = primeiraMaiuscula(p.OcorrenciaPsl)
	p.Observacao = primeiraMaiuscula(p.Observacao)
}

func primeiraMaiuscula(s string) string {
	s = utils.RemoverAcentos(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	low := strings.ToLower(s)
	return strings.ToUpper(low[:1]) + low[1:]
}

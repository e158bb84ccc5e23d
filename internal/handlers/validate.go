package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

// Validações de formulário. A máscara nunca rejeita nada; quem barra dígito
// faltando ou sobrando é o submit, aqui.

func validarCNPJ(v string) error {
	if len(utils.SoDigitos(v)) != 14 {
		return errors.New("cnpj deve ter exatamente 14 dígitos")
	}
	return nil
}

func validarCEPOpcional(v string) error {
	if v == "" {
		return nil
	}
	if len(utils.SoDigitos(v)) != 8 {
		return errors.New("cep deve ter exatamente 8 dígitos")
	}
	return nil
}

func validarTelefoneOpcional(v string) error {
	if v == "" {
		return nil
	}
	if n := len(utils.SoDigitos(v)); n != 10 && n != 11 {
		return errors.New("telefone deve ter 10 ou 11 dígitos")
	}
	return nil
}

func validarFuncionario(d FuncionarioDTO) error {
	if strings.TrimSpace(d.Nome) == "" {
		return errors.New("nome é obrigatório")
	}
	if len(utils.SoDigitos(d.CPF)) != 11 {
		return errors.New("cpf deve ter exatamente 11 dígitos")
	}
	if err := validarCEPOpcional(d.CEP); err != nil {
		return err
	}
	if err := validarTelefoneOpcional(d.Telefone); err != nil {
		return err
	}
	if d.Situacao != "" && !situacaoValida(d.Situacao) {
		return fmt.Errorf("situação desconhecida: %s", d.Situacao)
	}
	if d.Perfil != "" && !models.RoleValida(d.Perfil) {
		return fmt.Errorf("perfil desconhecido: %s", d.Perfil)
	}
	return nil
}

func situacaoValida(v string) bool {
	for _, s := range []string{
		models.SituacaoAprovacaoPendente,
		models.SituacaoEntrevista,
		models.SituacaoAtivo,
		models.SituacaoInativo,
		models.SituacaoFerias,
		models.SituacaoBloqueado,
		models.SituacaoPJ,
	} {
		if s == v {
			return true
		}
	}
	return false
}

// registroDTO é o esqueleto comum de cliente, filial e fornecedor.
type registroDTO interface {
	cnpj() string
	cep() string
	telefone() string
	nomeExibicao() string
}

func validarRegistro(d registroDTO) error {
	if strings.TrimSpace(d.nomeExibicao()) == "" {
		return errors.New("razão social ou nome de exibição é obrigatório")
	}
	if err := validarCNPJ(d.cnpj()); err != nil {
		return err
	}
	if err := validarCEPOpcional(d.cep()); err != nil {
		return err
	}
	return validarTelefoneOpcional(d.telefone())
}

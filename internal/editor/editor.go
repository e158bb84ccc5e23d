// Package editor implementa o estado do drawer de edição de funcionário:
// abrir para criar ou editar, salvar (create ou update conforme o registro
// já exista), cancelar descartando o rascunho e o preenchimento automático
// de endereço por CEP.
package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/grupolocar/erp-server/internal/cep"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

type Estado int

const (
	Fechado Estado = iota
	AbertoNovo
	AbertoEdicao
)

// Abas do formulário. A aba Acesso (credenciais e perfil) só aparece para
// admin.
const (
	AbaDados   = "Dados"
	AbaContato = "Contato"
	AbaCNH     = "CNH"
	AbaAnexos  = "Anexos"
	AbaAcesso  = "Acesso"
)

// Persistencia é o que o drawer precisa do armazenamento para salvar.
type Persistencia interface {
	Create(ctx context.Context, f *models.Funcionario) (string, error)
	Replace(ctx context.Context, id string, f *models.Funcionario) error
}

type Drawer struct {
	estado     Estado
	rascunho   models.Funcionario
	persistido bool
	role       string
	erro       error
	atualizar  bool

	buscador cep.Buscador
}

func NewDrawer(buscador cep.Buscador) *Drawer {
	return &Drawer{buscador: buscador}
}

func (d *Drawer) Estado() Estado { return d.estado }

// Rascunho expõe o registro em edição para o formulário mexer.
func (d *Drawer) Rascunho() *models.Funcionario { return &d.rascunho }

// Erro devolve a falha do último Salvar, se houve.
func (d *Drawer) Erro() error { return d.erro }

// ConsumirAtualizacao informa (uma vez) que a lista precisa ser recarregada.
func (d *Drawer) ConsumirAtualizacao() bool {
	v := d.atualizar
	d.atualizar = false
	return v
}

// AbrirNovo abre o drawer com um rascunho zerado e um id provisório de
// cliente. O id só vale até o primeiro save.
func (d *Drawer) AbrirNovo(role string) {
	d.estado = AbertoNovo
	d.rascunho = models.Funcionario{
		ID:       uuid.NewString(),
		Situacao: models.SituacaoAprovacaoPendente,
	}
	d.persistido = false
	d.role = role
	d.erro = nil
}

// AbrirEdicao abre o drawer pré-carregado com um registro existente.
func (d *Drawer) AbrirEdicao(role string, f models.Funcionario) {
	d.estado = AbertoEdicao
	d.rascunho = f
	d.persistido = f.ID != ""
	d.role = role
	d.erro = nil
}

// Cancelar fecha e descarta o rascunho. Nenhum I/O acontece.
func (d *Drawer) Cancelar() {
	d.estado = Fechado
	d.rascunho = models.Funcionario{}
	d.erro = nil
}

// Salvar envia o rascunho inteiro: update se o registro já foi persistido,
// create caso contrário. Sucesso fecha o drawer e sinaliza o refresh da
// lista; falha mantém o drawer aberto com o rascunho intacto para retry.
func (d *Drawer) Salvar(ctx context.Context, p Persistencia) error {
	if d.estado == Fechado {
		return nil
	}

	var err error
	if d.persistido {
		err = p.Replace(ctx, d.rascunho.ID, &d.rascunho)
	} else {
		copia := d.rascunho
		copia.ID = "" // o armazenamento atribui o id definitivo
		var id string
		id, err = p.Create(ctx, &copia)
		if err == nil {
			d.rascunho.ID = id
		}
	}

	if err != nil {
		d.erro = err
		return err
	}

	d.estado = Fechado
	d.rascunho = models.Funcionario{}
	d.erro = nil
	d.atualizar = true
	return nil
}

// Abas devolve as abas visíveis para o papel da sessão.
func (d *Drawer) Abas() []string {
	abas := []string{AbaDados, AbaContato, AbaCNH, AbaAnexos}
	if d.role == "admin" {
		abas = append(abas, AbaAcesso)
	}
	return abas
}

// PreencherCEP dispara a consulta quando o valor completa 8 dígitos.
// Sucesso sobrescreve endereço, bairro, município e estado, mas nunca o
// complemento já digitado. Falha é silenciosa: o formulário fica como está.
func (d *Drawer) PreencherCEP(ctx context.Context, valor string) {
	if d.estado == Fechado || d.buscador == nil {
		return
	}
	digitos := utils.SoDigitos(valor)
	if len(digitos) != 8 {
		return
	}

	end, err := d.buscador.Buscar(ctx, digitos)
	if err != nil {
		return
	}

	d.rascunho.CEP = utils.MaskCEP(digitos)
	d.rascunho.Endereco = end.Logradouro
	d.rascunho.Bairro = end.Bairro
	d.rascunho.Municipio = end.Localidade
	d.rascunho.Estado = end.UF
}

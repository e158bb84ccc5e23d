package handlers

import (
	"context"
	"errors"

	"github.com/rabbitmq/amqp091-go"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/repository"
)

// Mocks de campo-função, um por interface de armazenamento. Método sem Fn
// configurado falha alto para o teste apontar o que faltou.

type funcionarioRepoMock struct {
	GetAllFn         func(ctx context.Context) ([]models.Funcionario, error)
	GetPorSituacaoFn func(ctx context.Context, situacao string) ([]models.Funcionario, error)
	FiltroLivreFn    func(ctx context.Context, busca string) ([]models.Funcionario, error)
	GetByIDFn        func(ctx context.Context, id string) (*models.Funcionario, error)
	CreateFn         func(ctx context.Context, f *models.Funcionario) (string, error)
	ReplaceFn        func(ctx context.Context, id string, f *models.Funcionario) error
	DeleteFn         func(ctx context.Context, id string) error
}

func (m *funcionarioRepoMock) GetAll(ctx context.Context) ([]models.Funcionario, error) {
	if m.GetAllFn == nil {
		return nil, errors.New("GetAllFn not set")
	}
	return m.GetAllFn(ctx)
}
func (m *funcionarioRepoMock) GetPorSituacao(ctx context.Context, situacao string) ([]models.Funcionario, error) {
	if m.GetPorSituacaoFn == nil {
		return nil, errors.New("GetPorSituacaoFn not set")
	}
	return m.GetPorSituacaoFn(ctx, situacao)
}
func (m *funcionarioRepoMock) FiltroLivre(ctx context.Context, busca string) ([]models.Funcionario, error) {
	if m.FiltroLivreFn == nil {
		return nil, errors.New("FiltroLivreFn not set")
	}
	return m.FiltroLivreFn(ctx, busca)
}
func (m *funcionarioRepoMock) GetByID(ctx context.Context, id string) (*models.Funcionario, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *funcionarioRepoMock) Create(ctx context.Context, f *models.Funcionario) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, f)
}
func (m *funcionarioRepoMock) Replace(ctx context.Context, id string, f *models.Funcionario) error {
	if m.ReplaceFn == nil {
		return errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, f)
}
func (m *funcionarioRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type perfilRepoMock struct {
	GetFn  func(ctx context.Context) (*models.PerfilIdeal, error)
	SaveFn func(ctx context.Context, p *models.PerfilIdeal) error
}

func (m *perfilRepoMock) Get(ctx context.Context) (*models.PerfilIdeal, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx)
}
func (m *perfilRepoMock) Save(ctx context.Context, p *models.PerfilIdeal) error {
	if m.SaveFn == nil {
		return errors.New("SaveFn not set")
	}
	return m.SaveFn(ctx, p)
}

type clienteRepoMock struct {
	ListFn    func(ctx context.Context, busca string) ([]models.Cliente, error)
	GetByIDFn func(ctx context.Context, id string) (*models.Cliente, error)
	CreateFn  func(ctx context.Context, c *models.Cliente) (string, error)
	ReplaceFn func(ctx context.Context, id string, c *models.Cliente) error
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *clienteRepoMock) List(ctx context.Context, busca string) ([]models.Cliente, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, busca)
}
func (m *clienteRepoMock) GetByID(ctx context.Context, id string) (*models.Cliente, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *clienteRepoMock) Create(ctx context.Context, c *models.Cliente) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, c)
}
func (m *clienteRepoMock) Replace(ctx context.Context, id string, c *models.Cliente) error {
	if m.ReplaceFn == nil {
		return errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, c)
}
func (m *clienteRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type filialRepoMock struct {
	ListFn    func(ctx context.Context, filtro repository.FiltroFilial) ([]models.Filial, error)
	GetByIDFn func(ctx context.Context, id string) (*models.Filial, error)
	CreateFn  func(ctx context.Context, f *models.Filial) (string, error)
	ReplaceFn func(ctx context.Context, id string, f *models.Filial) error
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *filialRepoMock) List(ctx context.Context, filtro repository.FiltroFilial) ([]models.Filial, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, filtro)
}
func (m *filialRepoMock) GetByID(ctx context.Context, id string) (*models.Filial, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *filialRepoMock) Create(ctx context.Context, f *models.Filial) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, f)
}
func (m *filialRepoMock) Replace(ctx context.Context, id string, f *models.Filial) error {
	if m.ReplaceFn == nil {
		return errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, f)
}
func (m *filialRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type pslRepoMock struct {
	ListFn    func(ctx context.Context, filtro repository.FiltroPsl) ([]models.Psl, error)
	GetByIDFn func(ctx context.Context, id string) (*models.Psl, error)
	CreateFn  func(ctx context.Context, p *models.Psl) (string, error)
	ReplaceFn func(ctx context.Context, id string, p *models.Psl) error
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *pslRepoMock) List(ctx context.Context, filtro repository.FiltroPsl) ([]models.Psl, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, filtro)
}
func (m *pslRepoMock) GetByID(ctx context.Context, id string) (*models.Psl, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *pslRepoMock) Create(ctx context.Context, p *models.Psl) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, p)
}
func (m *pslRepoMock) Replace(ctx context.Context, id string, p *models.Psl) error {
	if m.ReplaceFn == nil {
		return errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, p)
}
func (m *pslRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type userRepoMock struct {
	ListFn           func(ctx context.Context) ([]models.User, error)
	GetByIDFn        func(ctx context.Context, id string) (*models.User, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*models.User, error)
	CreateFn         func(ctx context.Context, u *models.User) (string, error)
	UpdateFn         func(ctx context.Context, id string, u *models.User) error
	UpdatePasswordFn func(ctx context.Context, id, hash string) error
	DeleteFn         func(ctx context.Context, id string) error
}

func (m *userRepoMock) List(ctx context.Context) ([]models.User, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx)
}
func (m *userRepoMock) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFn == nil {
		return nil, errors.New("GetByUsernameFn not set")
	}
	return m.GetByUsernameFn(ctx, username)
}
func (m *userRepoMock) Create(ctx context.Context, u *models.User) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, u)
}
func (m *userRepoMock) Update(ctx context.Context, id string, u *models.User) error {
	if m.UpdateFn == nil {
		return errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, u)
}
func (m *userRepoMock) UpdatePassword(ctx context.Context, id, hash string) error {
	if m.UpdatePasswordFn == nil {
		return errors.New("UpdatePasswordFn not set")
	}
	return m.UpdatePasswordFn(ctx, id, hash)
}
func (m *userRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type fornecedorRepoMock struct {
	ListFn    func(ctx context.Context, busca string) ([]models.Fornecedor, error)
	GetByIDFn func(ctx context.Context, id string) (*models.Fornecedor, error)
	CreateFn  func(ctx context.Context, f *models.Fornecedor) (string, error)
	ReplaceFn func(ctx context.Context, id string, f *models.Fornecedor) error
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *fornecedorRepoMock) List(ctx context.Context, busca string) ([]models.Fornecedor, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, busca)
}
func (m *fornecedorRepoMock) GetByID(ctx context.Context, id string) (*models.Fornecedor, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *fornecedorRepoMock) Create(ctx context.Context, f *models.Fornecedor) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, f)
}
func (m *fornecedorRepoMock) Replace(ctx context.Context, id string, f *models.Fornecedor) error {
	if m.ReplaceFn == nil {
		return errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, f)
}
func (m *fornecedorRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type tipoFornecedorRepoMock struct {
	ListFn   func(ctx context.Context) ([]models.TipoFornecedor, error)
	CreateFn func(ctx context.Context, t *models.TipoFornecedor) (*models.TipoFornecedor, error)
	DeleteFn func(ctx context.Context, id string) error
}

func (m *tipoFornecedorRepoMock) List(ctx context.Context) ([]models.TipoFornecedor, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx)
}
func (m *tipoFornecedorRepoMock) Create(ctx context.Context, t *models.TipoFornecedor) (*models.TipoFornecedor, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, t)
}
func (m *tipoFornecedorRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type agendaRepoMock struct {
	ListFn             func(ctx context.Context, data string) ([]models.AgendaRecord, error)
	ImportBatchFn      func(ctx context.Context, recs []models.AgendaRecord) (int, error)
	UpdateHoraInicioFn func(ctx context.Context, id, hora string) error
	DeleteFn           func(ctx context.Context, id string) error
}

func (m *agendaRepoMock) List(ctx context.Context, data string) ([]models.AgendaRecord, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, data)
}
func (m *agendaRepoMock) ImportBatch(ctx context.Context, recs []models.AgendaRecord) (int, error) {
	if m.ImportBatchFn == nil {
		return 0, errors.New("ImportBatchFn not set")
	}
	return m.ImportBatchFn(ctx, recs)
}
func (m *agendaRepoMock) UpdateHoraInicio(ctx context.Context, id, hora string) error {
	if m.UpdateHoraInicioFn == nil {
		return errors.New("UpdateHoraInicioFn not set")
	}
	return m.UpdateHoraInicioFn(ctx, id, hora)
}
func (m *agendaRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type logRepoMock struct {
	CreateFn func(ctx context.Context, e *models.LogEntry) (string, error)
	ListFn   func(ctx context.Context, limit int64) ([]models.LogEntry, error)
}

func (m *logRepoMock) Create(ctx context.Context, e *models.LogEntry) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, e)
}
func (m *logRepoMock) List(ctx context.Context, limit int64) ([]models.LogEntry, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, limit)
}

type pubMock struct {
	PublishFn func(ctx context.Context, body string, headers amqp091.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body string, headers amqp091.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

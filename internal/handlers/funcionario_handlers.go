package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/grupolocar/erp-server/internal/anexos"
	"github.com/grupolocar/erp-server/internal/auth"
	"github.com/grupolocar/erp-server/internal/cep"
	"github.com/grupolocar/erp-server/internal/derive"
	"github.com/grupolocar/erp-server/internal/listview"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/normalize"
	"github.com/grupolocar/erp-server/internal/utils"
)

type FuncionarioRepo interface {
	GetAll(ctx context.Context) ([]models.Funcionario, error)
	GetPorSituacao(ctx context.Context, situacao string) ([]models.Funcionario, error)
	FiltroLivre(ctx context.Context, busca string) ([]models.Funcionario, error)
	GetByID(ctx context.Context, id string) (*models.Funcionario, error)
	Create(ctx context.Context, f *models.Funcionario) (string, error)
	Replace(ctx context.Context, id string, f *models.Funcionario) error
	Delete(ctx context.Context, id string) error
}

type PerfilIdealRepo interface {
	Get(ctx context.Context) (*models.PerfilIdeal, error)
	Save(ctx context.Context, p *models.PerfilIdeal) error
}

type FuncionarioHandler struct {
	Repo   FuncionarioRepo
	Perfil PerfilIdealRepo
	Pub    Publisher
	Anexos *anexos.Store
	CEP    cep.Buscador

	// injetável nos testes; nil usa time.Now
	Hoje func() time.Time
}

func NewFuncionarioHandler(repo FuncionarioRepo, perfil PerfilIdealRepo, pub Publisher, store *anexos.Store, buscador cep.Buscador) *FuncionarioHandler {
	return &FuncionarioHandler{Repo: repo, Perfil: perfil, Pub: pub, Anexos: store, CEP: buscador}
}

func (h *FuncionarioHandler) hoje() time.Time {
	if h.Hoje != nil {
		return h.Hoje()
	}
	return time.Now()
}

// Funcionarios atende /api/funcionarios: GET lista (opcionalmente por
// ?situacao=), POST cria.
func (h *FuncionarioHandler) Funcionarios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()

		var list []models.Funcionario
		var err error
		if situacao := r.URL.Query().Get("situacao"); situacao != "" {
			list, err = h.Repo.GetPorSituacao(ctx, situacao)
		} else {
			list, err = h.Repo.GetAll(ctx)
		}
		if err != nil {
			respondErro(w, err)
			return
		}
		for i := range list {
			normalize.FuncionarioResposta(&list[i])
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto FuncionarioDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarFuncionario(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		f := dto.paraModelo()
		f.Filhos = normalize.Filhos(dto.Filhos)
		normalize.Funcionario(&f)
		if dto.Senha != "" {
			hash, err := auth.HashPassword(dto.Senha)
			if err != nil {
				respondErro(w, err)
				return
			}
			f.Senha = hash
		}

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &f); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Cadastro", &f)
		normalize.FuncionarioResposta(&f)
		utils.WriteJSON(w, http.StatusCreated, f)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// FuncionarioByID atende /api/funcionarios/{id}: GET, PUT (replace) e DELETE.
func (h *FuncionarioHandler) FuncionarioByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r.URL.Path, "funcionarios")
	if !ok {
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		f, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		normalize.FuncionarioResposta(f)
		utils.WriteJSON(w, http.StatusOK, f)

	case http.MethodPut:
		var dto FuncionarioDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if err := validarFuncionario(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()

		atual, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}

		f := dto.paraModelo()
		f.Filhos = normalize.Filhos(dto.Filhos)
		normalize.Funcionario(&f)
		// anexos não trafegam no corpo; o que está gravado permanece
		f.Arquivos = atual.Arquivos
		f.Matricula = atual.Matricula
		if dto.Senha != "" {
			hash, err := auth.HashPassword(dto.Senha)
			if err != nil {
				respondErro(w, err)
				return
			}
			f.Senha = hash
		} else {
			f.Senha = atual.Senha
		}

		if err := h.Repo.Replace(ctx, id, &f); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Edição", &f)
		normalize.FuncionarioResposta(&f)
		utils.WriteJSON(w, http.StatusOK, f)

	case http.MethodDelete:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()

		// busca antes para o evento de auditoria sair com o nome
		f, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			respondErro(w, err)
			return
		}
		// os anexos em disco ficam: apagar o registro não limpa os slots
		if err := h.Repo.Delete(ctx, id); err != nil {
			respondErro(w, err)
			return
		}

		h.publishEvent("Exclusão", f)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Filtro atende GET /api/funcionarios/filtro?busca=.
func (h *FuncionarioHandler) Filtro(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()

	list, err := h.Repo.FiltroLivre(ctx, r.URL.Query().Get("busca"))
	if err != nil {
		respondErro(w, err)
		return
	}
	for i := range list {
		normalize.FuncionarioResposta(&list[i])
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// PorStatusCNH atende GET /api/funcionarios/funcionarios-status/{status}.
// O status vem na URL ("vencido", "a-vencer", "prazo") e é comparado contra
// a classificação recalculada no momento da leitura.
func (h *FuncionarioHandler) PorStatusCNH(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	segmento := strings.TrimPrefix(r.URL.Path, "/api/funcionarios/funcionarios-status/")
	status := statusDaRota(segmento)
	if status == "" {
		utils.BadRequest(w, "status de CNH desconhecido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	list, err := h.Repo.GetAll(ctx)
	if err != nil {
		respondErro(w, err)
		return
	}

	rows := listview.Decorate(list, h.hoje())
	out := []listview.Linha{}
	for _, l := range rows {
		if l.StatusCNH == status {
			out = append(out, l)
		}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func statusDaRota(segmento string) string {
	chave := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(segmento), "-", " "))
	for _, s := range []string{derive.StatusVencido, derive.StatusAVencer, derive.StatusPrazo} {
		if chave == strings.ToLower(s) {
			return s
		}
	}
	return ""
}

// EstatisticasCNH atende GET /api/funcionarios/estatisticas-cnh.
func (h *FuncionarioHandler) EstatisticasCNH(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	list, err := h.Repo.GetAll(ctx)
	if err != nil {
		respondErro(w, err)
		return
	}
	e := listview.CalcularEstatisticas(listview.Decorate(list, h.hoje()))
	utils.WriteJSON(w, http.StatusOK, e.PorStatusCNH)
}

// Estatisticas atende GET /api/funcionarios/estatisticas: contagens por
// situação, status de CNH e categoria, sobre a lista inteira.
func (h *FuncionarioHandler) Estatisticas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	list, err := h.Repo.GetAll(ctx)
	if err != nil {
		respondErro(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, listview.CalcularEstatisticas(listview.Decorate(list, h.hoje())))
}

// Visao atende GET /api/funcionarios/visao: a lista processada com filtro,
// facetas, paginação e as estatísticas globais, tudo numa resposta só.
// Parâmetros: busca, situacao, status_cnh, categoria (CSV) e pagina.
func (h *FuncionarioHandler) Visao(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	list, err := h.Repo.GetAll(ctx)
	if err != nil {
		respondErro(w, err)
		return
	}

	q := r.URL.Query()
	pagina := 1
	if v, err := strconv.Atoi(q.Get("pagina")); err == nil {
		pagina = v
	}

	rows := listview.Decorate(list, h.hoje())
	filtrado := listview.Filtrar(rows, q.Get("busca"), listview.Facetas{
		Situacoes:  csv(q.Get("situacao")),
		StatusCNH:  csv(q.Get("status_cnh")),
		Categorias: csv(q.Get("categoria")),
	})

	utils.WriteJSON(w, http.StatusOK, struct {
		listview.Pagina
		// contagens sempre sobre a lista SEM filtro
		Estatisticas listview.Estatisticas `json:"estatisticas"`
	}{
		Pagina:       listview.Paginar(filtrado, pagina),
		Estatisticas: listview.CalcularEstatisticas(rows),
	})
}

func csv(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BuscarCEP atende GET /api/funcionarios/cep/{cep}: proxy do ViaCEP para o
// preenchimento automático de endereço do formulário.
func (h *FuncionarioHandler) BuscarCEP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	valor := strings.TrimPrefix(r.URL.Path, "/api/funcionarios/cep/")

	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	end, err := h.CEP.Buscar(ctx, valor)
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, end)
	case errors.Is(err, cep.ErrCEPInvalido):
		utils.BadRequest(w, "cep inválido")
	case errors.Is(err, cep.ErrCEPNaoEncontrado):
		utils.Erro(w, http.StatusNotFound, "cep não encontrado")
	default:
		utils.Erro(w, http.StatusBadGateway, "consulta de cep indisponível")
	}
}

// ComAnexos atende POST /api/funcionarios/com-anexos: multipart com o campo
// "dados" (o JSON do funcionário) mais um arquivo por slot de anexo.
func (h *FuncionarioHandler) ComAnexos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.BadRequest(w, "multipart inválido: "+err.Error())
		return
	}

	var dto FuncionarioDTO
	if err := utils.DecodeStrict(strings.NewReader(r.FormValue("dados")), &dto); err != nil {
		utils.BadRequest(w, "campo dados inválido: "+err.Error())
		return
	}
	if err := validarFuncionario(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	f := dto.paraModelo()
	f.Filhos = normalize.Filhos(dto.Filhos)
	normalize.Funcionario(&f)
	if dto.Senha != "" {
		hash, err := auth.HashPassword(dto.Senha)
		if err != nil {
			respondErro(w, err)
			return
		}
		f.Senha = hash
	}

	for _, slot := range models.SlotsAnexos {
		file, header, err := r.FormFile(slot)
		if err != nil {
			continue // slot sem arquivo
		}
		_, putErr := h.Anexos.Put(&f, slot, header.Filename, file)
		file.Close()
		if putErr != nil {
			respondErro(w, putErr)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()
	if _, err := h.Repo.Create(ctx, &f); err != nil {
		respondErro(w, err)
		return
	}

	h.publishEvent("Cadastro", &f)
	normalize.FuncionarioResposta(&f)
	utils.WriteJSON(w, http.StatusCreated, f)
}

// ComAnexosByID atende PUT /api/funcionarios/com-anexos/{id}: a edição que
// mexe nos anexos. Mesmo formato do POST (campo "dados" + um arquivo por
// slot), mais um campo "<slot>_existente" por slot ecoando o nome do arquivo
// que deve permanecer. Arquivo novo no slot supersede o anterior; slot sem
// arquivo novo e sem nome ecoado é limpo e o anexo sai do disco.
func (h *FuncionarioHandler) ComAnexosByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/funcionarios/com-anexos/")
	if id == "" || strings.Contains(id, "/") {
		utils.Erro(w, http.StatusNotFound, "registro não encontrado")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.BadRequest(w, "multipart inválido: "+err.Error())
		return
	}

	var dto FuncionarioDTO
	if err := utils.DecodeStrict(strings.NewReader(r.FormValue("dados")), &dto); err != nil {
		utils.BadRequest(w, "campo dados inválido: "+err.Error())
		return
	}
	if err := validarFuncionario(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()

	atual, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		respondErro(w, err)
		return
	}

	f := dto.paraModelo()
	f.Filhos = normalize.Filhos(dto.Filhos)
	normalize.Funcionario(&f)
	f.Arquivos = atual.Arquivos
	f.Matricula = atual.Matricula
	if dto.Senha != "" {
		hash, err := auth.HashPassword(dto.Senha)
		if err != nil {
			respondErro(w, err)
			return
		}
		f.Senha = hash
	} else {
		f.Senha = atual.Senha
	}

	for _, slot := range models.SlotsAnexos {
		if file, header, err := r.FormFile(slot); err == nil {
			_, putErr := h.Anexos.Put(&f, slot, header.Filename, file)
			file.Close()
			if putErr != nil {
				respondErro(w, putErr)
				return
			}
			continue
		}
		ecoados := r.PostForm[slot+"_existente"]
		for _, nome := range f.Arquivos.Slot(slot) {
			if !slices.Contains(ecoados, nome) {
				h.Anexos.Remover(&f, slot)
				break
			}
		}
	}

	if err := h.Repo.Replace(ctx, id, &f); err != nil {
		respondErro(w, err)
		return
	}

	h.publishEvent("Edição", &f)
	normalize.FuncionarioResposta(&f)
	utils.WriteJSON(w, http.StatusOK, f)
}

// PerfilIdealConfig atende GET/POST /api/funcionarios/perfil-ideal/config.
func (h *FuncionarioHandler) PerfilIdealConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		p, err := h.Perfil.Get(ctx)
		if err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, p)

	case http.MethodPost:
		var dto PerfilIdealDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, "json inválido: "+err.Error())
			return
		}
		if dto.IdadeMin < 0 || dto.FilhosMin < 0 || dto.TempoHabilitacaoMin < 0 {
			utils.BadRequest(w, "valores do perfil não podem ser negativos")
			return
		}
		if dto.IdadeMax > 0 && dto.IdadeMax < dto.IdadeMin {
			utils.BadRequest(w, "idade_max menor que idade_min")
			return
		}

		p := models.PerfilIdeal{
			IdadeMin:            dto.IdadeMin,
			IdadeMax:            dto.IdadeMax,
			TempoHabilitacaoMin: dto.TempoHabilitacaoMin,
			EstadoCivil:         normalize.Nome(dto.EstadoCivil),
			FilhosMin:           dto.FilhosMin,
		}
		ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
		defer cancel()
		if err := h.Perfil.Save(ctx, &p); err != nil {
			respondErro(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, p)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// PerfilIdeal atende GET /api/funcionarios/perfil-ideal: os funcionários que
// batem com a configuração gravada, decorados para exibição.
func (h *FuncionarioHandler) PerfilIdeal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), tempoLimite)
	defer cancel()

	p, err := h.Perfil.Get(ctx)
	if err != nil {
		respondErro(w, err)
		return
	}
	list, err := h.Repo.GetAll(ctx)
	if err != nil {
		respondErro(w, err)
		return
	}

	hoje := h.hoje()
	rows := listview.Decorate(list, hoje)
	out := []listview.Linha{}
	for _, l := range rows {
		if casaPerfil(l, p, hoje) {
			out = append(out, l)
		}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func casaPerfil(l listview.Linha, p *models.PerfilIdeal, hoje time.Time) bool {
	if p.IdadeMin > 0 && l.Idade < p.IdadeMin {
		return false
	}
	if p.IdadeMax > 0 && l.Idade > p.IdadeMax {
		return false
	}
	if p.TempoHabilitacaoMin > 0 {
		anos := derive.AnosDesde(normalize.ParseData(l.EmissaoCNH), hoje)
		if anos < p.TempoHabilitacaoMin {
			return false
		}
	}
	if p.EstadoCivil != "" && !strings.EqualFold(l.EstadoCivil, p.EstadoCivil) {
		return false
	}
	if l.Filhos < p.FilhosMin {
		return false
	}
	return true
}

func (h *FuncionarioHandler) publishEvent(acao string, f *models.Funcionario) {
	if h.Pub == nil || f == nil {
		return
	}
	nome := f.Nome
	if nome == "" {
		nome = f.CPF
	}
	msg := fmt.Sprintf("%s de FUNCIONÁRIO %s", acao, nome)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":    strings.ToLower(acao), // cadastro|edição|exclusão
		"entity":    "funcionario",
		"entity_id": f.ID,
		"nome":      nome,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

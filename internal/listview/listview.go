// Package listview monta a visão processada da lista de funcionários:
// decoração com campos derivados, filtro por texto e facetas, paginação e
// estatísticas. Tudo função pura sobre a lista já buscada, nada persiste.
package listview

import (
	"fmt"
	"strings"
	"time"

	"github.com/grupolocar/erp-server/internal/derive"
	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/normalize"
	"github.com/grupolocar/erp-server/internal/utils"
)

const TamanhoPagina = 10

const (
	SemNome      = "Sem Nome"
	SemMunicipio = "Não informado"
)

// Linha é um funcionário decorado para exibição. Os derivados valem para o
// "hoje" passado ao Decorate e são recalculados a cada leitura.
type Linha struct {
	models.Funcionario

	Idade     int    `json:"idade"`
	StatusCNH string `json:"status_cnh"`
	DiasCNH   int    `json:"dias_cnh"`

	blob string
}

// Decorate aplica fallback de exibição, calcula os derivados de CNH e monta
// o blob de busca. Todas as linhas usam o mesmo hoje, então uma passada perto
// da meia-noite não classifica linhas em dias diferentes.
func Decorate(list []models.Funcionario, hoje time.Time) []Linha {
	rows := make([]Linha, 0, len(list))
	for _, f := range list {
		normalize.FuncionarioResposta(&f)
		l := Linha{Funcionario: f}
		if strings.TrimSpace(l.Nome) == "" {
			l.Nome = SemNome
		}
		if strings.TrimSpace(l.Municipio) == "" {
			l.Municipio = SemMunicipio
		}

		l.Idade = derive.Idade(normalize.ParseData(l.DataNascimento), hoje)
		validade := normalize.ParseData(l.ValidadeCNH)
		l.StatusCNH = derive.StatusCNH(validade, hoje)
		l.DiasCNH = derive.DiasRestantes(validade, hoje)

		l.blob = montarBlob(&l)
		rows = append(rows, l)
	}
	return rows
}

func montarBlob(l *Linha) string {
	partes := []string{
		l.Nome, l.Matricula, l.Sexo, l.Profissao, l.Situacao, l.Contrato,
		l.Telefone, l.Email, l.EstadoCivil, fmt.Sprintf("%d", l.Filhos),
		l.DataAdmissao, l.DataDemissao, l.DataNascimento,
		l.Endereco, l.Complemento, l.Bairro, l.Municipio, l.Estado, l.CEP,
		l.Banco, l.Agencia, l.Conta, l.Pix,
		l.CPF, l.RG, l.CNH, strings.Join(l.Categoria, " "),
		l.EmissaoCNH, l.ValidadeCNH,
		l.NomeFamiliar, l.ContatoFamiliar, l.Indicado, l.Observacao,
		l.StatusCNH, fmt.Sprintf("%d", l.Idade),
	}
	return strings.ToLower(utils.RemoverAcentos(strings.Join(partes, " ")))
}

// Facetas são filtros de inclusão multi-seleção. Lista vazia = faceta
// inativa (casa com tudo).
type Facetas struct {
	Situacoes  []string
	StatusCNH  []string
	Categorias []string
}

// Filtrar aplica texto E facetas: OR dentro de uma faceta, AND entre
// facetas, AND com o texto.
func Filtrar(rows []Linha, texto string, f Facetas) []Linha {
	termo := strings.ToLower(utils.RemoverAcentos(strings.TrimSpace(texto)))

	out := []Linha{}
	for _, l := range rows {
		if termo != "" && !strings.Contains(l.blob, termo) {
			continue
		}
		if !contem(f.Situacoes, l.Situacao) {
			continue
		}
		if !contem(f.StatusCNH, l.StatusCNH) {
			continue
		}
		if !intersecta(f.Categorias, l.Categoria) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func contem(selecionados []string, v string) bool {
	if len(selecionados) == 0 {
		return true
	}
	for _, s := range selecionados {
		if s == v {
			return true
		}
	}
	return false
}

func intersecta(selecionados, valores []string) bool {
	if len(selecionados) == 0 {
		return true
	}
	for _, s := range selecionados {
		for _, v := range valores {
			if s == v {
				return true
			}
		}
	}
	return false
}

// Pagina é uma fatia de exibição: 1-indexada, tamanho fixo.
type Pagina struct {
	Itens        []Linha `json:"itens"`
	Pagina       int     `json:"pagina"`
	TotalPaginas int     `json:"total_paginas"`
	Total        int     `json:"total"`
}

// Paginar devolve a página pedida. Página além do fim é rebaixada para a
// última válida, nunca para zero ou negativa.
func Paginar(rows []Linha, pagina int) Pagina {
	total := len(rows)
	totalPaginas := (total + TamanhoPagina - 1) / TamanhoPagina
	if totalPaginas < 1 {
		totalPaginas = 1
	}
	if pagina < 1 {
		pagina = 1
	}
	if pagina > totalPaginas {
		pagina = totalPaginas
	}

	ini := (pagina - 1) * TamanhoPagina
	fim := ini + TamanhoPagina
	if ini > total {
		ini = total
	}
	if fim > total {
		fim = total
	}
	return Pagina{
		Itens:        rows[ini:fim],
		Pagina:       pagina,
		TotalPaginas: totalPaginas,
		Total:        total,
	}
}

// Estatisticas são as contagens globais usadas nos botões de faceta.
// Calculadas sobre a lista SEM filtro: alternar uma faceta não muda a
// contagem exibida nela própria.
type Estatisticas struct {
	PorSituacao  map[string]int `json:"por_situacao"`
	PorStatusCNH map[string]int `json:"por_status_cnh"`
	PorCategoria map[string]int `json:"por_categoria"`
}

func CalcularEstatisticas(rows []Linha) Estatisticas {
	e := Estatisticas{
		PorSituacao: map[string]int{},
		// os três baldes sempre saem no payload, mesmo zerados
		PorStatusCNH: map[string]int{
			derive.StatusVencido: 0,
			derive.StatusAVencer: 0,
			derive.StatusPrazo:   0,
		},
		PorCategoria: map[string]int{},
	}
	for _, l := range rows {
		if l.Situacao != "" {
			e.PorSituacao[l.Situacao]++
		}
		if l.StatusCNH != "" {
			e.PorStatusCNH[l.StatusCNH]++
		}
		for _, c := range l.Categoria {
			e.PorCategoria[c]++
		}
	}
	return e
}

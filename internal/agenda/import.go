// Package agenda importa a programação comercial de planilhas xlsx. Cada
// linha vira um AgendaRecord; depois de importada só o horário de início
// pode mudar.
package agenda

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/normalize"
	"github.com/grupolocar/erp-server/internal/utils"
)

var ErrPlanilhaVazia = errors.New("planilha sem linhas de dados")

// Colunas reconhecidas no cabeçalho (sem acento, minúsculas).
const (
	colLoc      = "loc"
	colData     = "data"
	colHora     = "hora inicio"
	colFilial   = "filial"
	colOperador = "operador"
)

// HoraValida aceita HH:MM de meia em meia hora, de 00:00 a 23:30.
func HoraValida(v string) bool {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return false
	}
	return t.Minute() == 0 || t.Minute() == 30
}

// NormalizarHora completa zeros ("8:30" vira "08:30"); devolve vazio quando
// o valor não é hora.
func NormalizarHora(v string) string {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"15:04", "3:04", "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04")
		}
	}
	return ""
}

func normalizarData(v string) string {
	v = strings.TrimSpace(v)
	if iso := normalize.Data(v); iso != "" {
		return iso
	}
	// formatos comuns de célula de planilha
	for _, layout := range []string{"02/01/2006", "02/01/06", "01-02-06"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(normalize.ISODate)
		}
	}
	return ""
}

// Importar lê a primeira aba do xlsx e devolve os registros prontos para o
// ImportBatch. A linha 1 é cabeçalho; a ordem das colunas não importa.
// Linha com problema não aborta a importação: ela entra com status error
// (data ou hora inválida) ou warning (filial/operador em branco).
func Importar(r io.Reader) ([]models.AgendaRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrPlanilhaVazia
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ler planilha: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrPlanilhaVazia
	}

	// mapeia cabeçalho -> índice de coluna
	idx := map[string]int{}
	for i, titulo := range rows[0] {
		chave := strings.ToLower(utils.RemoverAcentos(strings.TrimSpace(titulo)))
		chave = strings.ReplaceAll(chave, "_", " ")
		idx[chave] = i
	}
	for _, obrigatoria := range []string{colLoc, colData, colHora} {
		if _, ok := idx[obrigatoria]; !ok {
			return nil, fmt.Errorf("planilha sem a coluna %q", obrigatoria)
		}
	}

	celula := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	recs := []models.AgendaRecord{}
	for _, row := range rows[1:] {
		if vazia(row) {
			continue
		}
		rec := models.AgendaRecord{
			Loc:        celula(row, colLoc),
			Data:       normalizarData(celula(row, colData)),
			HoraInicio: NormalizarHora(celula(row, colHora)),
			Filial:     normalize.SiglaFilial(celula(row, colFilial)),
			Operador:   normalize.Nome(celula(row, colOperador)),
		}

		switch {
		case rec.Data == "" || rec.HoraInicio == "" || !HoraValida(rec.HoraInicio):
			rec.Status = "error"
		case rec.Filial == "" || rec.Operador == "":
			rec.Status = "warning"
		default:
			rec.Status = "ok"
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return nil, ErrPlanilhaVazia
	}
	return recs, nil
}

func vazia(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

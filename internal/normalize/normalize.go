// Package normalize aplica a canonicalização server-side dos cadastros.
// O cliente já envia mascarado, mas o servidor re-normaliza tudo de novo
// antes de persistir — nunca se confia no formato vindo do formulário.
package normalize

import (
	"strings"
	"time"

	"github.com/grupolocar/erp-server/internal/utils"
)

const ISODate = "2006-01-02"

// Data aceita "YYYY-MM-DD" (ou RFC3339, descartando a hora) e devolve a
// forma ISO só-data. Entrada inválida vira vazio, nunca erro.
func Data(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if t, err := time.Parse(ISODate, v); err == nil {
		return t.Format(ISODate)
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format(ISODate)
	}
	return ""
}

// ParseData: a data ISO de volta como time.Time (zero quando vazia/ inválida).
func ParseData(v string) time.Time {
	t, err := time.Parse(ISODate, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Nome: sem acentos, título, trims.
func Nome(v string) string {
	return utils.TitleCase(utils.RemoverAcentos(strings.TrimSpace(v)))
}

// NomeLivre: alfanumérico com espaços, título (razão social, endereço...).
func NomeLivre(v string, max int) string {
	return utils.Truncar(utils.TitleCase(utils.LetrasEspacosNumeros(v)), max)
}

// Sigla de filial: só letras, maiúsculas, máximo 10.
func SiglaFilial(v string) string {
	return utils.Truncar(strings.ToUpper(utils.SoLetras(v, false)), 10)
}

// UF: maiúsculas, 2 caracteres.
func UF(v string) string {
	return utils.Truncar(strings.ToUpper(utils.SoLetras(v, false)), 2)
}

// Email: minúsculas, sem acentos nem espaços.
func Email(v string) string {
	v = utils.RemoverAcentos(strings.ToLower(strings.TrimSpace(v)))
	return strings.ReplaceAll(v, " ", "")
}

// Filhos limpa o campo numérico sujo da base antiga: espaços, letras,
// zeros à esquerda; mais de 2 dígitos é lixo e vira 0.
func Filhos(v string) int {
	d := utils.SoDigitos(strings.TrimSpace(v))
	if d == "" || len(d) > 2 {
		return 0
	}
	n := 0
	for _, r := range d {
		n = n*10 + int(r-'0')
	}
	return n
}

// Categorias mantém apenas A-E, maiúsculas, sem repetição, ordem de entrada.
func Categorias(in []string) []string {
	out := make([]string, 0, len(in))
	vistos := map[string]bool{}
	for _, c := range in {
		c = strings.ToUpper(strings.TrimSpace(c))
		switch c {
		case "A", "B", "C", "D", "E":
			if !vistos[c] {
				vistos[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

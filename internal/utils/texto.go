package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NFD decompõe os acentos em marcas combinantes, que são removidas.
// A cedilha também é marca combinante, então ç/Ç viram c/C aqui.
var semAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoverAcentos mapeia acentos e ç para o equivalente ASCII.
func RemoverAcentos(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(semAcentos, s)
	if err != nil {
		return s
	}
	return out
}

// TitleCase: primeira letra de cada palavra maiúscula, restante minúsculas.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inicio := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if inicio {
				r = unicode.ToUpper(r)
				inicio = false
			}
		} else {
			inicio = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SoDigitos remove qualquer coisa que não seja dígito
func SoDigitos(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// SoLetras mantém apenas letras (e espaços, se comEspaco), sem acentos,
// com espaços repetidos colapsados.
func SoLetras(s string, comEspaco bool) string {
	s = RemoverAcentos(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == ' ' && comEspaco:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// LetrasEspacosNumeros: alfanumérico + espaços, sem acentos.
func LetrasEspacosNumeros(s string) string {
	s = RemoverAcentos(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Truncar corta a string em max runas (os maxlength dos schemas antigos).
func Truncar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

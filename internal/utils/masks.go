package utils

import "strings"

/*
Máscaras posicionais: extrai só os dígitos, trunca no máximo do campo e
insere os separadores literais nos offsets fixos. Nunca retornam erro —
entrada excedente é truncada. Reaplicar a máscara sobre um valor já
mascarado produz o mesmo resultado.
*/

type separador struct {
	pos int // offset em dígitos ANTES do qual o literal entra
	lit string
}

func mascarar(v string, max int, seps []separador) string {
	d := SoDigitos(v)
	if len(d) > max {
		d = d[:max]
	}
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		for _, s := range seps {
			if s.pos == i {
				b.WriteString(s.lit)
			}
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// MaskCPF: DDD.DDD.DDD-DD
func MaskCPF(v string) string {
	return mascarar(v, 11, []separador{{3, "."}, {6, "."}, {9, "-"}})
}

// MaskRG: DD.DDD.DDD-D
func MaskRG(v string) string {
	return mascarar(v, 9, []separador{{2, "."}, {5, "."}, {8, "-"}})
}

// MaskCEP: DD.DDD-DDD
func MaskCEP(v string) string {
	return mascarar(v, 8, []separador{{2, "."}, {5, "-"}})
}

// MaskCNPJ: DD.DDD.DDD/DDDD-DD
func MaskCNPJ(v string) string {
	return mascarar(v, 14, []separador{{2, "."}, {5, "."}, {8, "/"}, {12, "-"}})
}

// MaskIE (inscrição estadual): DD.DDD.DDD-DD
func MaskIE(v string) string {
	return mascarar(v, 10, []separador{{2, "."}, {5, "."}, {8, "-"}})
}

// MaskTelefone: (DD)DDDD-DDDD com 10 dígitos, (DD)DDDDD-DDDD com 11.
func MaskTelefone(v string) string {
	d := SoDigitos(v)
	if len(d) > 11 {
		d = d[:11]
	}
	hifen := 6 // fixo: (DD) + 4 dígitos
	if len(d) == 11 {
		hifen = 7 // celular: (DD) + 5 dígitos
	}
	return mascarar(d, 11, []separador{{0, "("}, {2, ")"}, {hifen, "-"}})
}

// ValidarCNPJ: 14 dígitos e não todos iguais.
func ValidarCNPJ(cnpj string) bool {
	d := SoDigitos(cnpj)
	if len(d) != 14 {
		return false
	}
	allEq := true
	for i := 1; i < 14; i++ {
		if d[i] != d[0] {
			allEq = false
			break
		}
	}
	return !allEq
}

// ValidarCPF: 11 dígitos e não todos iguais.
func ValidarCPF(cpf string) bool {
	d := SoDigitos(cpf)
	if len(d) != 11 {
		return false
	}
	allEq := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			allEq = false
			break
		}
	}
	return !allEq
}

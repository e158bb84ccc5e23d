// Package derive calcula campos derivados de datas (idade, vencimento de CNH).
// Tudo é função pura de (data, hoje): nunca se confia em status gravado no
// banco — quem lê recalcula, com UM único "hoje" por passada para não
// classificar linhas da mesma listagem de formas diferentes perto da
// meia-noite.
package derive

import "time"

// Status de vencimento da CNH.
const (
	StatusVencido = "Vencido"
	StatusAVencer = "A Vencer"
	StatusPrazo   = "Prazo"
)

// Janela de alerta: vence em até 30 dias.
const diasAVencer = 30

// meiaNoite descarta hora/minuto/segundo para o cálculo de dias inteiros.
func meiaNoite(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Idade em anos completos na data "hoje". Zero para nascimento vazio.
func Idade(nascimento, hoje time.Time) int {
	if nascimento.IsZero() {
		return 0
	}
	idade := hoje.Year() - nascimento.Year()
	// ainda não fez aniversário este ano
	if hoje.Month() < nascimento.Month() ||
		(hoje.Month() == nascimento.Month() && hoje.Day() < nascimento.Day()) {
		idade--
	}
	return idade
}

// AnosDesde: anos completos desde uma data (tempo de habilitação). Nunca negativo.
func AnosDesde(desde, hoje time.Time) int {
	if desde.IsZero() {
		return 0
	}
	anos := Idade(desde, hoje)
	if anos < 0 {
		return 0
	}
	return anos
}

// DiasRestantes: teto de (validade - hoje) em dias inteiros, datas
// normalizadas para meia-noite. Negativo = vencida. Zero para validade vazia.
func DiasRestantes(validade, hoje time.Time) int {
	if validade.IsZero() {
		return 0
	}
	diff := meiaNoite(validade).Sub(meiaNoite(hoje))
	dias := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		dias++
	}
	return dias
}

// StatusCNH classifica a validade. Validade vazia retorna "" — "sem prazo
// definido" é distinto de Prazo e os chamadores tratam separado.
func StatusCNH(validade, hoje time.Time) string {
	if validade.IsZero() {
		return ""
	}
	dias := DiasRestantes(validade, hoje)
	switch {
	case dias < 0:
		return StatusVencido
	case dias <= diasAVencer:
		return StatusAVencer
	default:
		return StatusPrazo
	}
}

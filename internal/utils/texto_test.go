package utils

import "testing"

func TestRemoverAcentos(t *testing.T) {
	casos := map[string]string{
		"São Paulo":       "Sao Paulo",
		"Conceição":       "Conceicao",
		"AÇAÍ":            "ACAI",
		"sem acento":      "sem acento",
		"":                "",
		"José-Müller/123": "Jose-Muller/123",
	}
	for in, want := range casos {
		if got := RemoverAcentos(in); got != want {
			t.Fatalf("RemoverAcentos(%q)=%q want %q", in, got, want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	casos := map[string]string{
		"joao da silva":   "Joao Da Silva",
		"MARIA SOUZA":     "Maria Souza",
		"rua xv  de nov.": "Rua Xv  De Nov.",
		"":                "",
	}
	for in, want := range casos {
		if got := TitleCase(in); got != want {
			t.Fatalf("TitleCase(%q)=%q want %q", in, got, want)
		}
	}
}

func TestSoLetras(t *testing.T) {
	if got := SoLetras("AA-SDU 99", false); got != "AASDU" {
		t.Fatalf("SoLetras sem espaço: got %q", got)
	}
	if got := SoLetras("São  Paulo 12", true); got != "Sao Paulo" {
		t.Fatalf("SoLetras com espaço: got %q", got)
	}
}

func TestSoDigitos(t *testing.T) {
	if got := SoDigitos("11.222.333/0001-44"); got != "11222333000144" {
		t.Fatalf("SoDigitos: got %q", got)
	}
}

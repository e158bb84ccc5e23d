package utils

import "testing"

func TestMaskCPF(t *testing.T) {
	if got := MaskCPF("12345678900"); got != "123.456.789-00" {
		t.Fatalf("got %q", got)
	}
	// excedente é truncado, nunca erro
	if got := MaskCPF("12345678900999"); got != "123.456.789-00" {
		t.Fatalf("truncamento: got %q", got)
	}
	// entrada parcial mantém só os separadores já alcançados
	if got := MaskCPF("1234"); got != "123.4" {
		t.Fatalf("parcial: got %q", got)
	}
}

func TestMaskRG(t *testing.T) {
	if got := MaskRG("123456789"); got != "12.345.678-9" {
		t.Fatalf("got %q", got)
	}
}

func TestMaskCEP(t *testing.T) {
	if got := MaskCEP("01001000"); got != "01.001-000" {
		t.Fatalf("got %q", got)
	}
}

func TestMaskCNPJ(t *testing.T) {
	if got := MaskCNPJ("11222333000144"); got != "11.222.333/0001-44" {
		t.Fatalf("got %q", got)
	}
}

func TestMaskIE(t *testing.T) {
	if got := MaskIE("1234567890"); got != "12.345.678-90" {
		t.Fatalf("got %q", got)
	}
}

func TestMaskTelefone(t *testing.T) {
	if got := MaskTelefone("1133334444"); got != "(11)3333-4444" {
		t.Fatalf("fixo: got %q", got)
	}
	if got := MaskTelefone("11999998888"); got != "(11)99999-8888" {
		t.Fatalf("celular: got %q", got)
	}
}

// mask(mask(x)) == mask(x) para todas as máscaras
func TestMasks_Idempotencia(t *testing.T) {
	masks := map[string]func(string) string{
		"cpf": MaskCPF, "rg": MaskRG, "cep": MaskCEP,
		"cnpj": MaskCNPJ, "ie": MaskIE, "tel": MaskTelefone,
	}
	entradas := []string{
		"11222333000144", "12345678900", "01001000", "1133334444",
		"11999998888", "123", "", "abc123def456ghi789jkl",
	}
	for nome, m := range masks {
		for _, in := range entradas {
			uma := m(in)
			duas := m(uma)
			if uma != duas {
				t.Fatalf("%s não idempotente: %q -> %q -> %q", nome, in, uma, duas)
			}
		}
	}
}

func TestValidarCNPJ(t *testing.T) {
	if !ValidarCNPJ("11.222.333/0001-44") {
		t.Fatal("cnpj válido rejeitado")
	}
	if ValidarCNPJ("111") {
		t.Fatal("cnpj curto aceito")
	}
	if ValidarCNPJ("11111111111111") {
		t.Fatal("dígitos todos iguais aceito")
	}
}

func TestValidarCPF(t *testing.T) {
	if !ValidarCPF("123.456.789-00") {
		t.Fatal("cpf válido rejeitado")
	}
	if ValidarCPF("00000000000") {
		t.Fatal("dígitos todos iguais aceito")
	}
}

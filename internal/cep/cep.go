// Package cep consulta endereços no ViaCEP.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/grupolocar/erp-server/internal/utils"
)

var (
	ErrCEPInvalido      = errors.New("cep inválido")
	ErrCEPNaoEncontrado = errors.New("cep não encontrado")
)

// Endereco é a parte da resposta do ViaCEP que interessa ao cadastro.
type Endereco struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
}

// Buscador é o que os handlers dependem; o client real e o fake de teste
// implementam.
type Buscador interface {
	Buscar(ctx context.Context, cep string) (*Endereco, error)
}

type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Buscar(ctx context.Context, cep string) (*Endereco, error) {
	digitos := utils.SoDigitos(cep)
	if len(digitos) != 8 {
		return nil, ErrCEPInvalido
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.base, digitos)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar viacep: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep respondeu %d", resp.StatusCode)
	}

	// CEP bem formado mas inexistente volta 200 com {"erro": true}
	var body struct {
		Endereco
		Erro any `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decodificar resposta viacep: %w", err)
	}
	if body.Erro != nil {
		return nil, ErrCEPNaoEncontrado
	}
	return &body.Endereco, nil
}

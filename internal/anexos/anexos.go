// Package anexos guarda os anexos de funcionário em disco, um arquivo por
// slot. O nome gravado carrega o instante do upload, o nome do funcionário
// saneado e o slot, então o mesmo funcionário pode ter anexos de slots
// diferentes sem colisão.
package anexos

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

var (
	rxPontuacao = regexp.MustCompile(`[^A-Za-z0-9 _-]`)
	rxEspacos   = regexp.MustCompile(`\s+`)
)

// SanitizarNome prepara o nome do funcionário para virar parte de nome de
// arquivo: sem acento, sem pontuação, espaços viram underscore.
func SanitizarNome(nome string) string {
	v := utils.RemoverAcentos(strings.TrimSpace(nome))
	v = rxPontuacao.ReplaceAllString(v, "")
	v = rxEspacos.ReplaceAllString(v, " ")
	v = strings.TrimSpace(v)
	if v == "" {
		return "Sem_Nome"
	}
	return strings.ReplaceAll(v, " ", "_")
}

// NomeArquivo monta o nome persistido: <millis>_<NomeSaneado>-<slot><ext>.
// A extensão vem do arquivo original, minúscula.
func NomeArquivo(nomeFuncionario, slot, original string, agora time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d_%s-%s%s", agora.UnixMilli(), SanitizarNome(nomeFuncionario), slot, ext)
}

// Put grava o anexo e atualiza o slot no funcionário. Se o slot já tinha
// arquivo, o antigo sai do disco: cada slot guarda no máximo um anexo.
func (s *Store) Put(f *models.Funcionario, slot, original string, r io.Reader) (string, error) {
	nome := NomeArquivo(f.Nome, slot, original, time.Now())

	out, err := os.Create(filepath.Join(s.dir, nome))
	if err != nil {
		return "", fmt.Errorf("criar anexo: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("gravar anexo: %w", err)
	}

	for _, antigo := range f.Arquivos.Slot(slot) {
		s.remover(antigo)
	}
	f.Arquivos.SetSlot(slot, []string{nome})
	return nome, nil
}

// Remover apaga do disco o arquivo atual de um slot e o esvazia.
func (s *Store) Remover(f *models.Funcionario, slot string) {
	for _, nome := range f.Arquivos.Slot(slot) {
		s.remover(nome)
	}
	f.Arquivos.SetSlot(slot, []string{})
}

func (s *Store) remover(nome string) {
	// filepath.Base barra nomes com ../ vindos do banco
	_ = os.Remove(filepath.Join(s.dir, filepath.Base(nome)))
}

// Caminho devolve o caminho absoluto de um anexo já gravado.
func (s *Store) Caminho(nome string) string {
	return filepath.Join(s.dir, filepath.Base(nome))
}

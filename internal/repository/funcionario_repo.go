package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

// Campos de texto pesquisados pelo filtro livre (pj é boolean, fica fora).
var camposTextoFuncionario = []string{
	"nome", "sexo", "profissao", "situacao", "contrato", "telefone", "email",
	"endereco", "complemento", "bairro", "municipio", "estado", "cep",
	"banco", "agencia", "conta", "pix", "cpf", "rg", "estado_civil",
	"cnh", "categoria", "nome_familiar", "contato_familiar", "indicado", "observacao",
	"arquivos.cnh_arquivo", "arquivos.comprovante_residencia",
	"arquivos.nada_consta", "arquivos.comprovante_mei", "arquivos.curriculo",
}

var rxFiltroPJ = regexp.MustCompile(`^pj\s*[:=]\s*(true|false|1|0|sim|nao)$`)

type FuncionarioRepository struct {
	coll *mongo.Collection
}

func NewFuncionarioRepository(db *mongo.Database) *FuncionarioRepository {
	return &FuncionarioRepository{coll: db.Collection("funcionarios")}
}

func (r *FuncionarioRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cpf", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_cpf"),
	})
	return err
}

func (r *FuncionarioRepository) findAll(ctx context.Context, filter bson.M) ([]models.Funcionario, error) {
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, indisponivel(err)
	}
	defer cur.Close(ctx)

	list := []models.Funcionario{}
	for cur.Next(ctx) {
		var f models.Funcionario
		if err := cur.Decode(&f); err != nil {
			return nil, indisponivel(err)
		}
		list = append(list, f)
	}
	if err := cur.Err(); err != nil {
		return nil, indisponivel(err)
	}
	return list, nil
}

func (r *FuncionarioRepository) GetAll(ctx context.Context) ([]models.Funcionario, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *FuncionarioRepository) GetPorSituacao(ctx context.Context, situacao string) ([]models.Funcionario, error) {
	if situacao == "" {
		return r.findAll(ctx, bson.M{})
	}
	return r.findAll(ctx, bson.M{"situacao": situacao})
}

// FiltroLivre: busca accent-insensitive por substring em todos os campos de
// texto. Os campos são gravados sem acento, então basta tirar os acentos do
// termo. Aceita também "pj:true" e variantes para filtrar o boolean.
func (r *FuncionarioRepository) FiltroLivre(ctx context.Context, busca string) ([]models.Funcionario, error) {
	busca = strings.TrimSpace(busca)
	if busca == "" {
		return r.findAll(ctx, bson.M{})
	}

	if m := rxFiltroPJ.FindStringSubmatch(strings.ToLower(utils.RemoverAcentos(busca))); m != nil {
		pj := m[1] == "true" || m[1] == "1" || m[1] == "sim"
		return r.findAll(ctx, bson.M{"pj": pj})
	}

	rx := primitive.Regex{Pattern: regexp.QuoteMeta(utils.RemoverAcentos(busca)), Options: "i"}
	or := make([]bson.M, 0, len(camposTextoFuncionario))
	for _, campo := range camposTextoFuncionario {
		or = append(or, bson.M{campo: rx})
	}
	return r.findAll(ctx, bson.M{"$or": or})
}

func (r *FuncionarioRepository) GetByID(ctx context.Context, id string) (*models.Funcionario, error) {
	var f models.Funcionario
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &f, nil
}

// GetByCPF é usado pelo seed para idempotência.
func (r *FuncionarioRepository) GetByCPF(ctx context.Context, cpf string) (*models.Funcionario, error) {
	var f models.Funcionario
	err := r.coll.FindOne(ctx, bson.M{"cpf": cpf}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &f, nil
}

func (r *FuncionarioRepository) Create(ctx context.Context, f *models.Funcionario) (string, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	_, err := r.coll.InsertOne(ctx, f)
	if err != nil {
		if isDup(err) {
			return "", ErrDuplicateCPF
		}
		return "", indisponivel(err)
	}
	return f.ID, nil
}

// Replace: substituição integral do documento (último grava vence — sem
// token de concorrência, de propósito). Preserva created_at.
func (r *FuncionarioRepository) Replace(ctx context.Context, id string, f *models.Funcionario) error {
	atual, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	f.ID = id
	f.CreatedAt = atual.CreatedAt
	f.UpdatedAt = time.Now()

	_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": id}, f)
	if err != nil {
		if isDup(err) {
			return ErrDuplicateCPF
		}
		return indisponivel(err)
	}
	return nil
}

func (r *FuncionarioRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return indisponivel(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

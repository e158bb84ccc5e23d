package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

var camposTextoFilial = []string{
	"codigo_filial", "cliente", "filial", "distrital", "razao_social", "cnpj",
	"insc_estadual", "responsavel", "cargo", "telefone", "email", "endereco",
	"complemento", "cidade", "bairro", "estado", "cep", "observacao",
}

// FiltroFilial: filtros exatos da listagem. "Todos"/"Todas" = sem restrição.
type FiltroFilial struct {
	Busca       string
	Filial      string
	Distrital   string
	Responsavel string
	Cidade      string
}

var rxTodos = regexp.MustCompile(`(?i)^tod(a|o)s?$`)

func semRestricao(v string) bool {
	return v == "" || rxTodos.MatchString(v)
}

type FilialRepository struct {
	coll     *mongo.Collection
	counters *Counters
}

func NewFilialRepository(db *mongo.Database) *FilialRepository {
	return &FilialRepository{coll: db.Collection("filiais"), counters: NewCounters(db)}
}

func (r *FilialRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cnpj", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cnpj"),
		},
		{
			Keys:    bson.D{{Key: "codigo_filial", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_codigo_filial"),
		},
	})
	return err
}

func exatoInsensivel(v string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(utils.RemoverAcentos(v)) + "$", Options: "i"}
}

func (r *FilialRepository) List(ctx context.Context, filtro FiltroFilial) ([]models.Filial, error) {
	and := []bson.M{}
	if !semRestricao(filtro.Filial) {
		and = append(and, bson.M{"filial": exatoInsensivel(filtro.Filial)})
	}
	if !semRestricao(filtro.Distrital) {
		and = append(and, bson.M{"distrital": exatoInsensivel(filtro.Distrital)})
	}
	if !semRestricao(filtro.Responsavel) {
		and = append(and, bson.M{"responsavel": exatoInsensivel(filtro.Responsavel)})
	}
	if !semRestricao(filtro.Cidade) {
		and = append(and, bson.M{"cidade": exatoInsensivel(filtro.Cidade)})
	}

	query := bson.M{}
	if filtro.Busca != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(utils.RemoverAcentos(filtro.Busca)), Options: "i"}
		or := make([]bson.M, 0, len(camposTextoFilial))
		for _, campo := range camposTextoFilial {
			or = append(or, bson.M{campo: rx})
		}
		query["$or"] = or
	}
	if len(and) > 0 {
		query["$and"] = and
	}

	opts := options.Find().SetSort(bson.D{{Key: "filial", Value: 1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, indisponivel(err)
	}
	defer cur.Close(ctx)

	list := []models.Filial{}
	for cur.Next(ctx) {
		var f models.Filial
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

func (r *FilialRepository) GetByID(ctx context.Context, id string) (*models.Filial, error) {
	var f models.Filial
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &f, nil
}

func (r *FilialRepository) Create(ctx context.Context, f *models.Filial) (string, error) {
	codigo, err := r.counters.Next(ctx, "filial", "FIL")
	if err != nil {
		return "", err
	}
	f.CodigoFilial = codigo
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt

	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		if isDup(err) {
			return "", ErrDuplicateCNPJ
		}
		return "", indisponivel(err)
	}
	return f.ID, nil
}

func (r *FilialRepository) Replace(ctx context.Context, id string, f *models.Filial) error {
	atual, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	f.ID = id
	f.CodigoFilial = atual.CodigoFilial // imutável
	f.CreatedAt = atual.CreatedAt
	f.UpdatedAt = time.Now()

	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, f); err != nil {
		if isDup(err) {
			return ErrDuplicateCNPJ
		}
		return indisponivel(err)
	}
	return nil
}

func (r *FilialRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return indisponivel(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

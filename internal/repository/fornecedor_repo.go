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

var camposTextoFornecedor = []string{
	"codigo_fornecedor", "tipoFornecedor", "razao_social", "cnpj",
	"insc_estadual", "responsavel", "cargo", "telefone", "email", "endereco",
	"complemento", "cidade", "bairro", "estado", "cep", "observacao",
}

type FornecedorRepository struct {
	coll     *mongo.Collection
	counters *Counters
}

func NewFornecedorRepository(db *mongo.Database) *FornecedorRepository {
	return &FornecedorRepository{coll: db.Collection("fornecedores"), counters: NewCounters(db)}
}

func (r *FornecedorRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cnpj", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cnpj"),
		},
		{
			Keys:    bson.D{{Key: "codigo_fornecedor", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_codigo_fornecedor"),
		},
	})
	return err
}

func (r *FornecedorRepository) List(ctx context.Context, busca string) ([]models.Fornecedor, error) {
	filter := bson.M{}
	if busca != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(utils.RemoverAcentos(busca)), Options: "i"}
		or := make([]bson.M, 0, len(camposTextoFornecedor))
		for _, campo := range camposTextoFornecedor {
			or = append(or, bson.M{campo: rx})
		}
		filter["$or"] = or
	}

	opts := options.Find().SetSort(bson.D{{Key: "tipoFornecedor", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, indisponivel(err)
	}
	defer cur.Close(ctx)

	list := []models.Fornecedor{}
	for cur.Next(ctx) {
		var f models.Fornecedor
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

func (r *FornecedorRepository) GetByID(ctx context.Context, id string) (*models.Fornecedor, error) {
	var f models.Fornecedor
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &f, nil
}

func (r *FornecedorRepository) Create(ctx context.Context, f *models.Fornecedor) (string, error) {
	codigo, err := r.counters.Next(ctx, "fornecedor", "FORN")
	if err != nil {
		return "", err
	}
	f.CodigoFornecedor = codigo
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

func (r *FornecedorRepository) Replace(ctx context.Context, id string, f *models.Fornecedor) error {
	atual, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	f.ID = id
	f.CodigoFornecedor = atual.CodigoFornecedor // imutável
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

func (r *FornecedorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return indisponivel(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

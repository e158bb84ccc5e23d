package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grupolocar/erp-server/internal/models"
)

type TipoFornecedorRepository struct {
	coll *mongo.Collection
}

func NewTipoFornecedorRepository(db *mongo.Database) *TipoFornecedorRepository {
	return &TipoFornecedorRepository{coll: db.Collection("tipos_fornecedor")}
}

func (r *TipoFornecedorRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "categoria", Value: 1}, {Key: "tipoFornecedor", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_categoria_tipo"),
	})
	return err
}

func (r *TipoFornecedorRepository) List(ctx context.Context) ([]models.TipoFornecedor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "categoria", Value: 1}, {Key: "tipoFornecedor", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, indisponivel(err)
	}
	defer cur.Close(ctx)

	list := []models.TipoFornecedor{}
	for cur.Next(ctx) {
		var t models.TipoFornecedor
		if err := cur.Decode(&t); err != nil {
			return nil, indisponivel(err)
		}
		list = append(list, t)
	}
	if err := cur.Err(); err != nil {
		return nil, indisponivel(err)
	}
	return list, nil
}

// Create devolve o registro existente quando o par categoria/tipo já foi
// cadastrado, em vez de falhar. O catálogo não guarda duplicatas.
func (r *TipoFornecedorRepository) Create(ctx context.Context, t *models.TipoFornecedor) (*models.TipoFornecedor, error) {
	var existente models.TipoFornecedor
	err := r.coll.FindOne(ctx, bson.M{
		"categoria":      t.Categoria,
		"tipoFornecedor": t.TipoFornecedor,
	}).Decode(&existente)
	if err == nil {
		return &existente, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, indisponivel(err)
	}

	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		if isDup(err) {
			// corrida entre o FindOne e o InsertOne: busca de novo
			if err2 := r.coll.FindOne(ctx, bson.M{
				"categoria":      t.Categoria,
				"tipoFornecedor": t.TipoFornecedor,
			}).Decode(&existente); err2 == nil {
				return &existente, nil
			}
		}
		return nil, indisponivel(err)
	}
	return t, nil
}

func (r *TipoFornecedorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return indisponivel(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

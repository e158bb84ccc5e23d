package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grupolocar/erp-server/internal/models"
	"github.com/grupolocar/erp-server/internal/utils"
)

var camposTextoCliente = []string{
	"codigo_cliente", "cliente", "razao_social", "cnpj", "insc_estadual",
	"responsavel", "cargo", "telefone", "email", "endereco", "complemento",
	"cidade", "bairro", "estado", "cep", "observacao",
}

type ClienteRepository struct {
	coll     *mongo.Collection
	counters *Counters
}

func NewClienteRepository(db *mongo.Database) *ClienteRepository {
	return &ClienteRepository{coll: db.Collection("clientes"), counters: NewCounters(db)}
}

func (r *ClienteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cnpj", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cnpj"),
		},
		{
			Keys:    bson.D{{Key: "codigo_cliente", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_codigo_cliente"),
		},
	})
	return err
}

// List: sem busca devolve tudo; com busca, substring accent-insensitive
// sobre os campos de texto. Ordena pelo nome de exibição.
func (r *ClienteRepository) List(ctx context.Context, busca string) ([]models.Cliente, error) {
	filter := bson.M{}
	if busca != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(utils.RemoverAcentos(busca)), Options: "i"}
		or := make([]bson.M, 0, len(camposTextoCliente))
		for _, campo := range camposTextoCliente {
			or = append(or, bson.M{campo: rx})
		}
		filter["$or"] = or
	}

	opts := options.Find().SetSort(bson.D{{Key: "cliente", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, indisponivel(err)
	}
	defer cur.Close(ctx)

	list := []models.Cliente{}
	for cur.Next(ctx) {
		var c models.Cliente
		if err := cur.Decode(&c); err != nil {
			return nil, indisponivel(err)
		}
		list = append(list, c)
	}
	if err := cur.Err(); err != nil {
		return nil, indisponivel(err)
	}
	return list, nil
}

func (r *ClienteRepository) GetByID(ctx context.Context, id string) (*models.Cliente, error) {
	var c models.Cliente
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &c, nil
}

// Create atribui o código sequencial (CLI-0000000001) — sempre gerado aqui,
// nunca aceito do payload.
func (r *ClienteRepository) Create(ctx context.Context, c *models.Cliente) (string, error) {
	codigo, err := r.counters.Next(ctx, "cliente", "CLI")
	if err != nil {
		return "", err
	}
	c.CodigoCliente = codigo
	if c.ID == "" {
		c.ID = utils.SoDigitos(c.CNPJ) // CNPJ normalizado serve de _id
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if isDup(err) {
			return "", ErrDuplicateCNPJ
		}
		return "", indisponivel(err)
	}
	return c.ID, nil
}

// Replace: o código sequencial é imutável — o que vier no payload é
// descartado e o valor persistido é preservado.
func (r *ClienteRepository) Replace(ctx context.Context, id string, c *models.Cliente) error {
	atual, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.ID = id
	c.CodigoCliente = atual.CodigoCliente
	c.CreatedAt = atual.CreatedAt
	c.UpdatedAt = time.Now()

	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, c); err != nil {
		if isDup(err) {
			return ErrDuplicateCNPJ
		}
		return indisponivel(err)
	}
	return nil
}

func (r *ClienteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return indisponivel(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

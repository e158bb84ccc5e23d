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

// FiltroPsl: facetas combinadas com AND. Valor vazio ou sentinela
// "Todos"/"Todas" não restringe. As datas delimitam um intervalo inclusivo
// de dias (DataFim cobre o dia inteiro).
type FiltroPsl struct {
	Busca      string
	Filial     string
	Distrital  string
	Ocorrencia string
	DataInicio time.Time
	DataFim    time.Time
}

var camposTextoPsl = []string{"filial", "distrital", "ocorrencia_psl", "observacao"}

type PslRepository struct {
	coll *mongo.Collection
}

func NewPslRepository(db *mongo.Database) *PslRepository {
	return &PslRepository{coll: db.Collection("psl")}
}

func (r *PslRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "data", Value: -1}},
		Options: options.Index().SetName("idx_data"),
	})
	return err
}

func (r *PslRepository) List(ctx context.Context, filtro FiltroPsl) ([]models.Psl, error) {
	and := []bson.M{}

	if !semRestricao(filtro.Filial) {
		and = append(and, bson.M{"filial": exatoInsensivel(filtro.Filial)})
	}
	if !semRestricao(filtro.Distrital) {
		and = append(and, bson.M{"distrital": exatoInsensivel(filtro.Distrital)})
	}
	if !semRestricao(filtro.Ocorrencia) {
		and = append(and, bson.M{"ocorrencia_psl": exatoInsensivel(filtro.Ocorrencia)})
	}

	periodo := bson.M{}
	if !filtro.DataInicio.IsZero() {
		periodo["$gte"] = meiaNoiteUTC(filtro.DataInicio)
	}
	if !filtro.DataFim.IsZero() {
		// próximo dia à meia-noite, exclusivo: cobre o dia final inteiro
		periodo["$lt"] = meiaNoiteUTC(filtro.DataFim).AddDate(0, 0, 1)
	}
	if len(periodo) > 0 {
		and = append(and, bson.M{"data": periodo})
	}

	if filtro.Busca != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(utils.RemoverAcentos(filtro.Busca)), Options: "i"}
		or := make([]bson.M, 0, len(camposTextoPsl))
		for _, campo := range camposTextoPsl {
			or = append(or, bson.M{campo: rx})
		}
		and = append(and, bson.M{"$or": or})
	}

	filter := bson.M{}
	if len(and) > 0 {
		filter["$and"] = and
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "data", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, indisponivel(err)
	}
	defer cur.Close(ctx)

	list := []models.Psl{}
	for cur.Next(ctx) {
		var p models.Psl
		if err := cur.Decode(&p); err != nil {
			return nil, indisponivel(err)
		}
		list = append(list, p)
	}
	if err := cur.Err(); err != nil {
		return nil, indisponivel(err)
	}
	return list, nil
}

func meiaNoiteUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *PslRepository) GetByID(ctx context.Context, id string) (*models.Psl, error) {
	var p models.Psl
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &p, nil
}

func (r *PslRepository) Create(ctx context.Context, p *models.Psl) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return "", indisponivel(err)
	}
	return p.ID, nil
}

func (r *PslRepository) Replace(ctx context.Context, id string, p *models.Psl) error {
	atual, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = atual.CreatedAt
	p.UpdatedAt = time.Now()
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, p); err != nil {
		return indisponivel(err)
	}
	return nil
}

func (r *PslRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return indisponivel(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

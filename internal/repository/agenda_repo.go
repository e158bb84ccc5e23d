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

type AgendaRepository struct {
	coll *mongo.Collection
}

func NewAgendaRepository(db *mongo.Database) *AgendaRepository {
	return &AgendaRepository{coll: db.Collection("agenda")}
}

func (r *AgendaRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "data", Value: 1}, {Key: "hora_inicio", Value: 1}},
		Options: options.Index().SetName("idx_data_hora"),
	})
	return err
}

func (r *AgendaRepository) List(ctx context.Context, data string) ([]models.AgendaRecord, error) {
	filter := bson.M{}
	if data != "" {
		filter["data"] = data
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "data", Value: 1},
		{Key: "hora_inicio", Value: 1},
	})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, indisponivel(err)
	}
	defer cur.Close(ctx)

	list := []models.AgendaRecord{}
	for cur.Next(ctx) {
		var a models.AgendaRecord
		if err := cur.Decode(&a); err != nil {
			return nil, indisponivel(err)
		}
		list = append(list, a)
	}
	if err := cur.Err(); err != nil {
		return nil, indisponivel(err)
	}
	return list, nil
}

func (r *AgendaRepository) GetByID(ctx context.Context, id string) (*models.AgendaRecord, error) {
	var a models.AgendaRecord
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &a, nil
}

// ImportBatch insere de uma vez as linhas vindas da planilha.
func (r *AgendaRepository) ImportBatch(ctx context.Context, recs []models.AgendaRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	agora := time.Now()
	docs := make([]any, 0, len(recs))
	for i := range recs {
		if recs[i].ID == "" {
			recs[i].ID = uuid.NewString()
		}
		recs[i].CreatedAt = agora
		recs[i].UpdatedAt = agora
		docs = append(docs, recs[i])
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, indisponivel(err)
	}
	return len(res.InsertedIDs), nil
}

// UpdateHoraInicio é a única edição permitida depois da importação.
func (r *AgendaRepository) UpdateHoraInicio(ctx context.Context, id, hora string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"hora_inicio": hora,
		"updated_at":  time.Now(),
	}})
	if err != nil {
		return indisponivel(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AgendaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return indisponivel(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PerfilIdealRepository guarda um único documento de configuração,
// sobrescrito a cada gravação.
type PerfilIdealRepository struct {
	coll *mongo.Collection
}

func NewPerfilIdealRepository(db *mongo.Database) *PerfilIdealRepository {
	return &PerfilIdealRepository{coll: db.Collection("perfil_ideal")}
}

const perfilIdealID = "perfil-ideal"

func (r *PerfilIdealRepository) Get(ctx context.Context) (*models.PerfilIdeal, error) {
	var p models.PerfilIdeal
	err := r.coll.FindOne(ctx, bson.M{"_id": perfilIdealID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, indisponivel(err)
	}
	return &p, nil
}

func (r *PerfilIdealRepository) Save(ctx context.Context, p *models.PerfilIdeal) error {
	p.ID = perfilIdealID
	p.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": perfilIdealID}, p, opts); err != nil {
		return indisponivel(err)
	}
	return nil
}

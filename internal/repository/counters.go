package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
Códigos sequenciais legíveis (CLI-0000000001, FIL-..., FORN-...) vêm de uma
coleção "counters": um documento por entidade, incrementado com
FindOneAndUpdate + $inc + upsert. O incremento é atômico no servidor, então
criações concorrentes recebem códigos distintos, crescentes e sem buracos.
*/

type Counters struct {
	coll *mongo.Collection
}

func NewCounters(db *mongo.Database) *Counters {
	return &Counters{coll: db.Collection("counters")}
}

func (c *Counters) Next(ctx context.Context, entidade, prefixo string) (string, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := c.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": entidade},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return "", indisponivel(err)
	}
	return fmt.Sprintf("%s-%010d", prefixo, doc.Seq), nil
}

package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garajdev/garage-api/internal/models"
)

// PartCollection defines the interface for the lazily-built parts catalog.
type PartCollection interface {
	UpsertPart(ctx context.Context, name string) (*models.Part, error)
	FindParts(ctx context.Context, search string) ([]models.Part, error)
}

// MongoPartCollection implements PartCollection for MongoDB.
type MongoPartCollection struct {
	Collection *mongo.Collection
}

// UpsertPart finds a part by exact name or creates it. Implemented as a
// single FindOneAndUpdate upsert under the unique name index, so two
// concurrent requests that both miss cannot double-insert.
func (c *MongoPartCollection) UpsertPart(ctx context.Context, name string) (*models.Part, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var part models.Part
	err := c.Collection.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"name": name, "created_at": now},
		},
		opts,
	).Decode(&part)
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return &part, nil
}

// FindParts queries the catalog sorted by name.
func (c *MongoPartCollection) FindParts(ctx context.Context, search string) ([]models.Part, error) {
	filter := bson.M{}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := c.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	parts := []models.Part{}
	if err := cursor.All(ctx, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

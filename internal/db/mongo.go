package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned for malformed object id strings.
	ErrInvalidID = errors.New("invalid id format")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("record already exists")
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the write paths rely on. Plate and
// part-name uniqueness are pre-checked in the handlers for friendly errors,
// but the index is what actually closes the race between concurrent inserts.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"users":             {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"customer_vehicles": {Keys: bson.D{{Key: "plate", Value: 1}}, Options: unique},
		"parts":             {Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
	}
	for coll, model := range indexes {
		if _, err := database.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}

	qrIndex := mongo.IndexModel{Keys: bson.D{{Key: "qr_code", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)}
	if _, err := database.Collection("customer_vehicles").Indexes().CreateOne(ctx, qrIndex); err != nil {
		return fmt.Errorf("create qr index: %w", err)
	}
	return nil
}

// wrapWriteErr maps driver errors to package sentinels.
func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

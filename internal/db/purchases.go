package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/garajdev/garage-api/internal/models"
)

// PurchaseCollection defines the interface for purchase ledger operations.
type PurchaseCollection interface {
	InsertPurchase(ctx context.Context, purchase models.Purchase) (primitive.ObjectID, error)
	FindPurchaseByID(ctx context.Context, id string) (*models.Purchase, error)
	FindPurchases(ctx context.Context, q ListQuery) ([]models.Purchase, error)
	UpdatePurchase(ctx context.Context, id string, purchase models.Purchase) error
	DeletePurchase(ctx context.Context, id string) error
}

// MongoPurchaseCollection implements PurchaseCollection for MongoDB.
type MongoPurchaseCollection struct {
	Collection *mongo.Collection
}

// InsertPurchase inserts a purchase record.
func (c *MongoPurchaseCollection) InsertPurchase(ctx context.Context, purchase models.Purchase) (primitive.ObjectID, error) {
	purchase.CreatedAt = time.Now()
	purchase.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, purchase)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindPurchaseByID finds a purchase by its ID.
func (c *MongoPurchaseCollection) FindPurchaseByID(ctx context.Context, id string) (*models.Purchase, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var purchase models.Purchase
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&purchase)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindPurchases queries the ledger, newest first. Search matches the part and
// supplier name snapshots.
func (c *MongoPurchaseCollection) FindPurchases(ctx context.Context, q ListQuery) ([]models.Purchase, error) {
	filter := q.searchFilter("part_name", "supplier_name")
	cursor, err := c.Collection.Find(ctx, filter, q.findOptions(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	purchases := []models.Purchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// UpdatePurchase replaces a purchase by its ID.
func (c *MongoPurchaseCollection) UpdatePurchase(ctx context.Context, id string, purchase models.Purchase) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	purchase.ID = objectID
	purchase.UpdatedAt = time.Now()

	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, purchase)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePurchase deletes a purchase by its ID.
func (c *MongoPurchaseCollection) DeletePurchase(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

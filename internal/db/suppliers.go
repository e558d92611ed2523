package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garajdev/garage-api/internal/models"
)

// SupplierCollection defines the interface for supplier operations.
type SupplierCollection interface {
	InsertSupplier(ctx context.Context, supplier models.Supplier) (primitive.ObjectID, error)
	FindSupplierByID(ctx context.Context, id string) (*models.Supplier, error)
	FindSuppliers(ctx context.Context, search string) ([]models.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, supplier models.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
}

// MongoSupplierCollection implements SupplierCollection for MongoDB.
type MongoSupplierCollection struct {
	Collection *mongo.Collection
}

// InsertSupplier inserts a supplier record.
func (c *MongoSupplierCollection) InsertSupplier(ctx context.Context, supplier models.Supplier) (primitive.ObjectID, error) {
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, supplier)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindSupplierByID finds a supplier by its ID.
func (c *MongoSupplierCollection) FindSupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var supplier models.Supplier
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&supplier)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// FindSuppliers queries suppliers sorted by shop name.
func (c *MongoSupplierCollection) FindSuppliers(ctx context.Context, search string) ([]models.Supplier, error) {
	filter := bson.M{}
	if search != "" {
		filter["shop_name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := c.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "shop_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	suppliers := []models.Supplier{}
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// UpdateSupplier replaces a supplier by its ID.
func (c *MongoSupplierCollection) UpdateSupplier(ctx context.Context, id string, supplier models.Supplier) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	supplier.ID = objectID
	supplier.UpdatedAt = time.Now()

	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, supplier)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSupplier deletes a supplier by its ID.
func (c *MongoSupplierCollection) DeleteSupplier(ctx context.Context, id string) error {
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

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

// VehicleCollection defines the interface for customer vehicle operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.CustomerVehicle) (primitive.ObjectID, error)
	FindVehicleByID(ctx context.Context, id string) (*models.CustomerVehicle, error)
	FindVehicleByPlate(ctx context.Context, plate string) (*models.CustomerVehicle, error)
	FindVehicleByQRCode(ctx context.Context, qrCode string) (*models.CustomerVehicle, error)
	FindVehicles(ctx context.Context, q ListQuery) ([]models.CustomerVehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.CustomerVehicle) error
	SetOilChangeBaseline(ctx context.Context, id string, km float64, date time.Time) error
	DeleteVehicle(ctx context.Context, id string) error
}

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record into the collection.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.CustomerVehicle) (primitive.ObjectID, error) {
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindVehicleByID finds a vehicle by its ID.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.CustomerVehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return c.findOne(ctx, bson.M{"_id": objectID})
}

// FindVehicleByPlate finds a vehicle by its normalized plate.
func (c *MongoVehicleCollection) FindVehicleByPlate(ctx context.Context, plate string) (*models.CustomerVehicle, error) {
	return c.findOne(ctx, bson.M{"plate": plate})
}

// FindVehicleByQRCode finds a vehicle by its public lookup key.
func (c *MongoVehicleCollection) FindVehicleByQRCode(ctx context.Context, qrCode string) (*models.CustomerVehicle, error) {
	return c.findOne(ctx, bson.M{"qr_code": qrCode})
}

func (c *MongoVehicleCollection) findOne(ctx context.Context, filter bson.M) (*models.CustomerVehicle, error) {
	var vehicle models.CustomerVehicle
	err := c.Collection.FindOne(ctx, filter).Decode(&vehicle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindVehicles queries vehicles, newest first. Search matches customer name,
// plate, brand and model.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context, q ListQuery) ([]models.CustomerVehicle, error) {
	filter := q.searchFilter("customer_name", "plate", "brand", "model")
	cursor, err := c.Collection.Find(ctx, filter, q.findOptions(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.CustomerVehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// UpdateVehicle replaces a vehicle by its ID.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.CustomerVehicle) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	vehicle.ID = objectID
	vehicle.UpdatedAt = time.Now()

	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, vehicle)
	if err != nil {
		return wrapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOilChangeBaseline overwrites the vehicle's last-oil-change mileage and
// date. The previous baseline is lost; no history is kept.
func (c *MongoVehicleCollection) SetOilChangeBaseline(ctx context.Context, id string, km float64, date time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"last_oil_change_km":   km,
		"last_oil_change_date": date,
		"updated_at":           time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVehicle deletes a vehicle by its ID.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
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

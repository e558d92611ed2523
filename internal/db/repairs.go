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

// RepairCollection defines the interface for repair order operations.
type RepairCollection interface {
	InsertRepair(ctx context.Context, repair models.Repair) (primitive.ObjectID, error)
	FindRepairByID(ctx context.Context, id string) (*models.Repair, error)
	FindRepairs(ctx context.Context, q ListQuery) ([]models.Repair, error)
	FindRepairsByVehicle(ctx context.Context, vehicleID primitive.ObjectID) ([]models.Repair, error)
	UpdateRepair(ctx context.Context, id string, repair models.Repair) error
	MarkRepairPaid(ctx context.Context, id string, paidBy primitive.ObjectID, paidAt time.Time) error
	DeleteRepair(ctx context.Context, id string) error
}

// MongoRepairCollection implements RepairCollection for MongoDB.
type MongoRepairCollection struct {
	Collection *mongo.Collection
}

// InsertRepair inserts a repair order.
func (c *MongoRepairCollection) InsertRepair(ctx context.Context, repair models.Repair) (primitive.ObjectID, error) {
	repair.CreatedAt = time.Now()
	repair.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, repair)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindRepairByID finds a repair by its ID.
func (c *MongoRepairCollection) FindRepairByID(ctx context.Context, id string) (*models.Repair, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var repair models.Repair
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&repair)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &repair, nil
}

// FindRepairs queries repair orders, newest first. Search matches the plate,
// brand and model snapshots and the description.
func (c *MongoRepairCollection) FindRepairs(ctx context.Context, q ListQuery) ([]models.Repair, error) {
	filter := q.searchFilter("plate", "brand", "model", "description")
	cursor, err := c.Collection.Find(ctx, filter, q.findOptions(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	repairs := []models.Repair{}
	if err := cursor.All(ctx, &repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

// FindRepairsByVehicle returns a vehicle's full service history, newest first.
func (c *MongoRepairCollection) FindRepairsByVehicle(ctx context.Context, vehicleID primitive.ObjectID) ([]models.Repair, error) {
	cursor, err := c.Collection.Find(ctx,
		bson.M{"customer_vehicle_id": vehicleID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	repairs := []models.Repair{}
	if err := cursor.All(ctx, &repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

// UpdateRepair replaces a repair by its ID.
func (c *MongoRepairCollection) UpdateRepair(ctx context.Context, id string, repair models.Repair) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	repair.ID = objectID
	repair.UpdatedAt = time.Now()

	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, repair)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRepairPaid sets the one-way payment flag. The filter matches only
// unpaid documents, so a concurrent double-mark loses the race and reports
// not found.
func (c *MongoRepairCollection) MarkRepairPaid(ctx context.Context, id string, paidBy primitive.ObjectID, paidAt time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "is_paid": false},
		bson.M{"$set": bson.M{
			"is_paid":    true,
			"paid_at":    paidAt,
			"paid_by":    paidBy,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRepair deletes a repair by its ID.
func (c *MongoRepairCollection) DeleteRepair(ctx context.Context, id string) error {
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

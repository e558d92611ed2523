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

// ExpenseCollection defines the interface for expense ledger operations.
type ExpenseCollection interface {
	InsertExpense(ctx context.Context, expense models.Expense) (primitive.ObjectID, error)
	FindExpenseByID(ctx context.Context, id string) (*models.Expense, error)
	FindExpenses(ctx context.Context, q ListQuery) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, id string, expense models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

// MongoExpenseCollection implements ExpenseCollection for MongoDB.
type MongoExpenseCollection struct {
	Collection *mongo.Collection
}

// InsertExpense inserts an expense record.
func (c *MongoExpenseCollection) InsertExpense(ctx context.Context, expense models.Expense) (primitive.ObjectID, error) {
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, expense)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindExpenseByID finds an expense by its ID.
func (c *MongoExpenseCollection) FindExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var expense models.Expense
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&expense)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// FindExpenses queries the ledger, newest first. Search matches the name.
func (c *MongoExpenseCollection) FindExpenses(ctx context.Context, q ListQuery) ([]models.Expense, error) {
	filter := q.searchFilter("name")
	cursor, err := c.Collection.Find(ctx, filter, q.findOptions(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateExpense replaces an expense by its ID.
func (c *MongoExpenseCollection) UpdateExpense(ctx context.Context, id string, expense models.Expense) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	expense.ID = objectID
	expense.UpdatedAt = time.Now()

	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, expense)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpense deletes an expense by its ID.
func (c *MongoExpenseCollection) DeleteExpense(ctx context.Context, id string) error {
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

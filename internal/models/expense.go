package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseCategory enumerates the expense ledger categories.
type ExpenseCategory string

const (
	ExpenseFood      ExpenseCategory = "food"
	ExpenseMaterials ExpenseCategory = "materials"
	ExpenseOther     ExpenseCategory = "other"
)

// IsValidExpenseCategory checks if a category is one of the known values.
func IsValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case ExpenseFood, ExpenseMaterials, ExpenseOther:
		return true
	default:
		return false
	}
}

// Expense is a shop running cost. TotalCost is computed at write time.
type Expense struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date      time.Time          `bson:"date" json:"date"`
	Name      string             `bson:"name" json:"name"`
	Category  ExpenseCategory    `bson:"category" json:"category"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	TotalCost float64            `bson:"total_cost" json:"totalCost"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Part is a catalog entry created lazily: any purchase or repair referencing
// an unknown part name inserts it on the fly.
type Part struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier is a parts vendor.
type Supplier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShopName  string             `bson:"shop_name" json:"shopName"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

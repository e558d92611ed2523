package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase is a parts purchase from a supplier. TotalCost is computed at
// write time (quantity × price); part and supplier names are captured as
// snapshots so the ledger stays readable even if the referenced records
// change later.
type Purchase struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date         time.Time          `bson:"date" json:"date"`
	SupplierID   primitive.ObjectID `bson:"supplier_id" json:"supplier"`
	SupplierName string             `bson:"supplier_name" json:"supplierName"`
	PartID       primitive.ObjectID `bson:"part_id" json:"part"`
	PartName     string             `bson:"part_name" json:"partName"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
	Price        float64            `bson:"price" json:"price"`
	TotalCost    float64            `bson:"total_cost" json:"totalCost"`
	CreatedBy    primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RepairPart is a line item on a repair order. PartName snapshots the catalog
// name at write time.
type RepairPart struct {
	PartID   primitive.ObjectID `bson:"part_id" json:"part"`
	PartName string             `bson:"part_name" json:"partName"`
	Quantity float64            `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// Repair is a repair order. Brand, model and plate are copied from the
// vehicle at creation time on purpose: they are a historical snapshot and
// stay as written even if the vehicle record changes later.
//
// Once IsPaid flips to true it never flips back; a second payment mark is
// rejected at the handler.
type Repair struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Date              time.Time           `bson:"date" json:"date"`
	CustomerVehicleID primitive.ObjectID  `bson:"customer_vehicle_id,omitempty" json:"customerVehicle"`
	Brand             string              `bson:"brand" json:"brand"`
	Model             string              `bson:"model" json:"model"`
	Plate             string              `bson:"plate" json:"plate"`
	CurrentKm         float64             `bson:"current_km" json:"currentKm"`
	CurrentIssues     string              `bson:"current_issues" json:"currentIssues"`
	IsOilChange       bool                `bson:"is_oil_change" json:"isOilChange"`
	NextOilChangeKm   float64             `bson:"next_oil_change_km" json:"nextOilChangeKm"`
	Description       string              `bson:"description" json:"description"`
	Parts             []RepairPart        `bson:"parts" json:"parts"`
	LaborCost         float64             `bson:"labor_cost" json:"laborCost"`
	PartsCost         float64             `bson:"parts_cost" json:"partsCost"`
	TotalCost         float64             `bson:"total_cost" json:"totalCost"`
	IsPaid            bool                `bson:"is_paid" json:"isPaid"`
	PaidAt            *time.Time          `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	PaidBy            *primitive.ObjectID `bson:"paid_by,omitempty" json:"paidBy,omitempty"`
	CreatedAt         time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updatedAt"`
}

// ComputeCosts recalculates PartsCost and TotalCost from the line items and
// labor cost. Called on every create and update so the stored totals always
// match the line items at the moment of last write.
func (r *Repair) ComputeCosts() {
	parts := 0.0
	for _, item := range r.Parts {
		parts += item.Quantity * item.Price
	}
	r.PartsCost = parts
	r.TotalCost = r.LaborCost + parts
}

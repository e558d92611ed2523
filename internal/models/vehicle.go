package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultOilChangeIntervalKm is applied when a vehicle is created without an
// explicit service interval.
const DefaultOilChangeIntervalKm = 10000

// CustomerVehicle represents a customer's vehicle on file.
// The plate is stored normalized upper-case and is unique across the
// collection. QRCode is generated once at creation and never changes; it is
// the public lookup key for the unauthenticated service-history view.
type CustomerVehicle struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName        string             `bson:"customer_name" json:"customerName"`
	CustomerPhone       string             `bson:"customer_phone" json:"customerPhone"`
	Brand               string             `bson:"brand" json:"brand"`
	Model               string             `bson:"model" json:"model"`
	Plate               string             `bson:"plate" json:"plate"`
	Year                int                `bson:"year" json:"year"`
	Notes               string             `bson:"notes" json:"notes"`
	QRCode              string             `bson:"qr_code" json:"qrCode"`
	LastOilChangeKm     float64            `bson:"last_oil_change_km" json:"lastOilChangeKm"`
	LastOilChangeDate   *time.Time         `bson:"last_oil_change_date,omitempty" json:"lastOilChangeDate,omitempty"`
	OilChangeIntervalKm float64            `bson:"oil_change_interval_km" json:"oilChangeIntervalKm"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ServiceStatus is the derived oil-change projection shown on history views.
type ServiceStatus struct {
	KmSinceLastChange float64 `json:"kmSinceLastChange"`
	RemainingKm       float64 `json:"remainingKm"`
	IsOverdue         bool    `json:"isOverdue"`
	EstimatedNextKm   float64 `json:"estimatedNextKm"`
}

// ServiceStatusAt projects the vehicle's oil-change status given the highest
// mileage seen across its repairs. With no repairs on file the distance since
// the last change is treated as zero.
func (v *CustomerVehicle) ServiceStatusAt(latestKm float64) ServiceStatus {
	interval := v.OilChangeIntervalKm
	if interval <= 0 {
		interval = DefaultOilChangeIntervalKm
	}

	since := 0.0
	if latestKm > 0 {
		since = latestKm - v.LastOilChangeKm
		if since < 0 {
			since = 0
		}
	}

	remaining := interval - since
	overdue := remaining <= 0
	if remaining < 0 {
		remaining = 0
	}

	return ServiceStatus{
		KmSinceLastChange: since,
		RemainingKm:       remaining,
		IsOverdue:         overdue,
		EstimatedNextKm:   v.LastOilChangeKm + interval,
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/middleware"
	"github.com/garajdev/garage-api/internal/models"
)

// RepairHandler handles repair orders, including the embedded
// service-interval tracking and the one-way payment flag.
type RepairHandler struct {
	repairs  db.RepairCollection
	vehicles db.VehicleCollection
	parts    db.PartCollection
}

// NewRepairHandler creates a new repair handler.
func NewRepairHandler(repairs db.RepairCollection, vehicles db.VehicleCollection, parts db.PartCollection) *RepairHandler {
	return &RepairHandler{repairs: repairs, vehicles: vehicles, parts: parts}
}

type repairPartRequest struct {
	PartName string  `json:"partName"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

type repairRequest struct {
	Date            *time.Time          `json:"date"`
	CustomerVehicle string              `json:"customerVehicle"`
	CurrentKm       *float64            `json:"currentKm"`
	CurrentIssues   *string             `json:"currentIssues"`
	IsOilChange     *bool               `json:"isOilChange"`
	NextOilChangeKm *float64            `json:"nextOilChangeKm"`
	Description     string              `json:"description"`
	Parts           []repairPartRequest `json:"parts"`
	LaborCost       *float64            `json:"laborCost"`
}

// List returns repair orders, newest first.
func (h *RepairHandler) List(w http.ResponseWriter, r *http.Request) {
	repairs, err := h.repairs.FindRepairs(r.Context(), parseListQuery(r))
	if err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}
	writeJSON(w, http.StatusOK, repairs)
}

// Get returns a single repair order.
func (h *RepairHandler) Get(w http.ResponseWriter, r *http.Request) {
	repair, err := h.repairs.FindRepairByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}
	writeJSON(w, http.StatusOK, repair)
}

// Create records a repair order. Brand, model and plate are snapshotted from
// the vehicle; parts are upserted by name; costs are computed at write time.
// An oil-change repair with a recorded mileage also rewrites the vehicle's
// oil-change baseline.
func (h *RepairHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req repairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "Description is required")
		return
	}
	if req.LaborCost == nil || *req.LaborCost < 0 {
		writeError(w, http.StatusBadRequest, "Labor cost cannot be negative")
		return
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), req.CustomerVehicle)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrInvalidID) {
			writeError(w, http.StatusBadRequest, "Vehicle not found")
			return
		}
		writeStoreError(w, err, "Vehicle not found")
		return
	}

	repair := models.Repair{
		Date:              time.Now(),
		CustomerVehicleID: vehicle.ID,
		Brand:             vehicle.Brand,
		Model:             vehicle.Model,
		Plate:             vehicle.Plate,
		Description:       req.Description,
		LaborCost:         *req.LaborCost,
		Parts:             []models.RepairPart{},
	}
	if req.Date != nil {
		repair.Date = *req.Date
	}
	if req.CurrentKm != nil {
		repair.CurrentKm = *req.CurrentKm
	}
	if req.CurrentIssues != nil {
		repair.CurrentIssues = *req.CurrentIssues
	}
	if req.IsOilChange != nil {
		repair.IsOilChange = *req.IsOilChange
	}
	if req.NextOilChangeKm != nil {
		repair.NextOilChangeKm = *req.NextOilChangeKm
	}

	if ok := h.appendParts(w, r, &repair, req.Parts); !ok {
		return
	}
	repair.ComputeCosts()

	id, err := h.repairs.InsertRepair(r.Context(), repair)
	if err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}
	repair.ID = id

	// Second, independent write: a crash here leaves the baseline stale
	// relative to the repair record (accepted).
	if repair.IsOilChange && repair.CurrentKm > 0 {
		h.updateOilChangeBaseline(r, vehicle.ID.Hex(), repair)
	}

	writeJSON(w, http.StatusCreated, repair)
}

// Update modifies a repair order; omitted fields keep their current value and
// costs are always recomputed. If the update newly marks the repair as an oil
// change, the vehicle's baseline is rewritten.
func (h *RepairHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req repairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	repair, err := h.repairs.FindRepairByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}
	wasOilChange := repair.IsOilChange

	if req.Date != nil {
		repair.Date = *req.Date
	}
	if req.Description != "" {
		repair.Description = req.Description
	}
	if req.CurrentKm != nil {
		repair.CurrentKm = *req.CurrentKm
	}
	if req.CurrentIssues != nil {
		repair.CurrentIssues = *req.CurrentIssues
	}
	if req.IsOilChange != nil {
		repair.IsOilChange = *req.IsOilChange
	}
	if req.NextOilChangeKm != nil {
		repair.NextOilChangeKm = *req.NextOilChangeKm
	}
	if req.LaborCost != nil {
		if *req.LaborCost < 0 {
			writeError(w, http.StatusBadRequest, "Labor cost cannot be negative")
			return
		}
		repair.LaborCost = *req.LaborCost
	}
	if req.Parts != nil {
		repair.Parts = []models.RepairPart{}
		if ok := h.appendParts(w, r, repair, req.Parts); !ok {
			return
		}
	}
	repair.ComputeCosts()

	if err := h.repairs.UpdateRepair(r.Context(), r.PathValue("id"), *repair); err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}

	if repair.IsOilChange && !wasOilChange && repair.CurrentKm > 0 {
		h.updateOilChangeBaseline(r, repair.CustomerVehicleID.Hex(), *repair)
	}

	writeJSON(w, http.StatusOK, repair)
}

// MarkPayment flips the one-way payment flag. A repair already marked paid
// rejects the second attempt and keeps its original paidAt/paidBy.
func (h *RepairHandler) MarkPayment(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	repair, err := h.repairs.FindRepairByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}
	if repair.IsPaid {
		writeError(w, http.StatusBadRequest, "Repair is already marked as paid")
		return
	}

	now := time.Now()
	if err := h.repairs.MarkRepairPaid(r.Context(), r.PathValue("id"), caller.ID, now); err != nil {
		// ErrNotFound here means a concurrent request won the race.
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Repair is already marked as paid")
			return
		}
		writeStoreError(w, err, "Repair not found")
		return
	}

	repair.IsPaid = true
	repair.PaidAt = &now
	repair.PaidBy = &caller.ID
	writeJSON(w, http.StatusOK, repair)
}

// Delete removes a repair order.
func (h *RepairHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repairs.DeleteRepair(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}
	writeMessage(w, http.StatusOK, "Repair deleted")
}

// appendParts upserts each named part and appends the line items. Returns
// false after writing an error response.
func (h *RepairHandler) appendParts(w http.ResponseWriter, r *http.Request, repair *models.Repair, items []repairPartRequest) bool {
	for _, item := range items {
		name := strings.TrimSpace(item.PartName)
		if name == "" {
			writeError(w, http.StatusBadRequest, "Part name is required")
			return false
		}
		if item.Quantity < 1 {
			writeError(w, http.StatusBadRequest, "Part quantity must be at least 1")
			return false
		}
		if item.Price < 0 {
			writeError(w, http.StatusBadRequest, "Part price cannot be negative")
			return false
		}

		part, err := h.parts.UpsertPart(r.Context(), name)
		if err != nil {
			writeStoreError(w, err, "Part not found")
			return false
		}
		repair.Parts = append(repair.Parts, models.RepairPart{
			PartID:   part.ID,
			PartName: part.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return true
}

func (h *RepairHandler) updateOilChangeBaseline(r *http.Request, vehicleID string, repair models.Repair) {
	if err := h.vehicles.SetOilChangeBaseline(r.Context(), vehicleID, repair.CurrentKm, repair.Date); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Error("failed to update oil change baseline")
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

// VehicleHandler handles customer vehicle records, their service history and
// the QR lookup views.
type VehicleHandler struct {
	vehicles db.VehicleCollection
	repairs  db.RepairCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection, repairs db.RepairCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, repairs: repairs}
}

type vehicleRequest struct {
	CustomerName        string   `json:"customerName"`
	CustomerPhone       string   `json:"customerPhone"`
	Brand               string   `json:"brand"`
	Model               string   `json:"model"`
	Plate               string   `json:"plate"`
	Year                *int     `json:"year"`
	Notes               *string  `json:"notes"`
	OilChangeIntervalKm *float64 `json:"oilChangeIntervalKm"`
}

// List returns vehicles matching the search term, newest first.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehicles(r.Context(), parseListQuery(r))
	if err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Get returns a single vehicle by id.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// History returns the vehicle with its repair records and the derived
// oil-change status.
func (h *VehicleHandler) History(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}
	h.writeHistory(w, r, vehicle, false)
}

// PublicHistory is the unauthenticated QR-code lookup. The customer's phone
// number is withheld from the public view.
func (h *VehicleHandler) PublicHistory(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByQRCode(r.Context(), r.PathValue("qrCode"))
	if err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}
	h.writeHistory(w, r, vehicle, true)
}

func (h *VehicleHandler) writeHistory(w http.ResponseWriter, r *http.Request, vehicle *models.CustomerVehicle, public bool) {
	repairs, err := h.repairs.FindRepairsByVehicle(r.Context(), vehicle.ID)
	if err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}

	totalCost := 0.0
	for _, rep := range repairs {
		totalCost += rep.TotalCost
	}

	// Repairs come back newest first; the projection runs off the most
	// recent recorded mileage.
	latestKm := 0.0
	if len(repairs) > 0 {
		latestKm = repairs[0].CurrentKm
	}

	if public {
		vehicle.CustomerPhone = ""
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"vehicle":       vehicle,
		"repairs":       repairs,
		"totalRepairs":  len(repairs),
		"totalCost":     totalCost,
		"serviceStatus": vehicle.ServiceStatusAt(latestKm),
	})
}

// QR renders the vehicle's public lookup key as a PNG.
func (h *VehicleHandler) QR(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}

	png, err := qrcode.Encode(vehicle.QRCode, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Create registers a vehicle. The plate is normalized upper-case and must be
// unique; the QR lookup key is generated here and never changes.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	plate := normalizePlate(req.Plate)
	if req.CustomerName == "" || plate == "" {
		writeError(w, http.StatusBadRequest, "Customer name and plate are required")
		return
	}

	if _, err := h.vehicles.FindVehicleByPlate(r.Context(), plate); err == nil {
		writeError(w, http.StatusBadRequest, "This plate is already registered")
		return
	}

	vehicle := models.CustomerVehicle{
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
		Brand:               strings.TrimSpace(req.Brand),
		Model:               strings.TrimSpace(req.Model),
		Plate:               plate,
		Notes:               "",
		QRCode:              uuid.NewString(),
		OilChangeIntervalKm: models.DefaultOilChangeIntervalKm,
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Notes != nil {
		vehicle.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.OilChangeIntervalKm != nil && *req.OilChangeIntervalKm > 0 {
		vehicle.OilChangeIntervalKm = *req.OilChangeIntervalKm
	}

	id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "This plate is already registered")
			return
		}
		writeStoreError(w, err, "Vehicle not found")
		return
	}

	vehicle.ID = id
	writeJSON(w, http.StatusCreated, vehicle)
}

// Update modifies a vehicle; omitted fields keep their current value. The QR
// code and the oil-change baseline are not client-writable here.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}

	if plate := normalizePlate(req.Plate); plate != "" && plate != vehicle.Plate {
		if _, err := h.vehicles.FindVehicleByPlate(r.Context(), plate); err == nil {
			writeError(w, http.StatusBadRequest, "This plate is already registered")
			return
		}
		vehicle.Plate = plate
	}
	if req.CustomerName != "" {
		vehicle.CustomerName = strings.TrimSpace(req.CustomerName)
	}
	if req.CustomerPhone != "" {
		vehicle.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	}
	if req.Brand != "" {
		vehicle.Brand = strings.TrimSpace(req.Brand)
	}
	if req.Model != "" {
		vehicle.Model = strings.TrimSpace(req.Model)
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Notes != nil {
		vehicle.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.OilChangeIntervalKm != nil && *req.OilChangeIntervalKm > 0 {
		vehicle.OilChangeIntervalKm = *req.OilChangeIntervalKm
	}

	if err := h.vehicles.UpdateVehicle(r.Context(), r.PathValue("id"), *vehicle); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "This plate is already registered")
			return
		}
		writeStoreError(w, err, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Delete removes a vehicle.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.DeleteVehicle(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Vehicle not found")
		return
	}
	writeMessage(w, http.StatusOK, "Vehicle deleted")
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

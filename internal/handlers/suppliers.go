package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

// SupplierHandler handles the supplier catalog.
type SupplierHandler struct {
	suppliers db.SupplierCollection
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(suppliers db.SupplierCollection) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

type supplierRequest struct {
	ShopName string `json:"shopName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// List returns suppliers sorted by shop name.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.FindSuppliers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeStoreError(w, err, "Supplier not found")
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// Create adds a supplier.
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.ShopName) == "" {
		writeError(w, http.StatusBadRequest, "Shop name is required")
		return
	}

	supplier := models.Supplier{
		ShopName: strings.TrimSpace(req.ShopName),
		Phone:    req.Phone,
		Address:  req.Address,
	}

	id, err := h.suppliers.InsertSupplier(r.Context(), supplier)
	if err != nil {
		writeStoreError(w, err, "Supplier not found")
		return
	}

	supplier.ID = id
	writeJSON(w, http.StatusCreated, supplier)
}

// Update modifies a supplier; omitted fields keep their current value.
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	supplier, err := h.suppliers.FindSupplierByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Supplier not found")
		return
	}

	if req.ShopName != "" {
		supplier.ShopName = strings.TrimSpace(req.ShopName)
	}
	if req.Phone != "" {
		supplier.Phone = req.Phone
	}
	if req.Address != "" {
		supplier.Address = req.Address
	}

	if err := h.suppliers.UpdateSupplier(r.Context(), r.PathValue("id"), *supplier); err != nil {
		writeStoreError(w, err, "Supplier not found")
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}

// Delete removes a supplier.
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.suppliers.DeleteSupplier(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Supplier not found")
		return
	}
	writeMessage(w, http.StatusOK, "Supplier deleted")
}

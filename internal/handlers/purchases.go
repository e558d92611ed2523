package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/middleware"
	"github.com/garajdev/garage-api/internal/models"
)

// PurchaseHandler handles the parts purchase ledger.
type PurchaseHandler struct {
	purchases db.PurchaseCollection
	suppliers db.SupplierCollection
	parts     db.PartCollection
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(purchases db.PurchaseCollection, suppliers db.SupplierCollection, parts db.PartCollection) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, suppliers: suppliers, parts: parts}
}

type purchaseRequest struct {
	Date     *time.Time `json:"date"`
	Supplier string     `json:"supplier"`
	PartName string     `json:"partName"`
	Quantity *float64   `json:"quantity"`
	Price    *float64   `json:"price"`
}

// List returns purchases, newest first.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchases.FindPurchases(r.Context(), parseListQuery(r))
	if err != nil {
		writeStoreError(w, err, "Purchase not found")
		return
	}
	writeJSON(w, http.StatusOK, purchases)
}

// Create records a purchase. The part is upserted by name; totalCost is
// computed here, at write time.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	partName := strings.TrimSpace(req.PartName)
	if partName == "" {
		writeError(w, http.StatusBadRequest, "Part name is required")
		return
	}
	if req.Quantity == nil || *req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	if req.Price == nil || *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "Price cannot be negative")
		return
	}

	supplier, err := h.suppliers.FindSupplierByID(r.Context(), req.Supplier)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrInvalidID) {
			writeError(w, http.StatusBadRequest, "Supplier not found")
			return
		}
		writeStoreError(w, err, "Supplier not found")
		return
	}

	part, err := h.parts.UpsertPart(r.Context(), partName)
	if err != nil {
		writeStoreError(w, err, "Part not found")
		return
	}

	purchase := models.Purchase{
		Date:         time.Now(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.ShopName,
		PartID:       part.ID,
		PartName:     part.Name,
		Quantity:     *req.Quantity,
		Price:        *req.Price,
		TotalCost:    *req.Quantity * *req.Price,
		CreatedBy:    caller.ID,
	}
	if req.Date != nil {
		purchase.Date = *req.Date
	}

	id, err := h.purchases.InsertPurchase(r.Context(), purchase)
	if err != nil {
		writeStoreError(w, err, "Purchase not found")
		return
	}

	purchase.ID = id
	writeJSON(w, http.StatusCreated, purchase)
}

// Update modifies a purchase; omitted fields keep their current value and
// totalCost is always recomputed from the resulting quantity and price.
func (h *PurchaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	purchase, err := h.purchases.FindPurchaseByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Purchase not found")
		return
	}

	if req.Date != nil {
		purchase.Date = *req.Date
	}
	if req.Supplier != "" {
		supplier, err := h.suppliers.FindSupplierByID(r.Context(), req.Supplier)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrInvalidID) {
				writeError(w, http.StatusBadRequest, "Supplier not found")
				return
			}
			writeStoreError(w, err, "Supplier not found")
			return
		}
		purchase.SupplierID = supplier.ID
		purchase.SupplierName = supplier.ShopName
	}
	if partName := strings.TrimSpace(req.PartName); partName != "" {
		part, err := h.parts.UpsertPart(r.Context(), partName)
		if err != nil {
			writeStoreError(w, err, "Part not found")
			return
		}
		purchase.PartID = part.ID
		purchase.PartName = part.Name
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			writeError(w, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
		purchase.Quantity = *req.Quantity
	}
	if req.Price != nil {
		if *req.Price < 0 {
			writeError(w, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		purchase.Price = *req.Price
	}
	purchase.TotalCost = purchase.Quantity * purchase.Price

	if err := h.purchases.UpdatePurchase(r.Context(), r.PathValue("id"), *purchase); err != nil {
		writeStoreError(w, err, "Purchase not found")
		return
	}
	writeJSON(w, http.StatusOK, purchase)
}

// Delete removes a purchase.
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.purchases.DeletePurchase(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Purchase not found")
		return
	}
	writeMessage(w, http.StatusOK, "Purchase deleted")
}

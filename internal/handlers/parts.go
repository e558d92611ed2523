package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/garajdev/garage-api/internal/db"
)

// PartHandler handles the lazily-built parts catalog.
type PartHandler struct {
	parts db.PartCollection
}

// NewPartHandler creates a new part handler.
func NewPartHandler(parts db.PartCollection) *PartHandler {
	return &PartHandler{parts: parts}
}

// List returns catalog entries sorted by name.
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	parts, err := h.parts.FindParts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeStoreError(w, err, "Part not found")
		return
	}
	writeJSON(w, http.StatusOK, parts)
}

// Create upserts a part by trimmed exact name: the existing entry is returned
// if the name is already on file.
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Part name is required")
		return
	}

	part, err := h.parts.UpsertPart(r.Context(), name)
	if err != nil {
		writeStoreError(w, err, "Part not found")
		return
	}

	// an upsert that matched an existing part bumps only updated_at
	status := http.StatusCreated
	if part.UpdatedAt.After(part.CreatedAt) {
		status = http.StatusOK
	}
	writeJSON(w, status, part)
}

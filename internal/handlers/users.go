package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/garajdev/garage-api/internal/auth"
	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

// UserHandler handles admin user management.
type UserHandler struct {
	authService *auth.Service
	users       db.UserCollection
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService *auth.Service, users db.UserCollection) *UserHandler {
	return &UserHandler{authService: authService, users: users}
}

type userRequest struct {
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	Phone          string      `json:"phone"`
	EmergencyPhone string      `json:"emergencyPhone"`
	Address        string      `json:"address"`
	Role           models.Role `json:"role"`
}

// List returns all users without password hashes.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindUsers(r.Context())
	if err != nil {
		writeStoreError(w, err, "User not found")
		return
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	writeJSON(w, http.StatusOK, users)
}

// Create adds a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if err := auth.ValidateEmail(email); err != nil {
		writeError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.IsValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	if _, err := h.users.FindUserByEmail(r.Context(), email); err == nil {
		writeError(w, http.StatusBadRequest, "This email is already registered")
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          email,
		PasswordHash:   hash,
		Role:           req.Role,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
		Address:        req.Address,
	}

	id, err := h.users.InsertUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "This email is already registered")
			return
		}
		writeStoreError(w, err, "User not found")
		return
	}

	user.ID = id
	user.PasswordHash = ""
	writeJSON(w, http.StatusCreated, user)
}

// Update modifies an existing user; omitted fields keep their current value.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.users.FindUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "User not found")
		return
	}

	if email := auth.NormalizeEmail(req.Email); email != "" && email != user.Email {
		if err := auth.ValidateEmail(email); err != nil {
			writeError(w, http.StatusBadRequest, "A valid email is required")
			return
		}
		if _, err := h.users.FindUserByEmail(r.Context(), email); err == nil {
			writeError(w, http.StatusBadRequest, "This email is already in use")
			return
		}
		user.Email = email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.EmergencyPhone != "" {
		user.EmergencyPhone = req.EmergencyPhone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Role != "" {
		if !models.IsValidRole(req.Role) {
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		user.Role = req.Role
	}
	if req.Password != "" {
		if err := auth.ValidatePassword(req.Password); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := h.authService.HashPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.PasswordHash = hash
	}

	if err := h.users.UpdateUser(r.Context(), r.PathValue("id"), *user); err != nil {
		writeStoreError(w, err, "User not found")
		return
	}

	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, user)
}

// Delete removes a user. Historical records referencing the user are left
// as-is.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "User not found")
		return
	}
	writeMessage(w, http.StatusOK, "User deleted")
}

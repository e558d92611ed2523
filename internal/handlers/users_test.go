package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

func TestUserHandler_Create(t *testing.T) {
	authService := newTestAuthService()

	create := func(t *testing.T, users db.UserCollection, payload map[string]interface{}) *httptest.ResponseRecorder {
		t.Helper()
		handler := NewUserHandler(authService, users)
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/users", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		handler.Create(w, req)
		return w
	}

	t.Run("creates user with hashed password", func(t *testing.T) {
		users := new(MockUserCollection)
		users.On("FindUserByEmail", mock.Anything, "new@example.com").Return(nil, db.ErrNotFound)

		var inserted models.User
		users.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			inserted = u
			return true
		})).Return(primitive.NewObjectID(), nil)

		w := create(t, users, map[string]interface{}{
			"firstName": "Fatma",
			"email":     "new@example.com",
			"password":  "secret123",
			"role":      "user",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEqual(t, "secret123", inserted.PasswordHash)
		assert.True(t, authService.CheckPassword("secret123", inserted.PasswordHash))

		// the stored hash never leaves the server
		assert.NotContains(t, w.Body.String(), inserted.PasswordHash)
	})

	t.Run("email is stored lower-cased", func(t *testing.T) {
		users := new(MockUserCollection)
		users.On("FindUserByEmail", mock.Anything, "mixed@example.com").Return(nil, db.ErrNotFound)

		var inserted models.User
		users.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			inserted = u
			return true
		})).Return(primitive.NewObjectID(), nil)

		w := create(t, users, map[string]interface{}{
			"firstName": "Fatma",
			"email":     " Mixed@Example.COM ",
			"password":  "secret123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "mixed@example.com", inserted.Email)
	})

	t.Run("duplicate email differing only in case", func(t *testing.T) {
		users := new(MockUserCollection)
		existing := &models.User{ID: primitive.NewObjectID(), Email: "taken@example.com"}
		users.On("FindUserByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

		w := create(t, users, map[string]interface{}{
			"firstName": "Fatma",
			"email":     "TAKEN@example.com",
			"password":  "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This email is already registered", decodeBody(t, w)["message"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserCollection)
		existing := &models.User{ID: primitive.NewObjectID(), Email: "taken@example.com"}
		users.On("FindUserByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

		w := create(t, users, map[string]interface{}{
			"firstName": "Fatma",
			"email":     "taken@example.com",
			"password":  "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This email is already registered", decodeBody(t, w)["message"])
	})

	t.Run("short password", func(t *testing.T) {
		w := create(t, new(MockUserCollection), map[string]interface{}{
			"email":    "new@example.com",
			"password": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		w := create(t, new(MockUserCollection), map[string]interface{}{
			"email":    "new@example.com",
			"password": "secret123",
			"role":     "superadmin",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid role", decodeBody(t, w)["message"])
	})
}

func TestUserHandler_List_StripsHashes(t *testing.T) {
	users := new(MockUserCollection)
	handler := NewUserHandler(newTestAuthService(), users)

	users.On("FindUsers", mock.Anything).Return([]models.User{
		{ID: primitive.NewObjectID(), Email: "a@example.com", PasswordHash: "hash-a"},
		{ID: primitive.NewObjectID(), Email: "b@example.com", PasswordHash: "hash-b"},
	}, nil)

	req := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hash-a")
	assert.NotContains(t, w.Body.String(), "hash-b")
}

func TestUserHandler_Update_EmailConflict(t *testing.T) {
	users := new(MockUserCollection)
	handler := NewUserHandler(newTestAuthService(), users)

	current := &models.User{ID: primitive.NewObjectID(), Email: "me@example.com"}
	other := &models.User{ID: primitive.NewObjectID(), Email: "taken@example.com"}

	users.On("FindUserByID", mock.Anything, current.ID.Hex()).Return(current, nil)
	users.On("FindUserByEmail", mock.Anything, "taken@example.com").Return(other, nil)

	body, _ := json.Marshal(map[string]interface{}{"email": "taken@example.com"})
	req := httptest.NewRequest("PUT", "/api/users/"+current.ID.Hex(), bytes.NewBuffer(body))
	req.SetPathValue("id", current.ID.Hex())
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This email is already in use", decodeBody(t, w)["message"])
}

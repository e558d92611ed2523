package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/garajdev/garage-api/internal/auth"
	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/middleware"
	"github.com/garajdev/garage-api/internal/models"
)

func TestRepairHandler_Create(t *testing.T) {
	vehicle := &models.CustomerVehicle{
		ID:    primitive.NewObjectID(),
		Brand: "Toyota",
		Model: "Corolla",
		Plate: "34 ABC 123",
	}

	t.Run("snapshots vehicle, upserts parts and computes totals", func(t *testing.T) {
		repairs := new(MockRepairCollection)
		vehicles := new(MockVehicleCollection)
		parts := new(MockPartCollection)
		handler := NewRepairHandler(repairs, vehicles, parts)

		oilFilter := &models.Part{ID: primitive.NewObjectID(), Name: "Oil Filter"}
		engineOil := &models.Part{ID: primitive.NewObjectID(), Name: "Engine Oil 5W-30"}

		vehicles.On("FindVehicleByID", mock.Anything, vehicle.ID.Hex()).Return(vehicle, nil)
		parts.On("UpsertPart", mock.Anything, "Oil Filter").Return(oilFilter, nil)
		parts.On("UpsertPart", mock.Anything, "Engine Oil 5W-30").Return(engineOil, nil)

		var inserted models.Repair
		repairs.On("InsertRepair", mock.Anything, mock.MatchedBy(func(r models.Repair) bool {
			inserted = r
			return true
		})).Return(primitive.NewObjectID(), nil)
		vehicles.On("SetOilChangeBaseline", mock.Anything, vehicle.ID.Hex(), 82000.0, mock.Anything).Return(nil)

		body, _ := json.Marshal(map[string]interface{}{
			"customerVehicle": vehicle.ID.Hex(),
			"description":     "Oil and filter change",
			"currentKm":       82000,
			"isOilChange":     true,
			"laborCost":       25.0,
			"parts": []map[string]interface{}{
				{"partName": "Oil Filter", "quantity": 1, "price": 15.0},
				{"partName": "Engine Oil 5W-30", "quantity": 4, "price": 20.0},
			},
		})
		req := httptest.NewRequest("POST", "/api/repairs", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		assert.Equal(t, "Toyota", inserted.Brand)
		assert.Equal(t, "34 ABC 123", inserted.Plate)
		assert.Equal(t, 95.0, inserted.PartsCost)
		assert.Equal(t, 120.0, inserted.TotalCost)
		assert.False(t, inserted.IsPaid)

		vehicles.AssertCalled(t, "SetOilChangeBaseline", mock.Anything, vehicle.ID.Hex(), 82000.0, mock.Anything)
	})

	t.Run("non oil change leaves the baseline alone", func(t *testing.T) {
		repairs := new(MockRepairCollection)
		vehicles := new(MockVehicleCollection)
		handler := NewRepairHandler(repairs, vehicles, new(MockPartCollection))

		vehicles.On("FindVehicleByID", mock.Anything, vehicle.ID.Hex()).Return(vehicle, nil)
		repairs.On("InsertRepair", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)

		body, _ := json.Marshal(map[string]interface{}{
			"customerVehicle": vehicle.ID.Hex(),
			"description":     "Brake inspection",
			"currentKm":       83000,
			"laborCost":       40.0,
		})
		req := httptest.NewRequest("POST", "/api/repairs", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		vehicles.AssertNotCalled(t, "SetOilChangeBaseline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewRepairHandler(new(MockRepairCollection), vehicles, new(MockPartCollection))

		missing := primitive.NewObjectID().Hex()
		vehicles.On("FindVehicleByID", mock.Anything, missing).Return(nil, db.ErrNotFound)

		body, _ := json.Marshal(map[string]interface{}{
			"customerVehicle": missing,
			"description":     "Anything",
			"laborCost":       10.0,
		})
		req := httptest.NewRequest("POST", "/api/repairs", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Vehicle not found", decodeBody(t, w)["message"])
	})

	t.Run("invalid part line", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewRepairHandler(new(MockRepairCollection), vehicles, new(MockPartCollection))

		vehicles.On("FindVehicleByID", mock.Anything, vehicle.ID.Hex()).Return(vehicle, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"customerVehicle": vehicle.ID.Hex(),
			"description":     "Oil change",
			"laborCost":       25.0,
			"parts": []map[string]interface{}{
				{"partName": "Oil Filter", "quantity": 0, "price": 15.0},
			},
		})
		req := httptest.NewRequest("POST", "/api/repairs", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRepairHandler_MarkPayment(t *testing.T) {
	authService := newTestAuthService()
	registry := auth.NewRevocationRegistry(authService, nil)

	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	users := new(MockUserCollection)
	users.On("FindUserByID", mock.Anything, admin.ID.Hex()).Return(admin, nil)
	guard := middleware.NewAuthMiddleware(authService, registry, users)
	token, _ := authService.GenerateToken(admin)

	markPayment := func(t *testing.T, handler *RepairHandler, repairID string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest("PATCH", "/api/repairs/"+repairID+"/payment", nil)
		req.SetPathValue("id", repairID)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		guard.Protect(http.HandlerFunc(handler.MarkPayment)).ServeHTTP(w, req)
		return w
	}

	t.Run("marks unpaid repair as paid by the caller", func(t *testing.T) {
		repairs := new(MockRepairCollection)
		handler := NewRepairHandler(repairs, new(MockVehicleCollection), new(MockPartCollection))

		repair := &models.Repair{ID: primitive.NewObjectID(), TotalCost: 120}
		repairs.On("FindRepairByID", mock.Anything, repair.ID.Hex()).Return(repair, nil)
		repairs.On("MarkRepairPaid", mock.Anything, repair.ID.Hex(), admin.ID, mock.Anything).Return(nil)

		w := markPayment(t, handler, repair.ID.Hex())

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["isPaid"])
		assert.Equal(t, admin.ID.Hex(), body["paidBy"])
		assert.NotEmpty(t, body["paidAt"])
	})

	t.Run("second mark is rejected", func(t *testing.T) {
		repairs := new(MockRepairCollection)
		handler := NewRepairHandler(repairs, new(MockVehicleCollection), new(MockPartCollection))

		paidAt := time.Now()
		repair := &models.Repair{ID: primitive.NewObjectID(), IsPaid: true, PaidAt: &paidAt}
		repairs.On("FindRepairByID", mock.Anything, repair.ID.Hex()).Return(repair, nil)

		w := markPayment(t, handler, repair.ID.Hex())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Repair is already marked as paid", decodeBody(t, w)["message"])
		repairs.AssertNotCalled(t, "MarkRepairPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent race reads as already paid", func(t *testing.T) {
		repairs := new(MockRepairCollection)
		handler := NewRepairHandler(repairs, new(MockVehicleCollection), new(MockPartCollection))

		repair := &models.Repair{ID: primitive.NewObjectID()}
		repairs.On("FindRepairByID", mock.Anything, repair.ID.Hex()).Return(repair, nil)
		repairs.On("MarkRepairPaid", mock.Anything, repair.ID.Hex(), admin.ID, mock.Anything).Return(db.ErrNotFound)

		w := markPayment(t, handler, repair.ID.Hex())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Repair is already marked as paid", decodeBody(t, w)["message"])
	})
}

func TestRepairHandler_Update_NewOilChangeRewritesBaseline(t *testing.T) {
	repairs := new(MockRepairCollection)
	vehicles := new(MockVehicleCollection)
	handler := NewRepairHandler(repairs, vehicles, new(MockPartCollection))

	vehicleID := primitive.NewObjectID()
	repair := &models.Repair{
		ID:                primitive.NewObjectID(),
		CustomerVehicleID: vehicleID,
		Description:       "Routine service",
		CurrentKm:         90000,
		LaborCost:         30,
	}

	repairs.On("FindRepairByID", mock.Anything, repair.ID.Hex()).Return(repair, nil)
	repairs.On("UpdateRepair", mock.Anything, repair.ID.Hex(), mock.Anything).Return(nil)
	vehicles.On("SetOilChangeBaseline", mock.Anything, vehicleID.Hex(), 90000.0, mock.Anything).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{"isOilChange": true})
	req := httptest.NewRequest("PUT", "/api/repairs/"+repair.ID.Hex(), bytes.NewBuffer(body))
	req.SetPathValue("id", repair.ID.Hex())
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	vehicles.AssertCalled(t, "SetOilChangeBaseline", mock.Anything, vehicleID.Hex(), 90000.0, mock.Anything)
}

package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

// MockUserCollection is a mock implementation of UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleCollection is a mock implementation of VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.CustomerVehicle) (primitive.ObjectID, error) {
	args := m.Called(ctx, vehicle)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.CustomerVehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerVehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByPlate(ctx context.Context, plate string) (*models.CustomerVehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerVehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByQRCode(ctx context.Context, qrCode string) (*models.CustomerVehicle, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerVehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context, q db.ListQuery) ([]models.CustomerVehicle, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CustomerVehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.CustomerVehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) SetOilChangeBaseline(ctx context.Context, id string, km float64, date time.Time) error {
	args := m.Called(ctx, id, km, date)
	return args.Error(0)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRepairCollection is a mock implementation of RepairCollection
type MockRepairCollection struct {
	mock.Mock
}

func (m *MockRepairCollection) InsertRepair(ctx context.Context, repair models.Repair) (primitive.ObjectID, error) {
	args := m.Called(ctx, repair)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockRepairCollection) FindRepairByID(ctx context.Context, id string) (*models.Repair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repair), args.Error(1)
}

func (m *MockRepairCollection) FindRepairs(ctx context.Context, q db.ListQuery) ([]models.Repair, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repair), args.Error(1)
}

func (m *MockRepairCollection) FindRepairsByVehicle(ctx context.Context, vehicleID primitive.ObjectID) ([]models.Repair, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repair), args.Error(1)
}

func (m *MockRepairCollection) UpdateRepair(ctx context.Context, id string, repair models.Repair) error {
	args := m.Called(ctx, id, repair)
	return args.Error(0)
}

func (m *MockRepairCollection) MarkRepairPaid(ctx context.Context, id string, paidBy primitive.ObjectID, paidAt time.Time) error {
	args := m.Called(ctx, id, paidBy, paidAt)
	return args.Error(0)
}

func (m *MockRepairCollection) DeleteRepair(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPartCollection is a mock implementation of PartCollection
type MockPartCollection struct {
	mock.Mock
}

func (m *MockPartCollection) UpsertPart(ctx context.Context, name string) (*models.Part, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartCollection) FindParts(ctx context.Context, search string) ([]models.Part, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Part), args.Error(1)
}

// MockPurchaseCollection is a mock implementation of PurchaseCollection
type MockPurchaseCollection struct {
	mock.Mock
}

func (m *MockPurchaseCollection) InsertPurchase(ctx context.Context, purchase models.Purchase) (primitive.ObjectID, error) {
	args := m.Called(ctx, purchase)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPurchaseCollection) FindPurchaseByID(ctx context.Context, id string) (*models.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *MockPurchaseCollection) FindPurchases(ctx context.Context, q db.ListQuery) ([]models.Purchase, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Purchase), args.Error(1)
}

func (m *MockPurchaseCollection) UpdatePurchase(ctx context.Context, id string, purchase models.Purchase) error {
	args := m.Called(ctx, id, purchase)
	return args.Error(0)
}

func (m *MockPurchaseCollection) DeletePurchase(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExpenseCollection is a mock implementation of ExpenseCollection
type MockExpenseCollection struct {
	mock.Mock
}

func (m *MockExpenseCollection) InsertExpense(ctx context.Context, expense models.Expense) (primitive.ObjectID, error) {
	args := m.Called(ctx, expense)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockExpenseCollection) FindExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseCollection) FindExpenses(ctx context.Context, q db.ListQuery) ([]models.Expense, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseCollection) UpdateExpense(ctx context.Context, id string, expense models.Expense) error {
	args := m.Called(ctx, id, expense)
	return args.Error(0)
}

func (m *MockExpenseCollection) DeleteExpense(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSupplierCollection is a mock implementation of SupplierCollection
type MockSupplierCollection struct {
	mock.Mock
}

func (m *MockSupplierCollection) InsertSupplier(ctx context.Context, supplier models.Supplier) (primitive.ObjectID, error) {
	args := m.Called(ctx, supplier)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSupplierCollection) FindSupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierCollection) FindSuppliers(ctx context.Context, search string) ([]models.Supplier, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Supplier), args.Error(1)
}

func (m *MockSupplierCollection) UpdateSupplier(ctx context.Context, id string, supplier models.Supplier) error {
	args := m.Called(ctx, id, supplier)
	return args.Error(0)
}

func (m *MockSupplierCollection) DeleteSupplier(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/service"
)

func newCatalogService(customerRepo *MockCustomerRepo, itemRepo *MockItemRepo, rentalRepo *MockRentalRepo, settingsRepo *MockSettingsRepo) service.CatalogService {
	return service.NewCatalogService(customerRepo, itemRepo, rentalRepo, settingsRepo, service.NewEntityLocks(), service.NewLedgerNotifier())
}

func TestCatalogService_Customers(t *testing.T) {
	ctx := context.Background()

	t.Run("AddCustomer assigns an id", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := newCatalogService(customerRepo, new(MockItemRepo), new(MockRentalRepo), new(MockSettingsRepo))

		customerRepo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Return(nil)

		c, err := svc.AddCustomer(ctx, &domain.Customer{Name: "Nimal", Phone: "771234567"})
		assert.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.False(t, c.CreatedAt.IsZero())
	})

	t.Run("AddCustomer requires a name", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := newCatalogService(customerRepo, new(MockItemRepo), new(MockRentalRepo), new(MockSettingsRepo))

		_, err := svc.AddCustomer(ctx, &domain.Customer{Phone: "771234567"})
		assert.Error(t, err)
		customerRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("DeleteCustomer refuses with rental history", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := newCatalogService(customerRepo, new(MockItemRepo), rentalRepo, new(MockSettingsRepo))

		rentalRepo.On("CountByCustomer", ctx, "c1").Return(3, nil)

		err := svc.DeleteCustomer(ctx, "c1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot delete customer")
		customerRepo.AssertNotCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("DeleteCustomer with no rentals succeeds", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := newCatalogService(customerRepo, new(MockItemRepo), rentalRepo, new(MockSettingsRepo))

		rentalRepo.On("CountByCustomer", ctx, "c1").Return(0, nil)
		customerRepo.On("Delete", ctx, "c1").Return(nil)

		assert.NoError(t, svc.DeleteCustomer(ctx, "c1"))
		customerRepo.AssertExpectations(t)
	})
}

func TestCatalogService_Items(t *testing.T) {
	ctx := context.Background()

	t.Run("AddItem starts fully available", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		svc := newCatalogService(new(MockCustomerRepo), itemRepo, new(MockRentalRepo), new(MockSettingsRepo))

		itemRepo.On("Create", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

		it, err := svc.AddItem(ctx, &domain.Item{Name: "Drill", Quantity: 5, RentalPrice: 100})
		assert.NoError(t, err)
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, 5, it.Available)
		assert.Equal(t, 0, it.Damaged)
	})

	t.Run("UpdateItem recomputes availability from the rented count", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		svc := newCatalogService(new(MockCustomerRepo), itemRepo, new(MockRentalRepo), new(MockSettingsRepo))

		current := &domain.Item{ID: "i1", Name: "Drill", Quantity: 5, Available: 3, Damaged: 1, AddedAt: time.Now().Add(-time.Hour)}
		itemRepo.On("GetByID", ctx, "i1").Return(current, nil)
		itemRepo.On("Update", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

		// Two units are out; growing the fleet to 8 leaves 6 available.
		it, err := svc.UpdateItem(ctx, &domain.Item{ID: "i1", Name: "Drill", Quantity: 8, RentalPrice: 120})
		assert.NoError(t, err)
		assert.Equal(t, 6, it.Available)
		assert.Equal(t, 1, it.Damaged, "repair count survives edits")
		assert.Equal(t, current.AddedAt, it.AddedAt)
	})

	t.Run("UpdateItem refuses to shrink below rented units", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		svc := newCatalogService(new(MockCustomerRepo), itemRepo, new(MockRentalRepo), new(MockSettingsRepo))

		current := &domain.Item{ID: "i1", Name: "Drill", Quantity: 5, Available: 2}
		itemRepo.On("GetByID", ctx, "i1").Return(current, nil)

		_, err := svc.UpdateItem(ctx, &domain.Item{ID: "i1", Name: "Drill", Quantity: 2})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currently rented")
		itemRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("DeleteItem refuses with rental history", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		rentalRepo := new(MockRentalRepo)
		svc := newCatalogService(new(MockCustomerRepo), itemRepo, rentalRepo, new(MockSettingsRepo))

		rentalRepo.On("CountByItem", ctx, "i1").Return(1, nil)

		err := svc.DeleteItem(ctx, "i1")
		assert.Error(t, err)
		itemRepo.AssertNotCalled(t, "Delete", ctx, mock.Anything)
	})
}

func TestCatalogService_Settings(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdateSettings requires a shop name", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		svc := newCatalogService(new(MockCustomerRepo), new(MockItemRepo), new(MockRentalRepo), settingsRepo)

		_, err := svc.UpdateSettings(ctx, &domain.Settings{})
		assert.Error(t, err)
		settingsRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("UpdateSettings returns the stored row", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		svc := newCatalogService(new(MockCustomerRepo), new(MockItemRepo), new(MockRentalRepo), settingsRepo)

		stored := &domain.Settings{ID: "default", ShopName: "City Rentals"}
		settingsRepo.On("Update", ctx, mock.AnythingOfType("*domain.Settings")).Return(nil)
		settingsRepo.On("Get", ctx).Return(stored, nil)

		s, err := svc.UpdateSettings(ctx, &domain.Settings{ShopName: "City Rentals"})
		assert.NoError(t, err)
		assert.Equal(t, stored, s)
	})
}

package repository

import (
	"context"

	"rentalshop-backend/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

type ItemRepository interface {
	Create(ctx context.Context, it *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	Delete(ctx context.Context, id string) error
}

// RentalRepository persists whole rental records: lines and payment
// history travel with the rental on every write, and reads return the
// canonical stored record.
type RentalRepository interface {
	Create(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	List(ctx context.Context) ([]domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	Update(ctx context.Context, rt *domain.Rental) error
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) error
}

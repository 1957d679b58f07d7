package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/repository"
)

type catalogService struct {
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	rentalRepo   repository.RentalRepository
	settingsRepo repository.SettingsRepository
	locks        *EntityLocks
	notifier     *LedgerNotifier
}

func NewCatalogService(
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	rentalRepo repository.RentalRepository,
	settingsRepo repository.SettingsRepository,
	locks *EntityLocks,
	notifier *LedgerNotifier,
) CatalogService {
	return &catalogService{
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		rentalRepo:   rentalRepo,
		settingsRepo: settingsRepo,
		locks:        locks,
		notifier:     notifier,
	}
}

func (s *catalogService) AddCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if c.Name == "" {
		return nil, domain.Invalid("customer name is required")
	}
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now()
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.notifier.Publish()
	return c, nil
}

func (s *catalogService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *catalogService) UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	existing, err := s.customerRepo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.notifier.Publish()
	return c, nil
}

// DeleteCustomer refuses while any rental, active or past, references
// the customer: rentals are financial records and keep their ends.
func (s *catalogService) DeleteCustomer(ctx context.Context, id string) error {
	n, err := s.rentalRepo.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Invalid("cannot delete customer with active or past rentals")
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Publish()
	return nil
}

func (s *catalogService) AddItem(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	if it.Name == "" {
		return nil, domain.Invalid("item name is required")
	}
	if it.Quantity < 0 {
		return nil, domain.Invalid("item quantity cannot be negative")
	}
	if it.RentalPrice < 0 {
		return nil, domain.Invalid("rental price cannot be negative")
	}
	it.ID = uuid.New().String()
	it.Available = it.Quantity
	it.Damaged = 0
	it.AddedAt = time.Now()
	if err := s.itemRepo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.notifier.Publish()
	return it, nil
}

func (s *catalogService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *catalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.List(ctx)
}

// UpdateItem recomputes availability from the rented count, so the
// total can only shrink down to what is currently out on loan.
func (s *catalogService) UpdateItem(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	s.locks.Lock(it.ID)
	defer s.locks.Unlock(it.ID)

	current, err := s.itemRepo.GetByID(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	rented := current.Rented()
	if it.Quantity < rented {
		return nil, domain.Invalid(fmt.Sprintf("cannot reduce total quantity below currently rented amount (%d)", rented))
	}

	it.Available = it.Quantity - rented
	it.Damaged = current.Damaged
	if it.Damaged > it.Quantity {
		it.Damaged = it.Quantity
	}
	it.AddedAt = current.AddedAt
	if err := s.itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}
	s.notifier.Publish()
	return it, nil
}

func (s *catalogService) DeleteItem(ctx context.Context, id string) error {
	n, err := s.rentalRepo.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Invalid("cannot delete item with active or past rentals")
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Publish()
	return nil
}

func (s *catalogService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *catalogService) UpdateSettings(ctx context.Context, set *domain.Settings) (*domain.Settings, error) {
	if set.ShopName == "" {
		return nil, domain.Invalid("shop name is required")
	}
	if err := s.settingsRepo.Update(ctx, set); err != nil {
		return nil, err
	}
	logger.Info("settings updated", "shop_name", set.ShopName)
	return s.settingsRepo.Get(ctx)
}

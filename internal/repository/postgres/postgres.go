package postgres

import (
	"database/sql"

	"rentalshop-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CustomerRepository
	repository.ItemRepository
	repository.RentalRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		CustomerRepository: NewCustomerRepository(db),
		ItemRepository:     NewItemRepository(db),
		RentalRepository:   NewRentalRepository(db),
		SettingsRepository: NewSettingsRepository(db),
	}
}

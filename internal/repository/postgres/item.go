package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (id, name, model, quantity, available, damaged, rental_price, remarks, added_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, it.ID, it.Name, it.Model, it.Quantity, it.Available, it.Damaged, it.RentalPrice, it.Remarks, it.AddedAt)
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT id, name, model, quantity, available, damaged, rental_price, remarks, added_at FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.Name, &it.Model, &it.Quantity, &it.Available, &it.Damaged, &it.RentalPrice, &it.Remarks, &it.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT id, name, model, quantity, available, damaged, rental_price, remarks, added_at FROM items ORDER BY added_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Model, &it.Quantity, &it.Available, &it.Damaged, &it.RentalPrice, &it.Remarks, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET name=$1, model=$2, quantity=$3, available=$4, damaged=$5, rental_price=$6, remarks=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, it.Name, it.Model, it.Quantity, it.Available, it.Damaged, it.RentalPrice, it.Remarks, it.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

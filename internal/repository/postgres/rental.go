package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, customer_id, checkout_date, expected_return_date, actual_return_date,
	total_amount, advance_payment, paid_amount, status, fine_amount, fine_notes,
	discount_amount, remarks, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now

	query := `INSERT INTO rentals (` + rentalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = tx.ExecContext(ctx, query,
		rt.ID, rt.CustomerID, rt.CheckoutDate, rt.ExpectedReturnDate, rt.ActualReturnDate,
		rt.TotalAmount, rt.AdvancePayment, rt.PaidAmount, rt.Status, rt.FineAmount, rt.FineNotes,
		rt.DiscountAmount, rt.Remarks, rt.CreatedOn, rt.UpdatedOn)
	if err != nil {
		return err
	}

	if err := insertChildren(ctx, tx, rt); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the whole record: the rental row plus its lines and
// payment history, children replaced wholesale.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rt.UpdatedOn = time.Now()
	query := `UPDATE rentals SET checkout_date=$1, expected_return_date=$2, actual_return_date=$3,
	          total_amount=$4, advance_payment=$5, paid_amount=$6, status=$7, fine_amount=$8,
	          fine_notes=$9, discount_amount=$10, remarks=$11, updated_on=$12 WHERE id=$13`
	res, err := tx.ExecContext(ctx, query,
		rt.CheckoutDate, rt.ExpectedReturnDate, rt.ActualReturnDate,
		rt.TotalAmount, rt.AdvancePayment, rt.PaidAmount, rt.Status, rt.FineAmount,
		rt.FineNotes, rt.DiscountAmount, rt.Remarks, rt.UpdatedOn, rt.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_lines WHERE rental_id=$1`, rt.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE rental_id=$1`, rt.ID); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, rt); err != nil {
		return err
	}
	return tx.Commit()
}

func insertChildren(ctx context.Context, tx *sql.Tx, rt *domain.Rental) error {
	for i, l := range rt.Lines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rental_lines (rental_id, position, item_id, quantity, returned_quantity, price_per_day, return_status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rt.ID, i, l.ItemID, l.Quantity, l.ReturnedQuantity, l.PricePerDay, string(l.ReturnStatus))
		if err != nil {
			return err
		}
	}
	for i, p := range rt.PaymentHistory {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payments (rental_id, position, paid_on, amount) VALUES ($1, $2, $3, $4)`,
			rt.ID, i, p.Date, p.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.CustomerID, &rt.CheckoutDate, &rt.ExpectedReturnDate, &rt.ActualReturnDate,
		&rt.TotalAmount, &rt.AdvancePayment, &rt.PaidAmount, &status, &rt.FineAmount, &rt.FineNotes,
		&rt.DiscountAmount, &rt.Remarks, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rt.Status = domain.RentalStatus(status)
	if err := r.loadChildren(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.list(ctx, `SELECT `+rentalColumns+` FROM rentals ORDER BY created_on`)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Rental, error) {
	return r.list(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE customer_id = $1 ORDER BY created_on`, customerID)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return r.list(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE status = $1 ORDER BY created_on`, string(status))
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		var status string
		if err := rows.Scan(
			&rt.ID, &rt.CustomerID, &rt.CheckoutDate, &rt.ExpectedReturnDate, &rt.ActualReturnDate,
			&rt.TotalAmount, &rt.AdvancePayment, &rt.PaidAmount, &status, &rt.FineAmount, &rt.FineNotes,
			&rt.DiscountAmount, &rt.Remarks, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rt.Status = domain.RentalStatus(status)
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range rentals {
		if err := r.loadChildren(ctx, &rentals[i]); err != nil {
			return nil, err
		}
	}
	return rentals, nil
}

func (r *rentalRepository) loadChildren(ctx context.Context, rt *domain.Rental) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, quantity, returned_quantity, price_per_day, return_status
		 FROM rental_lines WHERE rental_id = $1 ORDER BY position`, rt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	rt.Lines = nil
	for rows.Next() {
		var l domain.RentalLine
		var rs string
		if err := rows.Scan(&l.ItemID, &l.Quantity, &l.ReturnedQuantity, &l.PricePerDay, &rs); err != nil {
			return err
		}
		l.ReturnStatus = domain.ReturnStatus(rs)
		rt.Lines = append(rt.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := r.db.QueryContext(ctx,
		`SELECT paid_on, amount FROM payments WHERE rental_id = $1 ORDER BY position`, rt.ID)
	if err != nil {
		return err
	}
	defer prows.Close()
	rt.PaymentHistory = nil
	for prows.Next() {
		var p domain.Payment
		if err := prows.Scan(&p.Date, &p.Amount); err != nil {
			return err
		}
		rt.PaymentHistory = append(rt.PaymentHistory, p)
	}
	return prows.Err()
}

func (r *rentalRepository) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE customer_id = $1`, customerID).Scan(&n)
	return n, err
}

func (r *rentalRepository) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rental_lines WHERE item_id = $1`, itemID).Scan(&n)
	return n, err
}

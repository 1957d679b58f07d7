package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	query := `SELECT id, shop_name, logo_url, checkout_template, checkin_template, balance_reminder_template, country_code, invoice_custom_text
	          FROM settings WHERE id = 'default'`
	err := r.db.QueryRowContext(ctx, query).Scan(&s.ID, &s.ShopName, &s.LogoURL, &s.CheckoutTemplate, &s.CheckinTemplate, &s.BalanceReminderTemplate, &s.CountryCode, &s.InvoiceCustomText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.Settings) error {
	query := `UPDATE settings SET shop_name=$1, logo_url=$2, checkout_template=$3, checkin_template=$4, balance_reminder_template=$5, country_code=$6, invoice_custom_text=$7
	          WHERE id = 'default'`
	_, err := r.db.ExecContext(ctx, query, s.ShopName, s.LogoURL, s.CheckoutTemplate, s.CheckinTemplate, s.BalanceReminderTemplate, s.CountryCode, s.InvoiceCustomText)
	return err
}

package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/repository/postgres"
)

func TestSettingsRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSettingsRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "shop_name", "logo_url", "checkout_template", "checkin_template", "balance_reminder_template", "country_code", "invoice_custom_text"}).
		AddRow("default", "City Rentals", "", "Hello [CustomerName]", "Bye [CustomerName]", "Pay [BalanceDue]", "+94", "Thank you")

	mock.ExpectQuery("SELECT (.+) FROM settings WHERE id = 'default'").
		WillReturnRows(rows)

	s, err := repo.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "City Rentals", s.ShopName)
	assert.Equal(t, "+94", s.CountryCode)
}

func TestSettingsRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSettingsRepository(db)
	ctx := context.Background()

	s := &domain.Settings{
		ShopName:                "City Rentals",
		CheckoutTemplate:        "Hello [CustomerName]",
		CheckinTemplate:         "Bye [CustomerName]",
		BalanceReminderTemplate: "Pay [BalanceDue]",
		CountryCode:             "+94",
	}

	mock.ExpectExec("UPDATE settings SET").
		WithArgs(s.ShopName, s.LogoURL, s.CheckoutTemplate, s.CheckinTemplate, s.BalanceReminderTemplate, s.CountryCode, s.InvoiceCustomText).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(ctx, s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

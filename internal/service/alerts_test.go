package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/service"
)

func alertsOfType(alerts []domain.Alert, t domain.AlertType) []domain.Alert {
	var out []domain.Alert
	for _, a := range alerts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func TestDeriveAlerts_Overdue(t *testing.T) {
	today := date(2026, 3, 15)
	customers := []domain.Customer{{ID: "c1", Name: "Nimal"}}
	items := []domain.Item{{ID: "i1", Name: "Drill", Quantity: 5, Available: 5}}

	t.Run("Past due with units out", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusRented,
			ExpectedReturnDate: date(2026, 3, 12),
			Lines:              []domain.RentalLine{{ItemID: "i1", Quantity: 2}},
		}}
		alerts := service.DeriveAlerts(items, rentals, customers, today, service.DefaultAlertThresholds())
		overdue := alertsOfType(alerts, domain.AlertTypeOverdue)
		assert.Len(t, overdue, 1)
		assert.Equal(t, domain.AlertSeverityHigh, overdue[0].Severity)
		assert.Contains(t, overdue[0].Message, "Nimal")
		assert.Contains(t, overdue[0].Message, "Drill")
		assert.Contains(t, overdue[0].Message, "overdue by 3 day(s)")
	})

	t.Run("Due today is not overdue", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusRented,
			ExpectedReturnDate: today,
			Lines:              []domain.RentalLine{{ItemID: "i1", Quantity: 1}},
		}}
		alerts := service.DeriveAlerts(items, rentals, customers, today, service.DefaultAlertThresholds())
		assert.Empty(t, alertsOfType(alerts, domain.AlertTypeOverdue))
	})

	t.Run("Everything back suppresses the alert", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusPartiallyReturned,
			ExpectedReturnDate: date(2026, 3, 12),
			Lines:              []domain.RentalLine{{ItemID: "i1", Quantity: 2, ReturnedQuantity: 2}},
		}}
		alerts := service.DeriveAlerts(items, rentals, customers, today, service.DefaultAlertThresholds())
		assert.Empty(t, alertsOfType(alerts, domain.AlertTypeOverdue))
	})

	t.Run("Closed rentals are ignored", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusReturned,
			ExpectedReturnDate: date(2026, 3, 12),
			Lines:              []domain.RentalLine{{ItemID: "i1", Quantity: 2}},
		}}
		alerts := service.DeriveAlerts(items, rentals, customers, today, service.DefaultAlertThresholds())
		assert.Empty(t, alertsOfType(alerts, domain.AlertTypeOverdue))
	})
}

func TestDeriveAlerts_LowStock(t *testing.T) {
	today := date(2026, 3, 15)

	t.Run("Threshold boundaries", func(t *testing.T) {
		items := []domain.Item{
			{ID: "i1", Name: "Drill", Quantity: 5, Available: 2},  // low
			{ID: "i2", Name: "Ladder", Quantity: 5, Available: 1}, // low, medium severity
			{ID: "i3", Name: "Saw", Quantity: 5, Available: 3},    // above threshold
			{ID: "i4", Name: "Mixer", Quantity: 5, Available: 0},  // fully out, not "low"
			{ID: "i5", Name: "Jack", Quantity: 2, Available: 2},   // small fleet at full stock
		}
		alerts := service.DeriveAlerts(items, nil, nil, today, service.DefaultAlertThresholds())
		low := alertsOfType(alerts, domain.AlertTypeLowStock)
		assert.Len(t, low, 2)
		assert.Contains(t, low[0].Message, "Drill")
		assert.Equal(t, domain.AlertSeverityLow, low[0].Severity)
		assert.Contains(t, low[1].Message, "Ladder")
		assert.Equal(t, domain.AlertSeverityMedium, low[1].Severity)
	})

	t.Run("Custom threshold", func(t *testing.T) {
		items := []domain.Item{{ID: "i1", Name: "Drill", Quantity: 10, Available: 4}}
		alerts := service.DeriveAlerts(items, nil, nil, today, service.AlertThresholds{LowStock: 4})
		assert.Len(t, alertsOfType(alerts, domain.AlertTypeLowStock), 1)
	})

	t.Run("Zero threshold disables the check", func(t *testing.T) {
		items := []domain.Item{{ID: "i1", Name: "Drill", Quantity: 10, Available: 1}}
		alerts := service.DeriveAlerts(items, nil, nil, today, service.AlertThresholds{LowStock: 0})
		assert.Empty(t, alertsOfType(alerts, domain.AlertTypeLowStock))
	})
}

func TestDeriveAlerts_PendingPayment(t *testing.T) {
	today := date(2026, 3, 15)
	customers := []domain.Customer{{ID: "c1", Name: "Nimal"}}

	t.Run("Balance above threshold", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusPartiallyReturned,
			TotalAmount: 400, PaidAmount: 100,
		}}
		alerts := service.DeriveAlerts(nil, rentals, customers, today, service.DefaultAlertThresholds())
		pending := alertsOfType(alerts, domain.AlertTypePendingPayment)
		assert.Len(t, pending, 1)
		assert.Equal(t, domain.AlertSeverityMedium, pending[0].Severity)
		assert.Contains(t, pending[0].Message, "Rs. 300.00")
	})

	t.Run("Balance at the threshold stays quiet", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusRented,
			TotalAmount: 100, PaidAmount: 0,
		}}
		alerts := service.DeriveAlerts(nil, rentals, customers, today, service.DefaultAlertThresholds())
		assert.Empty(t, alertsOfType(alerts, domain.AlertTypePendingPayment))
	})

	t.Run("Returned rentals are excluded even with residual balance", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusReturned,
			TotalAmount: 400, PaidAmount: 0,
		}}
		alerts := service.DeriveAlerts(nil, rentals, customers, today, service.DefaultAlertThresholds())
		assert.Empty(t, alertsOfType(alerts, domain.AlertTypePendingPayment))
	})

	t.Run("Zero threshold flags any positive balance", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusRented,
			TotalAmount: 50, PaidAmount: 0,
		}}
		alerts := service.DeriveAlerts(nil, rentals, customers, today, service.AlertThresholds{PendingBalance: 0, LowStock: 2})
		assert.Len(t, alertsOfType(alerts, domain.AlertTypePendingPayment), 1)
	})

	t.Run("Fines push the balance over", func(t *testing.T) {
		rentals := []domain.Rental{{
			ID: "r1", CustomerID: "c1", Status: domain.RentalStatusRented,
			TotalAmount: 80, FineAmount: 50, PaidAmount: 0,
		}}
		alerts := service.DeriveAlerts(nil, rentals, customers, today, service.DefaultAlertThresholds())
		assert.Len(t, alertsOfType(alerts, domain.AlertTypePendingPayment), 1)
	})
}

func TestDeriveAlerts_IDsAreSequential(t *testing.T) {
	today := date(2026, 3, 15)
	items := []domain.Item{
		{ID: "i1", Name: "Drill", Quantity: 5, Available: 1},
		{ID: "i2", Name: "Ladder", Quantity: 5, Available: 2},
	}
	alerts := service.DeriveAlerts(items, nil, nil, today, service.DefaultAlertThresholds())
	assert.Len(t, alerts, 2)
	assert.Equal(t, "a1", alerts[0].ID)
	assert.Equal(t, "a2", alerts[1].ID)
}

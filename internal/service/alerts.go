package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/repository"
)

// AlertThresholds tune the derivation. Values are taken literally: a
// zero PendingBalance flags any positive balance and a zero LowStock
// disables the low-stock check.
type AlertThresholds struct {
	PendingBalance float64
	LowStock       int
}

// DefaultAlertThresholds are the shop defaults applied when the
// configuration leaves a threshold unset.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{PendingBalance: 100, LowStock: 2}
}

// DeriveAlerts is a pure projection over the current snapshot. Nothing
// is persisted; each call rebuilds the full list and ids are only
// unique within the pass.
func DeriveAlerts(items []domain.Item, rentals []domain.Rental, customers []domain.Customer, today time.Time, thresholds AlertThresholds) []domain.Alert {
	today = Midnight(today)

	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	itemNames := make(map[string]string, len(items))
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}
	customerName := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return "Unknown"
	}

	var alerts []domain.Alert
	counter := 1
	add := func(t domain.AlertType, msg string, sev domain.AlertSeverity) {
		alerts = append(alerts, domain.Alert{
			ID:       fmt.Sprintf("a%d", counter),
			Type:     t,
			Message:  msg,
			Severity: sev,
		})
		counter++
	}

	for _, rt := range rentals {
		if rt.Status != domain.RentalStatusRented && rt.Status != domain.RentalStatusPartiallyReturned {
			continue
		}
		if rt.ExpectedReturnDate.IsZero() {
			continue
		}
		due := Midnight(rt.ExpectedReturnDate)
		if !due.Before(today) {
			continue
		}
		daysOverdue := int(today.Sub(due).Hours() / 24)
		if daysOverdue <= 0 {
			continue
		}
		var outstanding []string
		for _, l := range rt.Lines {
			if l.ReturnedQuantity < l.Quantity {
				name := itemNames[l.ItemID]
				if name == "" {
					name = "Unknown Item"
				}
				outstanding = append(outstanding, name)
			}
		}
		if len(outstanding) == 0 {
			continue
		}
		add(domain.AlertTypeOverdue,
			fmt.Sprintf("Rental for %s (%s) is overdue by %d day(s).", customerName(rt.CustomerID), strings.Join(outstanding, ", "), daysOverdue),
			domain.AlertSeverityHigh)
	}

	for _, it := range items {
		if it.Quantity > 0 && it.Available <= thresholds.LowStock && it.Available < it.Quantity && it.Available > 0 {
			sev := domain.AlertSeverityLow
			if it.Available <= 1 {
				sev = domain.AlertSeverityMedium
			}
			add(domain.AlertTypeLowStock,
				fmt.Sprintf("%s has only %d unit(s) available.", it.Name, it.Available),
				sev)
		}
	}

	for _, rt := range rentals {
		if rt.Status == domain.RentalStatusReturned {
			continue
		}
		balance := rt.Balance()
		if balance > thresholds.PendingBalance {
			add(domain.AlertTypePendingPayment,
				fmt.Sprintf("%s has a pending balance of Rs. %.2f.", customerName(rt.CustomerID), balance),
				domain.AlertSeverityMedium)
		}
	}

	return alerts
}

type alertService struct {
	itemRepo     repository.ItemRepository
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
	thresholds   AlertThresholds
}

func NewAlertService(
	itemRepo repository.ItemRepository,
	rentalRepo repository.RentalRepository,
	customerRepo repository.CustomerRepository,
	thresholds AlertThresholds,
) AlertService {
	return &alertService{
		itemRepo:     itemRepo,
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
		thresholds:   thresholds,
	}
}

func (s *alertService) Current(ctx context.Context) ([]domain.Alert, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return DeriveAlerts(items, rentals, customers, time.Now(), s.thresholds), nil
}

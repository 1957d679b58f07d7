package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/repository"
)

type exportService struct {
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	settingsRepo repository.SettingsRepository
	dir          string
}

func NewExportService(
	rentalRepo repository.RentalRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	settingsRepo repository.SettingsRepository,
	dir string,
) ExportService {
	return &exportService{
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		dir:          dir,
	}
}

// BuildInvoice assembles the financial summary: lines, cost breakdown
// and payment history. Layout is the renderer's business.
func (s *exportService) BuildInvoice(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.GetByID(ctx, rt.CustomerID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	itemNames := make(map[string]string, len(items))
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}

	inv := &domain.Invoice{
		RentalID:           rt.ID,
		ShopName:           settings.ShopName,
		CustomerName:       customer.Name,
		CustomerPhone:      customer.Phone,
		CheckoutDate:       rt.CheckoutDate,
		ExpectedReturnDate: rt.ExpectedReturnDate,
		BaseTotal:          rt.TotalAmount,
		Fines:              rt.FineAmount,
		Discounts:          rt.DiscountAmount,
		Paid:               rt.PaidAmount,
		Balance:            rt.Balance(),
		Payments:           rt.PaymentHistory,
		FooterText:         settings.InvoiceCustomText,
	}
	for _, l := range rt.Lines {
		name := itemNames[l.ItemID]
		if name == "" {
			name = "Unknown Item"
		}
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			ItemName:    name,
			Quantity:    l.Quantity,
			PricePerDay: l.PricePerDay,
		})
	}
	return inv, nil
}

func (s *exportService) WriteInvoice(ctx context.Context, rentalID string) (string, error) {
	inv, err := s.BuildInvoice(ctx, rentalID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	row := 1
	setRow := func(cells ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
		row++
		return nil
	}

	ref := invoiceRef(inv.RentalID)
	header := [][]interface{}{
		{inv.ShopName},
		{"Invoice", ref},
		{"Customer", inv.CustomerName, inv.CustomerPhone},
		{"Checkout", inv.CheckoutDate.Format("2006-01-02")},
		{"Expected return", inv.ExpectedReturnDate.Format("2006-01-02")},
		{},
		{"Item", "Quantity", "Rate/Day"},
	}
	for _, cells := range header {
		if err := setRow(cells...); err != nil {
			return "", err
		}
	}
	for _, l := range inv.Lines {
		if err := setRow(l.ItemName, l.Quantity, l.PricePerDay); err != nil {
			return "", err
		}
	}
	totals := [][]interface{}{
		{},
		{"Base total", inv.BaseTotal},
		{"Fines", inv.Fines},
		{"Discounts", inv.Discounts},
		{"Paid", inv.Paid},
		{"Balance due", inv.Balance},
		{},
		{"Payments"},
	}
	for _, cells := range totals {
		if err := setRow(cells...); err != nil {
			return "", err
		}
	}
	for _, p := range inv.Payments {
		if err := setRow(p.Date.Format("2006-01-02"), p.Amount); err != nil {
			return "", err
		}
	}
	if inv.FooterText != "" {
		if err := setRow(); err != nil {
			return "", err
		}
		if err := setRow(inv.FooterText); err != nil {
			return "", err
		}
	}

	path := filepath.Join(s.dir, fmt.Sprintf("invoice-%s.xlsx", ref))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	logger.Info("invoice exported", "rental_id", inv.RentalID, "path", path)
	return path, nil
}

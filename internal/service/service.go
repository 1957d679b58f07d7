package service

import (
	"context"

	"rentalshop-backend/internal/domain"
)

type CatalogService interface {
	AddCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	AddItem(ctx context.Context, it *domain.Item) (*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpdateItem(ctx context.Context, it *domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
}

type RentalService interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Rental, error)
	// ProcessReturn applies a partial or full return plus an optional
	// payment. idemKey may be empty; when set, a replay with the same
	// key returns the current record without re-applying anything.
	ProcessReturn(ctx context.Context, rentalID string, returns []domain.ReturnLine, payment domain.PaymentDetails, idemKey string) (*domain.Rental, error)
	AddPayment(ctx context.Context, rentalID string, amount float64) (*domain.Rental, error)
	GetRental(ctx context.Context, id string) (*domain.Rental, error)
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	// ReplaceRental persists a whole record and returns the canonical
	// stored copy, the update-whole-record contract of the API.
	ReplaceRental(ctx context.Context, rt *domain.Rental) (*domain.Rental, error)
}

type AlertService interface {
	Current(ctx context.Context) ([]domain.Alert, error)
}

type ReportService interface {
	Summary(ctx context.Context) (*domain.ReportSummary, error)
	CustomerStatement(ctx context.Context, customerID string) (*domain.CustomerStatement, error)
}

type MessageService interface {
	CheckoutConfirmation(ctx context.Context, rentalID string) (*domain.Message, error)
	CheckinSummary(ctx context.Context, rentalID string, dueToday float64) (*domain.Message, error)
	BalanceReminder(ctx context.Context, rentalID string) (*domain.Message, error)
	Dispatch(ctx context.Context, msg *domain.Message) error
}

// MessageChannel hands a rendered message to an external delivery
// mechanism.
type MessageChannel interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

type ExportService interface {
	BuildInvoice(ctx context.Context, rentalID string) (*domain.Invoice, error)
	// WriteInvoice renders the invoice to a spreadsheet file and
	// returns its path.
	WriteInvoice(ctx context.Context, rentalID string) (string, error)
}

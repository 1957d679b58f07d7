package service

import (
	"context"
	"fmt"
	"strings"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/repository"
)

// RenderTemplate substitutes every [TokenName] occurrence with the
// supplied value. Unresolved tokens stay verbatim so a template typo is
// visible in the output instead of silently vanishing.
func RenderTemplate(tpl string, values map[string]string) string {
	out := tpl
	for token, value := range values {
		out = strings.ReplaceAll(out, "["+token+"]", value)
	}
	return out
}

type messageService struct {
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	settingsRepo repository.SettingsRepository
	channel      MessageChannel
}

func NewMessageService(
	rentalRepo repository.RentalRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	settingsRepo repository.SettingsRepository,
	channel MessageChannel,
) MessageService {
	return &messageService{
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		channel:      channel,
	}
}

// invoiceRef is the short human-facing rental reference.
func invoiceRef(rentalID string) string {
	if len(rentalID) >= 8 {
		return strings.ToUpper(rentalID[:8])
	}
	return strings.ToUpper(rentalID)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

type messageContext struct {
	rental   *domain.Rental
	customer *domain.Customer
	settings *domain.Settings
	values   map[string]string
}

func (s *messageService) load(ctx context.Context, rentalID string) (*messageContext, error) {
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

	var parts []string
	for _, l := range rt.Lines {
		name := itemNames[l.ItemID]
		if name == "" {
			name = "Unknown Item"
		}
		parts = append(parts, fmt.Sprintf("%d x %s", l.Quantity, name))
	}

	values := map[string]string{
		"ShopName":     settings.ShopName,
		"CustomerName": customer.Name,
		"InvoiceID":    invoiceRef(rt.ID),
		"ItemsList":    strings.Join(parts, ", "),
		"ReturnDate":   rt.ExpectedReturnDate.Format("2006-01-02"),
		"TotalAmount":  money(rt.TotalCost()),
		"AdvancePaid":  money(rt.AdvancePayment),
		"BalanceDue":   money(rt.Balance()),
		"Fines":        money(rt.FineAmount),
		"Discount":     money(rt.DiscountAmount),
	}

	return &messageContext{rental: rt, customer: customer, settings: settings, values: values}, nil
}

func (s *messageService) CheckoutConfirmation(ctx context.Context, rentalID string) (*domain.Message, error) {
	mc, err := s.load(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	return &domain.Message{
		Kind:      domain.MessageKindCheckout,
		Recipient: mc.settings.CountryCode + mc.customer.Phone,
		Subject:   fmt.Sprintf("Checkout confirmation %s", mc.values["InvoiceID"]),
		Body:      RenderTemplate(mc.settings.CheckoutTemplate, mc.values),
	}, nil
}

func (s *messageService) CheckinSummary(ctx context.Context, rentalID string, dueToday float64) (*domain.Message, error) {
	mc, err := s.load(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	mc.values["TotalDueToday"] = money(dueToday)
	return &domain.Message{
		Kind:      domain.MessageKindCheckin,
		Recipient: mc.settings.CountryCode + mc.customer.Phone,
		Subject:   fmt.Sprintf("Return summary %s", mc.values["InvoiceID"]),
		Body:      RenderTemplate(mc.settings.CheckinTemplate, mc.values),
	}, nil
}

func (s *messageService) BalanceReminder(ctx context.Context, rentalID string) (*domain.Message, error) {
	mc, err := s.load(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	return &domain.Message{
		Kind:      domain.MessageKindBalanceReminder,
		Recipient: mc.settings.CountryCode + mc.customer.Phone,
		Subject:   fmt.Sprintf("Balance reminder %s", mc.values["InvoiceID"]),
		Body:      RenderTemplate(mc.settings.BalanceReminderTemplate, mc.values),
	}, nil
}

func (s *messageService) Dispatch(ctx context.Context, msg *domain.Message) error {
	if s.channel == nil {
		return fmt.Errorf("no message channel configured")
	}
	if err := s.channel.Send(ctx, msg.Recipient, msg.Subject, msg.Body); err != nil {
		return fmt.Errorf("message dispatch failed: %w", err)
	}
	logger.Info("message dispatched", "kind", msg.Kind, "recipient", msg.Recipient)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/repository"
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	locks        *EntityLocks
	notifier     *LedgerNotifier

	idemMu   sync.Mutex
	idemSeen map[string]struct{}
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	locks *EntityLocks,
	notifier *LedgerNotifier,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		locks:        locks,
		notifier:     notifier,
		idemSeen:     make(map[string]struct{}),
	}
}

// Checkout creates a rental: validates stock and dates, freezes per-line
// prices, seeds the payment history with the advance, and decrements
// item availability.
func (s *rentalService) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Rental, error) {
	if len(req.Lines) == 0 {
		return nil, domain.Invalid("a rental needs at least one item line")
	}
	for _, l := range req.Lines {
		if l.Quantity <= 0 {
			return nil, domain.Invalid("line quantities must be positive")
		}
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	checkout := req.CheckoutDate
	if checkout.IsZero() {
		checkout = time.Now()
	}
	if Midnight(req.ExpectedReturnDate).Before(Midnight(time.Now())) {
		return nil, domain.Invalid("expected return date cannot be in the past")
	}

	itemIDs := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		itemIDs = append(itemIDs, l.ItemID)
	}
	locked := s.locks.LockAll(itemIDs)
	defer s.locks.UnlockAll(locked)

	days := ExpectedDays(checkout, req.ExpectedReturnDate)
	items := make(map[string]*domain.Item, len(req.Lines))
	lines := make([]domain.RentalLine, 0, len(req.Lines))
	var expectedTotal float64
	for _, l := range req.Lines {
		it, err := s.itemRepo.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if l.Quantity > it.Available {
			return nil, domain.Invalid(fmt.Sprintf("not enough stock for %s: %d requested, %d available", it.Name, l.Quantity, it.Available))
		}
		items[it.ID] = it
		lines = append(lines, domain.RentalLine{
			ItemID:      it.ID,
			Quantity:    l.Quantity,
			PricePerDay: it.RentalPrice,
		})
		expectedTotal += it.RentalPrice * float64(l.Quantity) * float64(days)
	}

	if req.AdvancePayment < 0 {
		return nil, domain.Invalid("advance payment cannot be negative")
	}
	if req.AdvancePayment > expectedTotal {
		return nil, domain.Invalid(fmt.Sprintf("advance payment %.2f exceeds expected total %.2f", req.AdvancePayment, expectedTotal))
	}

	now := time.Now()
	rt := &domain.Rental{
		ID:                 uuid.New().String(),
		CustomerID:         req.CustomerID,
		Lines:              lines,
		CheckoutDate:       checkout,
		ExpectedReturnDate: req.ExpectedReturnDate,
		TotalAmount:        expectedTotal,
		AdvancePayment:     req.AdvancePayment,
		PaidAmount:         req.AdvancePayment,
		Status:             domain.RentalStatusRented,
		Remarks:            req.Remarks,
	}
	if req.AdvancePayment > 0 {
		rt.PaymentHistory = []domain.Payment{{Date: now, Amount: req.AdvancePayment}}
	}

	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		return nil, err
	}

	// The rental is committed before stock is decremented; a failure
	// here leaves a gap the caller sees as an error (see §7 notes in
	// DESIGN.md).
	for _, l := range lines {
		it := items[l.ItemID]
		it.Available -= l.Quantity
		if err := s.itemRepo.Update(ctx, it); err != nil {
			return nil, fmt.Errorf("rental %s created but stock update for item %s failed: %w", rt.ID, it.ID, err)
		}
	}

	logger.Info("rental created", "rental_id", rt.ID, "customer_id", rt.CustomerID, "total", rt.TotalAmount)
	s.notifier.Publish()
	return rt, nil
}

// ProcessReturn applies a settlement: returned units, a new fine and
// discount, and a payment, then recomputes status and item stock.
func (s *rentalService) ProcessReturn(ctx context.Context, rentalID string, returns []domain.ReturnLine, payment domain.PaymentDetails, idemKey string) (*domain.Rental, error) {
	if payment.FineAmount < 0 || payment.Discount < 0 || payment.PaidAmountToday < 0 {
		return nil, domain.Invalid("fine, discount and payment amounts cannot be negative")
	}

	s.locks.Lock(rentalID)
	defer s.locks.Unlock(rentalID)

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	// Replay check only; the key is recorded after persistence succeeds,
	// so a failed settlement can be retried with the same key. The rental
	// lock held above serializes same-key callers.
	if idemKey != "" {
		s.idemMu.Lock()
		_, seen := s.idemSeen[rentalID+"/"+idemKey]
		s.idemMu.Unlock()
		if seen {
			return rt, nil
		}
	}

	// Returned units per item, clamped to what is still outstanding.
	applied := make([]domain.ReturnLine, 0, len(returns))
	for li := range rt.Lines {
		line := &rt.Lines[li]
		for _, ret := range returns {
			if ret.ItemID != line.ItemID {
				continue
			}
			qty := ret.Quantity
			if out := line.Outstanding(); qty > out {
				qty = out
			}
			if qty <= 0 {
				continue
			}
			line.ReturnedQuantity += qty
			line.ReturnStatus = ret.Status
			applied = append(applied, domain.ReturnLine{ItemID: ret.ItemID, Quantity: qty, Status: ret.Status})
		}
	}

	rt.FineAmount += payment.FineAmount
	rt.DiscountAmount += payment.Discount
	if payment.FineNotes != "" {
		note := time.Now().Format("2006-01-02") + ": " + payment.FineNotes
		if rt.FineNotes == "" {
			rt.FineNotes = note
		} else {
			rt.FineNotes += "\n" + note
		}
	}
	rt.PaidAmount += payment.PaidAmountToday
	if payment.PaidAmountToday > 0 {
		rt.PaymentHistory = append(rt.PaymentHistory, domain.Payment{Date: time.Now(), Amount: payment.PaidAmountToday})
	}

	prev := rt.Status
	rt.Status = rt.ResolveStatus()
	if rt.Status == domain.RentalStatusReturned && prev != domain.RentalStatusReturned {
		now := time.Now()
		rt.ActualReturnDate = &now
	}

	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	if err := s.applyStockReturns(ctx, applied); err != nil {
		return nil, err
	}

	if idemKey != "" {
		s.idemMu.Lock()
		s.idemSeen[rentalID+"/"+idemKey] = struct{}{}
		s.idemMu.Unlock()
	}

	logger.Info("return processed", "rental_id", rt.ID, "status", rt.Status, "paid_today", payment.PaidAmountToday)
	s.notifier.Publish()
	return rt, nil
}

// applyStockReturns adjusts item stock for each returned unit: OK units
// rejoin the pool, Lost units leave the fleet, Damaged units are routed
// to the needs-repair count instead of being silently re-pooled.
func (s *rentalService) applyStockReturns(ctx context.Context, returns []domain.ReturnLine) error {
	ids := make([]string, 0, len(returns))
	for _, r := range returns {
		ids = append(ids, r.ItemID)
	}
	locked := s.locks.LockAll(ids)
	defer s.locks.UnlockAll(locked)

	for _, ret := range returns {
		it, err := s.itemRepo.GetByID(ctx, ret.ItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("returned item missing from catalog", "item_id", ret.ItemID)
				continue
			}
			return err
		}

		switch ret.Status {
		case domain.ReturnStatusOK:
			it.Available += ret.Quantity
		case domain.ReturnStatusLost:
			it.Quantity -= ret.Quantity
		case domain.ReturnStatusDamaged:
			it.Damaged += ret.Quantity
		}
		if it.Quantity < 0 {
			it.Quantity = 0
		}
		if it.Available > it.Quantity {
			it.Available = it.Quantity
		}
		if it.Damaged > it.Quantity {
			it.Damaged = it.Quantity
		}

		if err := s.itemRepo.Update(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// AddPayment records a standalone payment against a rental.
func (s *rentalService) AddPayment(ctx context.Context, rentalID string, amount float64) (*domain.Rental, error) {
	if amount <= 0 {
		return nil, domain.Invalid("payment amount must be positive")
	}

	s.locks.Lock(rentalID)
	defer s.locks.Unlock(rentalID)

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if amount > rt.Balance()+domain.PaymentEpsilon {
		return nil, domain.Invalid(fmt.Sprintf("payment %.2f exceeds outstanding balance %.2f", amount, rt.Balance()))
	}

	rt.PaidAmount += amount
	rt.PaymentHistory = append(rt.PaymentHistory, domain.Payment{Date: time.Now(), Amount: amount})

	prev := rt.Status
	rt.Status = rt.ResolveStatus()
	if rt.Status == domain.RentalStatusReturned && prev != domain.RentalStatusReturned && rt.ActualReturnDate == nil {
		now := time.Now()
		rt.ActualReturnDate = &now
	}

	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	logger.Info("payment recorded", "rental_id", rt.ID, "amount", amount, "balance", rt.Balance())
	s.notifier.Publish()
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx)
}

// ReplaceRental persists a whole record as-is, normalizing only the
// derived status, and returns the canonical stored copy.
func (s *rentalService) ReplaceRental(ctx context.Context, rt *domain.Rental) (*domain.Rental, error) {
	s.locks.Lock(rt.ID)
	defer s.locks.Unlock(rt.ID)

	rt.Status = rt.ResolveStatus()
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	stored, err := s.rentalRepo.GetByID(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.Publish()
	return stored, nil
}

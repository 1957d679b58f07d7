package service

import (
	"context"
	"errors"
	"time"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/repository"
)

// Midnight truncates a timestamp to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daySpan(a, b time.Time) int {
	d := Midnight(b).Sub(Midnight(a))
	if d < 0 {
		d = -d
	}
	// Dates are midnight-truncated, so the span is whole days; rounding
	// absorbs DST offsets.
	return int((d + 12*time.Hour) / (24 * time.Hour))
}

// ExpectedDays is the agreed rental duration, never less than one day.
func ExpectedDays(checkout, expectedReturn time.Time) int {
	if d := daySpan(checkout, expectedReturn); d > 1 {
		return d
	}
	return 1
}

// DaysToCharge bills at least the agreed duration, more on overrun.
// Same-day checkout and return still charges one day.
func DaysToCharge(checkout, expectedReturn, today time.Time) int {
	expected := ExpectedDays(checkout, expectedReturn)
	elapsed := daySpan(checkout, today)
	if elapsed < 1 {
		elapsed = 1
	}
	if elapsed > expected {
		return elapsed
	}
	return expected
}

// AccruedTotal computes the time-based cost of an open rental as of
// today, from the frozen per-line rates and original quantities.
func AccruedTotal(rt *domain.Rental, today time.Time) float64 {
	return rt.DailyRate() * float64(DaysToCharge(rt.CheckoutDate, rt.ExpectedReturnDate, today))
}

// AccrualEngine keeps TotalAmount on open rentals tracking elapsed
// time. Rentals that have left RENTED are frozen at whatever settlement
// last computed and are never touched.
type AccrualEngine struct {
	rentals  repository.RentalRepository
	locks    *EntityLocks
	notifier *LedgerNotifier
}

func NewAccrualEngine(rentals repository.RentalRepository, locks *EntityLocks, notifier *LedgerNotifier) *AccrualEngine {
	return &AccrualEngine{rentals: rentals, locks: locks, notifier: notifier}
}

// Run recomputes every open rental once and persists only changed
// totals, so a second pass with no elapsed time writes nothing.
// Returns the number of rentals updated.
func (e *AccrualEngine) Run(ctx context.Context, today time.Time) (int, error) {
	open, err := e.rentals.ListByStatus(ctx, domain.RentalStatusRented)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range open {
		rt := &open[i]
		e.locks.Lock(rt.ID)
		changed, err := e.accrueOne(ctx, rt.ID, today)
		e.locks.Unlock(rt.ID)
		if err != nil {
			return updated, err
		}
		if changed {
			updated++
		}
	}

	if updated > 0 {
		logger.Info("accrual pass updated rentals", "count", updated)
		if e.notifier != nil {
			e.notifier.Publish()
		}
	}
	return updated, nil
}

// accrueOne re-reads the rental under its lock: settlement may have
// closed it between the list and now.
func (e *AccrualEngine) accrueOne(ctx context.Context, rentalID string, today time.Time) (bool, error) {
	rt, err := e.rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if rt.Status != domain.RentalStatusRented {
		return false, nil
	}

	newTotal := AccruedTotal(rt, today)
	if newTotal == rt.TotalAmount {
		return false, nil
	}
	rt.TotalAmount = newTotal
	if err := e.rentals.Update(ctx, rt); err != nil {
		return false, err
	}
	return true, nil
}

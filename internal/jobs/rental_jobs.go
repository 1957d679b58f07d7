package jobs

import (
	"context"
	"time"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/service"
)

// RunAccrualPass re-bills every open rental for elapsed time.
func (jr *JobRunner) RunAccrualPass() {
	jr.runWithRecovery("RunAccrualPass", func() {
		ctx := context.Background()
		updated, err := jr.services.Accrual.Run(ctx, time.Now())
		if err != nil {
			logger.Error("Accrual pass failed", "error", err)
			return
		}
		logger.Info("Accrual pass finished", "updated", updated)
	})
}

// SendOverdueReminders dispatches a balance reminder for every rental
// that is past its expected return date with units still out.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		rentals, err := jr.services.Rental.ListRentals(ctx)
		if err != nil {
			logger.Error("Failed to list rentals", "error", err)
			return
		}

		today := service.Midnight(time.Now())
		count := 0
		for _, rt := range rentals {
			if rt.Status == domain.RentalStatusReturned {
				continue
			}
			if rt.ExpectedReturnDate.IsZero() || !service.Midnight(rt.ExpectedReturnDate).Before(today) {
				continue
			}
			if rt.FullyReturned() {
				continue
			}
			jr.dispatchReminder(ctx, rt.ID)
			count++
		}
		logger.Info("Sent overdue reminders", "count", count)
	})
}

// SendBalanceReminders dispatches reminders for unreturned rentals
// whose balance is past the configured threshold.
func (jr *JobRunner) SendBalanceReminders() {
	jr.runWithRecovery("SendBalanceReminders", func() {
		ctx := context.Background()
		rentals, err := jr.services.Rental.ListRentals(ctx)
		if err != nil {
			logger.Error("Failed to list rentals", "error", err)
			return
		}

		threshold := *jr.config.Billing.PendingBalanceThreshold
		count := 0
		for _, rt := range rentals {
			if rt.Status == domain.RentalStatusReturned {
				continue
			}
			if rt.Balance() <= threshold {
				continue
			}
			jr.dispatchReminder(ctx, rt.ID)
			count++
		}
		logger.Info("Sent balance reminders", "count", count)
	})
}

func (jr *JobRunner) dispatchReminder(ctx context.Context, rentalID string) {
	msg, err := jr.services.Message.BalanceReminder(ctx, rentalID)
	if err != nil {
		logger.Error("Failed to build reminder", "rental_id", rentalID, "error", err)
		return
	}
	if err := jr.services.Message.Dispatch(ctx, msg); err != nil {
		logger.Error("Failed to dispatch reminder", "rental_id", rentalID, "error", err)
	}
}

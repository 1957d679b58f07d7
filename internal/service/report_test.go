package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/service"
)

func TestBuildSummary(t *testing.T) {
	customers := []domain.Customer{{ID: "c1", Name: "Nimal"}, {ID: "c2", Name: "Kamala"}}
	items := []domain.Item{
		{ID: "i1", Name: "Drill"},
		{ID: "i2", Name: "Ladder"},
	}
	rentals := []domain.Rental{
		{
			ID: "r1", CustomerID: "c1",
			CheckoutDate: date(2026, 1, 10),
			TotalAmount:  500, FineAmount: 50, AdvancePayment: 100, PaidAmount: 300,
			Lines: []domain.RentalLine{{ItemID: "i1", Quantity: 2}},
			PaymentHistory: []domain.Payment{
				{Date: date(2026, 1, 10), Amount: 100},
				{Date: date(2026, 1, 14), Amount: 200},
			},
			Status: domain.RentalStatusPartiallyReturned,
		},
		{
			ID: "r2", CustomerID: "c2",
			CheckoutDate: date(2026, 2, 3),
			TotalAmount:  200, DiscountAmount: 20, AdvancePayment: 200, PaidAmount: 180,
			Lines:          []domain.RentalLine{{ItemID: "i2", Quantity: 1}, {ItemID: "i1", Quantity: 1}},
			PaymentHistory: []domain.Payment{{Date: date(2026, 2, 3), Amount: 180}},
			Status:         domain.RentalStatusReturned,
		},
	}

	sum := service.BuildSummary(rentals, items, customers)

	assert.Equal(t, 700.0, sum.TotalRevenue)
	assert.Equal(t, 50.0, sum.TotalFines)
	// r1 owes 250; r2 is settled (180 = 200 - 20).
	assert.Equal(t, 250.0, sum.TotalOutstanding)
	// Only paid beyond the advance counts: r1 contributes 200, r2 nothing.
	assert.Equal(t, 200.0, sum.BalanceCollected)

	// Popularity by unit count, Drill 3 vs Ladder 1.
	assert.Equal(t, "Drill", sum.PopularItems[0].Name)
	assert.Equal(t, 3, sum.PopularItems[0].Count)
	assert.Equal(t, "Ladder", sum.PopularItems[1].Name)

	// Payments newest first with the customer attached.
	assert.Len(t, sum.RecentPayments, 3)
	assert.Equal(t, date(2026, 2, 3), sum.RecentPayments[0].Date)
	assert.Equal(t, "Kamala", sum.RecentPayments[0].CustomerName)
	assert.Equal(t, date(2026, 1, 10), sum.RecentPayments[2].Date)

	// Monthly income keyed by checkout month, ascending.
	assert.Equal(t, []domain.MonthlyIncome{
		{Month: "2026-01", Income: 500},
		{Month: "2026-02", Income: 200},
	}, sum.MonthlyIncome)
}

func TestBuildSummary_PopularityCut(t *testing.T) {
	items := make([]domain.Item, 0, 7)
	rentals := make([]domain.Rental, 0, 7)
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, n := range names {
		id := "i" + n
		items = append(items, domain.Item{ID: id, Name: n})
		rentals = append(rentals, domain.Rental{
			ID:           "r" + n,
			CheckoutDate: date(2026, 1, 1),
			Lines:        []domain.RentalLine{{ItemID: id, Quantity: i + 1}},
		})
	}

	sum := service.BuildSummary(rentals, items, nil)
	assert.Len(t, sum.PopularItems, 5)
	assert.Equal(t, "G", sum.PopularItems[0].Name, "highest unit count first")
}

func TestBuildCustomerStatement(t *testing.T) {
	customer := &domain.Customer{ID: "c1", Name: "Nimal"}
	rentals := []domain.Rental{
		{
			ID: "r1", CustomerID: "c1", CheckoutDate: date(2026, 1, 10),
			TotalAmount: 500, FineAmount: 50, PaidAmount: 300,
			Status: domain.RentalStatusPartiallyReturned,
		},
		{
			ID: "r2", CustomerID: "c1", CheckoutDate: date(2026, 2, 3),
			TotalAmount: 200, DiscountAmount: 20, PaidAmount: 180,
			Status: domain.RentalStatusReturned,
		},
	}

	st := service.BuildCustomerStatement(customer, rentals)

	assert.Equal(t, "c1", st.CustomerID)
	assert.Equal(t, "Nimal", st.CustomerName)
	assert.Len(t, st.Rentals, 2)
	assert.Equal(t, "r2", st.Rentals[0].RentalID, "newest checkout first")
	assert.Equal(t, 730.0, st.LifetimeCost)
	assert.Equal(t, 480.0, st.LifetimePaid)
	assert.Equal(t, 250.0, st.Balance)
}

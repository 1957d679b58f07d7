package domain

import "time"

// PaymentRecord is a payment annotated with its rental and customer for
// the report timeline.
type PaymentRecord struct {
	Date         time.Time `json:"date"`
	Amount       float64   `json:"amount"`
	RentalID     string    `json:"rental_id"`
	CustomerName string    `json:"customer_name"`
}

type PopularItem struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type MonthlyIncome struct {
	Month  string  `json:"month"` // yyyy-mm
	Income float64 `json:"income"`
}

// ReportSummary is the shop-wide rollup over the rental ledger.
type ReportSummary struct {
	TotalRevenue     float64         `json:"total_revenue"`
	TotalFines       float64         `json:"total_fines"`
	TotalOutstanding float64         `json:"total_outstanding"`
	BalanceCollected float64         `json:"balance_collected"`
	PopularItems     []PopularItem   `json:"popular_items"`
	MonthlyIncome    []MonthlyIncome `json:"monthly_income"`
	RecentPayments   []PaymentRecord `json:"recent_payments"`
}

// StatementEntry is one rental on a customer statement.
type StatementEntry struct {
	RentalID     string       `json:"rental_id"`
	CheckoutDate time.Time    `json:"checkout_date"`
	Status       RentalStatus `json:"status"`
	TotalCost    float64      `json:"total_cost"`
	Paid         float64      `json:"paid"`
	Balance      float64      `json:"balance"`
}

// CustomerStatement lists all rentals for one customer with lifetime sums.
type CustomerStatement struct {
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	Rentals      []StatementEntry `json:"rentals"`
	LifetimeCost float64          `json:"lifetime_cost"`
	LifetimePaid float64          `json:"lifetime_paid"`
	Balance      float64          `json:"balance"`
}

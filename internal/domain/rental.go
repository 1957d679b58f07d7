package domain

import "time"

type RentalStatus string

const (
	RentalStatusRented            RentalStatus = "RENTED"
	RentalStatusPartiallyReturned RentalStatus = "PARTIALLY_RETURNED"
	RentalStatusReturned          RentalStatus = "RETURNED"
)

type ReturnStatus string

const (
	ReturnStatusOK      ReturnStatus = "OK"
	ReturnStatusDamaged ReturnStatus = "DAMAGED"
	ReturnStatusLost    ReturnStatus = "LOST"
)

// PaymentEpsilon is the tolerance for the fully-paid check: a rental
// counts as paid once the balance drops below one cent.
const PaymentEpsilon = 0.01

// RentalLine is one item entry within a rental. PricePerDay is frozen
// at checkout time; the live item rate is never re-read.
type RentalLine struct {
	ItemID           string       `json:"item_id"`
	Quantity         int          `json:"quantity"`
	ReturnedQuantity int          `json:"returned_quantity"`
	PricePerDay      float64      `json:"price_per_day"`
	ReturnStatus     ReturnStatus `json:"return_status,omitempty"`
}

// Outstanding returns the units of this line still on loan.
func (l *RentalLine) Outstanding() int {
	return l.Quantity - l.ReturnedQuantity
}

type Payment struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Rental is a single checkout transaction: one customer, one or more
// lines, and the full financial history. Rentals are never deleted.
type Rental struct {
	ID                 string       `json:"id"`
	CustomerID         string       `json:"customer_id"`
	Lines              []RentalLine `json:"lines"`
	CheckoutDate       time.Time    `json:"checkout_date"`
	ExpectedReturnDate time.Time    `json:"expected_return_date"`
	ActualReturnDate   *time.Time   `json:"actual_return_date,omitempty"`
	TotalAmount        float64      `json:"total_amount"`
	AdvancePayment     float64      `json:"advance_payment"`
	PaidAmount         float64      `json:"paid_amount"`
	Status             RentalStatus `json:"status"`
	FineAmount         float64      `json:"fine_amount"`
	FineNotes          string       `json:"fine_notes"`
	DiscountAmount     float64      `json:"discount_amount"`
	Remarks            string       `json:"remarks"`
	PaymentHistory     []Payment    `json:"payment_history"`
	CreatedOn          time.Time    `json:"created_on"`
	UpdatedOn          time.Time    `json:"updated_on"`
}

// TotalCost is the base accrued amount plus fines minus discounts.
func (r *Rental) TotalCost() float64 {
	return r.TotalAmount + r.FineAmount - r.DiscountAmount
}

// Balance is the amount still owed on this rental.
func (r *Rental) Balance() float64 {
	return r.TotalCost() - r.PaidAmount
}

// DailyRate sums the frozen per-line rates over original quantities.
func (r *Rental) DailyRate() float64 {
	var rate float64
	for _, l := range r.Lines {
		rate += l.PricePerDay * float64(l.Quantity)
	}
	return rate
}

// FullyReturned reports whether every line has all units back.
func (r *Rental) FullyReturned() bool {
	for _, l := range r.Lines {
		if l.ReturnedQuantity < l.Quantity {
			return false
		}
	}
	return true
}

// AnyReturned reports whether at least one unit has come back.
func (r *Rental) AnyReturned() bool {
	for _, l := range r.Lines {
		if l.ReturnedQuantity > 0 {
			return true
		}
	}
	return false
}

// FullyPaid applies the epsilon tolerance against the current total cost.
func (r *Rental) FullyPaid() bool {
	return r.PaidAmount >= r.TotalCost()-PaymentEpsilon
}

// ResolveStatus derives the status purely from line and payment state:
// RETURNED iff everything is back and paid, PARTIALLY_RETURNED iff any
// unit is back, RENTED otherwise.
func (r *Rental) ResolveStatus() RentalStatus {
	switch {
	case r.FullyReturned() && r.FullyPaid():
		return RentalStatusReturned
	case r.AnyReturned():
		return RentalStatusPartiallyReturned
	default:
		return RentalStatusRented
	}
}

package domain

import "time"

// CheckoutLine is one requested item entry at rental creation.
type CheckoutLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CheckoutRequest creates a rental.
type CheckoutRequest struct {
	CustomerID         string         `json:"customer_id"`
	Lines              []CheckoutLine `json:"lines"`
	CheckoutDate       time.Time      `json:"checkout_date"`
	ExpectedReturnDate time.Time      `json:"expected_return_date"`
	AdvancePayment     float64        `json:"advance_payment"`
	Remarks            string         `json:"remarks"`
}

// ReturnLine records units coming back for one rental line.
type ReturnLine struct {
	ItemID   string       `json:"item_id"`
	Quantity int          `json:"quantity"`
	Status   ReturnStatus `json:"status"`
}

// PaymentDetails carries the money side of a settlement: a new fine,
// a new discount and the amount paid today. All values are deltas,
// accumulated onto the rental, never replacing prior state.
type PaymentDetails struct {
	FineAmount      float64 `json:"fine_amount"`
	FineNotes       string  `json:"fine_notes"`
	Discount        float64 `json:"discount"`
	PaidAmountToday float64 `json:"paid_amount_today"`
}

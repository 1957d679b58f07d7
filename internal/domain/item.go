package domain

import "time"

// Item is a fleet entry. Quantity counts units owned, Available counts
// units not currently on loan, Damaged counts returned units waiting on
// repair. Invariants: 0 <= Available <= Quantity and
// Available + Damaged <= Quantity.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	Quantity    int       `json:"quantity"`
	Available   int       `json:"available"`
	Damaged     int       `json:"damaged"`
	RentalPrice float64   `json:"rental_price"`
	Remarks     string    `json:"remarks"`
	AddedAt     time.Time `json:"added_at"`
}

// Rented returns the number of units currently out on loan.
func (i *Item) Rented() int {
	return i.Quantity - i.Available
}

package domain

import "time"

type MessageKind string

const (
	MessageKindCheckout        MessageKind = "CHECKOUT_CONFIRMATION"
	MessageKindCheckin         MessageKind = "CHECKIN_SUMMARY"
	MessageKindBalanceReminder MessageKind = "BALANCE_REMINDER"
)

// Message is a rendered, ready-to-dispatch payload. The core supplies
// the text; a channel (email, messaging app) handles delivery.
type Message struct {
	Kind      MessageKind `json:"kind"`
	Recipient string      `json:"recipient"`
	Subject   string      `json:"subject"`
	Body      string      `json:"body"`
}

// InvoiceLine is one priced line of the exported financial summary.
type InvoiceLine struct {
	ItemName    string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	PricePerDay float64 `json:"price_per_day"`
}

// Invoice is the structured financial summary handed to the document
// renderer. The core supplies numbers and labels only, no layout.
type Invoice struct {
	RentalID           string        `json:"rental_id"`
	ShopName           string        `json:"shop_name"`
	CustomerName       string        `json:"customer_name"`
	CustomerPhone      string        `json:"customer_phone"`
	CheckoutDate       time.Time     `json:"checkout_date"`
	ExpectedReturnDate time.Time     `json:"expected_return_date"`
	Lines              []InvoiceLine `json:"lines"`
	BaseTotal          float64       `json:"base_total"`
	Fines              float64       `json:"fines"`
	Discounts          float64       `json:"discounts"`
	Paid               float64       `json:"paid"`
	Balance            float64       `json:"balance"`
	Payments           []Payment     `json:"payments"`
	FooterText         string        `json:"footer_text"`
}

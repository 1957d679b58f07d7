package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalshop-backend/internal/domain"
)

func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentals.ListRentals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rt, err := h.rentals.Checkout(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	rt, err := h.rentals.GetRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *Handler) ReplaceRental(w http.ResponseWriter, r *http.Request) {
	var rt domain.Rental
	if !decodeBody(w, r, &rt) {
		return
	}
	rt.ID = mux.Vars(r)["id"]
	updated, err := h.rentals.ReplaceRental(r.Context(), &rt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type returnRequest struct {
	Returns []domain.ReturnLine   `json:"returns"`
	Payment domain.PaymentDetails `json:"payment"`
}

// ProcessReturn settles a partial or full check-in. The optional
// Idempotency-Key header makes retries safe.
func (h *Handler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rt, err := h.rentals.ProcessReturn(r.Context(), mux.Vars(r)["id"], req.Returns, req.Payment, r.Header.Get("Idempotency-Key"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rt, err := h.rentals.AddPayment(r.Context(), mux.Vars(r)["id"], req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// BuildMessage renders one of the customer-facing message templates
// for a rental without dispatching it.
func (h *Handler) BuildMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rentalID := vars["id"]

	var (
		msg *domain.Message
		err error
	)
	switch vars["kind"] {
	case "checkout":
		msg, err = h.message.CheckoutConfirmation(r.Context(), rentalID)
	case "checkin":
		rt, gerr := h.rentals.GetRental(r.Context(), rentalID)
		if gerr != nil {
			writeError(w, gerr)
			return
		}
		msg, err = h.message.CheckinSummary(r.Context(), rentalID, rt.Balance())
	case "balance":
		msg, err = h.message.BalanceReminder(r.Context(), rentalID)
	default:
		writeJSON(w, http.StatusUnprocessableEntity, domain.Failed("unknown message kind"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

type exportResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

func (h *Handler) ExportInvoice(w http.ResponseWriter, r *http.Request) {
	path, err := h.export.WriteInvoice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Success: true, Path: path})
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST surface. Everything under /api except login
// requires a valid session token.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/login", h.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.authMiddleware)

	api.HandleFunc("/customers", h.ListCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers", h.CreateCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", h.UpdateCustomer).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", h.DeleteCustomer).Methods(http.MethodDelete)

	api.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	api.HandleFunc("/items", h.CreateItem).Methods(http.MethodPost)
	api.HandleFunc("/items/{id}", h.GetItem).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", h.UpdateItem).Methods(http.MethodPut)
	api.HandleFunc("/items/{id}", h.DeleteItem).Methods(http.MethodDelete)

	api.HandleFunc("/rentals", h.ListRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals", h.Checkout).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}", h.GetRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", h.ReplaceRental).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{id}/return", h.ProcessReturn).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/payments", h.AddPayment).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/messages/{kind}", h.BuildMessage).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/invoice", h.ExportInvoice).Methods(http.MethodGet)

	api.HandleFunc("/alerts", h.ListAlerts).Methods(http.MethodGet)
	api.HandleFunc("/reports/summary", h.ReportSummary).Methods(http.MethodGet)
	api.HandleFunc("/reports/customers/{id}", h.CustomerStatement).Methods(http.MethodGet)

	api.HandleFunc("/settings", h.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.UpdateSettings).Methods(http.MethodPut)

	return r
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalshop-backend/internal/domain"
)

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.catalog.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if !decodeBody(w, r, &c) {
		return
	}
	created, err := h.catalog.AddCustomer(r.Context(), &c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if !decodeBody(w, r, &c) {
		return
	}
	c.ID = mux.Vars(r)["id"]
	updated, err := h.catalog.UpdateCustomer(r.Context(), &c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCustomer(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.OK("Customer deleted successfully."))
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.catalog.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var it domain.Item
	if !decodeBody(w, r, &it) {
		return
	}
	created, err := h.catalog.AddItem(r.Context(), &it)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var it domain.Item
	if !decodeBody(w, r, &it) {
		return
	}
	it.ID = mux.Vars(r)["id"]
	updated, err := h.catalog.UpdateItem(r.Context(), &it)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.OK("Item deleted successfully."))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.catalog.GetSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s domain.Settings
	if !decodeBody(w, r, &s) {
		return
	}
	updated, err := h.catalog.UpdateSettings(r.Context(), &s)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalshop-backend/internal/domain"
)

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) CustomerStatement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.reports.CustomerStatement(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statement)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentalshop-backend/internal/config"
	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/security"
	"rentalshop-backend/internal/service"
)

// Handler bundles the services behind the REST surface.
type Handler struct {
	catalog service.CatalogService
	rentals service.RentalService
	alerts  service.AlertService
	reports service.ReportService
	message service.MessageService
	export  service.ExportService
	tokens  security.TokenManager
	cfg     *config.Config
}

func NewHandler(
	catalog service.CatalogService,
	rentals service.RentalService,
	alerts service.AlertService,
	reports service.ReportService,
	message service.MessageService,
	export service.ExportService,
	tokens security.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		catalog: catalog,
		rentals: rentals,
		alerts:  alerts,
		reports: reports,
		message: message,
		export:  export,
		tokens:  tokens,
		cfg:     cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the error taxonomy onto responses: validation
// failures and missing ids become structured {success, message}
// results, everything else is a server error.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, domain.Failed(ve.Message))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, domain.Failed("not found"))
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, domain.Failed("internal error"))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Failed("invalid request body"))
		return false
	}
	return true
}

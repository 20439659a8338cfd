package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"tripdesk/internal/domain"
)

type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type errorEnvelope struct {
	Errors []apiError `json:"errors"`
}

func writeError(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	env := errorEnvelope{Errors: []apiError{{Title: title, Detail: detail}}}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("write error envelope failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeDomainError maps the typed error taxonomy onto the uniform envelope.
// Internal detail is only surfaced when it is already domain-safe.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var ge *domain.GuestValidationError
	var se *domain.SupplierError
	var te *domain.TransportError
	var pe *domain.PersistenceError
	var oe *domain.OrphanedBookingError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "Invalid Input", ve.Error())
	case errors.As(err, &ge):
		writeError(w, http.StatusBadRequest, "Invalid Guest Information", ge.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, http.StatusForbidden, "Insufficient Funds", "wallet balance does not cover the booking total")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not Found", "the requested resource does not exist")
	case errors.As(err, &se):
		writeError(w, http.StatusInternalServerError, "Supplier Error", se.Detail)
	case errors.As(err, &te):
		log.Error().Err(te).Msg("supplier transport failure")
		writeError(w, http.StatusInternalServerError, "Upstream Unavailable", "could not reach the booking supplier")
	case errors.As(err, &oe):
		writeError(w, http.StatusInternalServerError, "Booking Needs Attention",
			"the reservation was confirmed by the supplier but could not be recorded; quote reference "+oe.Reference+" to support")
	case errors.Is(err, domain.ErrEnrichmentUnavailable):
		writeError(w, http.StatusInternalServerError, "Content Unavailable", "hotel content could not be loaded for the supplier results")
	case errors.As(err, &pe):
		log.Error().Err(pe).Msg("persistence failure")
		writeError(w, http.StatusInternalServerError, "Internal Error", "an internal error occurred")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "Internal Error", "an internal error occurred")
	}
}

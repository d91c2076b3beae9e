package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"shareit/internal/database"
	"shareit/internal/models"
)

// statusEntry maps a domain error to an HTTP status and summary label.
type statusEntry struct {
	target  error
	status  int
	message string
}

// The single dispatch table consulted at the boundary. Order matters only
// for readability; the targets are disjoint.
var statusTable = []statusEntry{
	{database.ErrUserValidation, http.StatusBadRequest, "Validation for user failed"},
	{database.ErrItemValidation, http.StatusBadRequest, "Validation for item failed"},
	{database.ErrBookingValidation, http.StatusBadRequest, "Validation for booking failed"},
	{database.ErrCommentValidation, http.StatusBadRequest, "Validation for comment failed"},
	{database.ErrUnsupportedState, http.StatusBadRequest, "error"},
	{database.ErrUserNotFound, http.StatusNotFound, "Search for user failed"},
	{database.ErrItemNotFound, http.StatusNotFound, "Search for item failed"},
	{database.ErrBookingNotFound, http.StatusNotFound, "Search for booking failed"},
	{database.ErrNotOwner, http.StatusForbidden, "User must be the owner"},
	{database.ErrEmailConflict, http.StatusConflict, "Email conflict has occurred"},
	// 403 would fit better, but the acceptance tests require 404 here.
	{database.ErrUserAccess, http.StatusNotFound, "User access denied"},
}

// writeDomainError renders any error raised by the services into the single
// error shape. Unrecognized failures become a generic 500; only the error
// message text is exposed, never a stack trace.
func (s *HTTPServer) writeDomainError(w http.ResponseWriter, err error) {
	for _, entry := range statusTable {
		if errors.Is(err, entry.target) {
			s.logger.Error().Err(err).Msg(entry.message)
			writeError(w, entry.status, entry.message, err.Error())
			return
		}
	}

	s.logger.Error().Err(err).Msg("unknown error")
	writeError(w, http.StatusInternalServerError, "Unknown error has occurred", err.Error())
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message, detail string) {
	writeJSON(w, statusCode, models.ErrorResponse{Message: message, Error: detail})
}

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/database"
	"shareit/internal/models"
)

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		state, ok := models.ParseBookingState(r.URL.Query().Get("state"))
		if !ok {
			s.writeDomainError(w, fmt.Errorf("%w: %s", database.ErrUnsupportedState, r.URL.Query().Get("state")))
			return
		}

		bookings, err := s.bookings.FindBookingsOfUser(r.Context(), state, userID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)

	case http.MethodPost:
		var dto models.BookingDto
		if err := decodeBody(r, &dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}
		if err := s.validate.Struct(dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}

		created, err := s.bookings.Create(r.Context(), dto, userID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, created)

	default:
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
	}
}

func (s *HTTPServer) handleBookingsOfOwner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
		return
	}
	ownerID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	state, ok := models.ParseBookingState(r.URL.Query().Get("state"))
	if !ok {
		s.writeDomainError(w, fmt.Errorf("%w: %s", database.ErrUnsupportedState, r.URL.Query().Get("state")))
		return
	}

	bookings, err := s.bookings.FindBookingsOfOwner(r.Context(), state, ownerID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID, tail, err := pathID(r.URL.Path, "/bookings/")
	if err != nil || tail != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", "invalid booking id")
		return
	}
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		booking, err := s.bookings.FindBookingByID(r.Context(), bookingID, userID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	case http.MethodPatch:
		approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", "approved must be true or false")
			return
		}

		booking, err := s.bookings.SetBookingApproval(r.Context(), userID, approved, bookingID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	default:
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
	}
}

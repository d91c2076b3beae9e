package api

import (
	"net/http"

	"shareit/internal/models"
)

func (s *HTTPServer) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		users, err := s.users.GetAll(r.Context())
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)

	case http.MethodPost:
		var dto models.UserDto
		if err := decodeBody(r, &dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}
		if err := s.validate.Struct(dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}

		created, err := s.users.Create(r.Context(), dto)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, created)

	default:
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
	}
}

func (s *HTTPServer) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, _, err := pathID(r.URL.Path, "/users/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := s.users.FindUserByID(r.Context(), id)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodPatch:
		var dto models.UserUpdateDto
		if err := decodeBody(r, &dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}
		if err := s.validate.Struct(dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}

		updated, err := s.users.Update(r.Context(), dto, id)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.users.Delete(r.Context(), id); err != nil {
			s.writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
	}
}

package api

import (
	"net/http"

	"shareit/internal/models"
)

func (s *HTTPServer) handleItems(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := s.items.GetAllItemsByOwner(r.Context(), ownerID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		var dto models.ItemDto
		if err := decodeBody(r, &dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}
		if err := s.validate.Struct(dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}

		created, err := s.items.Create(r.Context(), dto, ownerID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, created)

	default:
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
	}
}

func (s *HTTPServer) handleItemSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
		return
	}

	items, err := s.items.SearchItemByText(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleItemByID(w http.ResponseWriter, r *http.Request) {
	itemID, tail, err := pathID(r.URL.Path, "/items/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	if tail == "comment" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
			return
		}
		var dto models.CommentDto
		if err := decodeBody(r, &dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}
		if err := s.validate.Struct(dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}

		created, err := s.items.AddComment(r.Context(), dto, itemID, userID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, created)
		return
	}
	if tail != "" {
		writeError(w, http.StatusNotFound, "error", "unknown resource")
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := s.items.FindItemByID(r.Context(), itemID, userID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)

	case http.MethodPatch:
		var dto models.ItemUpdateDto
		if err := decodeBody(r, &dto); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}

		updated, err := s.items.Update(r.Context(), dto, itemID, userID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.items.Delete(r.Context(), itemID); err != nil {
			s.writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
	}
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the ShareIt REST API.
type HTTPServer struct {
	cfg      *config.Config
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	cache    domain.SearchCache
	exports  Exporter
	validate *validator.Validate
	server   *http.Server
	logger   *zerolog.Logger
}

// Exporter enqueues background report exports.
type Exporter interface {
	Enqueue(ctx context.Context) error
}

func NewHTTPServer(
	cfg *config.Config,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	cache domain.SearchCache,
	exports Exporter,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		users:    users,
		items:    items,
		bookings: bookings,
		cache:    cache,
		exports:  exports,
		validate: validator.New(),
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users", srv.handleUsers)
	mux.HandleFunc("/users/", srv.handleUserByID)
	mux.HandleFunc("/items", srv.handleItems)
	mux.HandleFunc("/items/search", srv.handleItemSearch)
	mux.HandleFunc("/items/", srv.handleItemByID)
	mux.HandleFunc("/bookings", srv.handleBookings)
	mux.HandleFunc("/bookings/owner", srv.handleBookingsOfOwner)
	mux.HandleFunc("/bookings/", srv.handleBookingByID)
	mux.HandleFunc("/admin/exports", srv.handleExports)

	handler := srv.loggingMiddleware(srv.rateLimitMiddleware(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured handler chain, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleExports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "error", "method not allowed")
		return
	}
	if s.exports == nil {
		writeError(w, http.StatusServiceUnavailable, "error", "exports are not configured")
		return
	}

	if err := s.exports.Enqueue(r.Context()); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

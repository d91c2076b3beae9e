package models

import "strings"

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELED"
)

// BookingState is the filter applied to booking listings.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState validates raw against the closed state set.
// An empty string defaults to ALL.
func ParseBookingState(raw string) (BookingState, bool) {
	switch BookingState(strings.ToUpper(strings.TrimSpace(raw))) {
	case "":
		return StateAll, true
	case StateAll:
		return StateAll, true
	case StateCurrent:
		return StateCurrent, true
	case StatePast:
		return StatePast, true
	case StateFuture:
		return StateFuture, true
	case StateWaiting:
		return StateWaiting, true
	case StateRejected:
		return StateRejected, true
	default:
		return "", false
	}
}

const (
	// SearchCacheTTL время жизни кэша результатов поиска
	SearchCacheTTL = 5 * 60 // 5 минут в секундах

	// WorkerQueueSize размер очереди воркера экспорта
	WorkerQueueSize = 128

	// RateLimitRequests количество запросов в окне
	RateLimitRequests = 20

	// RateLimitWindow окно ограничения частоты запросов
	RateLimitWindow = 60 // 1 минута в секундах
)

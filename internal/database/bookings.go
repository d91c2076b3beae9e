package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `id, start_date, end_date, item_id, booker_id, status, created_at, updated_at`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.Start,
		booking.End,
		booking.ItemID,
		booking.BookerID,
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	var booking models.Booking
	err := db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID, &booking.Start, &booking.End, &booking.ItemID, &booking.BookerID,
		&booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

// stateClause maps a booking state filter to an SQL condition relative to
// now. prefix qualifies column names when bookings are joined.
func stateClause(state models.BookingState, prefix string) (string, []any) {
	now := time.Now()
	switch state {
	case models.StateCurrent:
		return ` AND ` + prefix + `start_date <= ? AND ` + prefix + `end_date >= ?`, []any{now, now}
	case models.StatePast:
		return ` AND ` + prefix + `end_date < ?`, []any{now}
	case models.StateFuture:
		return ` AND ` + prefix + `start_date > ?`, []any{now}
	case models.StateWaiting:
		return ` AND ` + prefix + `status = ?`, []any{models.StatusWaiting}
	case models.StateRejected:
		return ` AND ` + prefix + `status = ?`, []any{models.StatusRejected}
	default:
		return ``, nil
	}
}

// GetBookingsByBooker returns the user's bookings filtered by state,
// newest start first.
func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = ?`
	args := []any{bookerID}

	clause, clauseArgs := stateClause(state, "")
	query += clause + ` ORDER BY start_date DESC`
	args = append(args, clauseArgs...)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by booker: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBookingsByOwner returns bookings of all items owned by ownerID,
// filtered by state, newest start first.
func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState) ([]models.Booking, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status, b.created_at, b.updated_at
              FROM bookings b JOIN items i ON b.item_id = i.id
              WHERE i.owner_id = ?`
	args := []any{ownerID}

	clause, clauseArgs := stateClause(state, "b.")
	query += clause + ` ORDER BY b.start_date DESC`
	args = append(args, clauseArgs...)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by owner: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBookingsByItemIDs returns bookings of the given items, start ascending.
// Used for grouping per item when building owner views.
func (db *DB) GetBookingsByItemIDs(ctx context.Context, itemIDs []int64) ([]models.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(itemIDs)), ",")
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE item_id IN (` + placeholders + `) ORDER BY start_date`

	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by item ids: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountFinishedBookings returns the number of bookings of itemID by userID
// that ended before now and were not rejected or canceled. Gate for comments.
func (db *DB) CountFinishedBookings(ctx context.Context, itemID, userID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND end_date < ? AND status NOT IN (?, ?)`

	var count int
	err := db.QueryRowContext(ctx, query, itemID, userID, now,
		models.StatusRejected, models.StatusCanceled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count, nil
}

// GetBookingsForExport returns every booking joined with the item and booker
// names, start ascending. Feeds the xlsx report.
func (db *DB) GetBookingsForExport(ctx context.Context) ([]models.BookingExportRow, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status, b.created_at, b.updated_at,
                     i.name, u.name
              FROM bookings b
              JOIN items i ON b.item_id = i.id
              JOIN users u ON b.booker_id = u.id
              ORDER BY b.start_date`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings for export: %w", err)
	}
	defer rows.Close()

	var result []models.BookingExportRow
	for rows.Next() {
		var row models.BookingExportRow
		if err := rows.Scan(&row.ID, &row.Start, &row.End, &row.ItemID, &row.BookerID,
			&row.Status, &row.CreatedAt, &row.UpdatedAt, &row.ItemName, &row.BookerName); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(&booking.ID, &booking.Start, &booking.End, &booking.ItemID,
			&booking.BookerID, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

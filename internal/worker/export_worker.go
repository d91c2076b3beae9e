package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"golang.org/x/time/rate"
)

// ExportSource provides the data for xlsx reports.
type ExportSource interface {
	GetBookingsForExport(ctx context.Context) ([]models.BookingExportRow, error)
}

// ExportWorker builds booking reports in the background. Jobs come from a
// buffered queue; a rate limiter keeps repeated requests from producing a
// file per click.
type ExportWorker struct {
	source      ExportSource
	exportsPath string
	retryPolicy RetryPolicy
	queue       chan exportJob
	limiter     *rate.Limiter
	logger      *zerolog.Logger
}

type exportJob struct {
	requestedAt time.Time
}

var ErrQueueFull = errors.New("export queue is full")

func NewExportWorker(source ExportSource, exportsPath string, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 30 * time.Second
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &ExportWorker{
		source:      source,
		exportsPath: exportsPath,
		retryPolicy: retry,
		queue:       make(chan exportJob, models.WorkerQueueSize),
		// Не чаще одного отчета в 10 секунд, всплеск из двух.
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 2),
		logger:  logger,
	}
}

// Enqueue schedules a report. Non-blocking: a full queue is reported to the
// caller instead of stalling the HTTP handler.
func (w *ExportWorker) Enqueue(_ context.Context) error {
	select {
	case w.queue <- exportJob{requestedAt: time.Now()}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start consumes the queue until ctx is done.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("Export worker started")
	defer w.logger.Info().Msg("Export worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.queue:
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			w.runJob(ctx, job)
		}
	}
}

func (w *ExportWorker) runJob(ctx context.Context, job exportJob) {
	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		path, err := w.buildReport(ctx)
		if err == nil {
			w.logger.Info().
				Str("file_path", path).
				Dur("queued_for", time.Since(job.requestedAt)).
				Msg("Export report created")
			return
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryPolicy.NextDelay(attempt)):
		}
	}
	w.logger.Error().Err(lastErr).Msg("Export failed after retries")
}

// buildReport writes every booking to an xlsx file and returns its path.
func (w *ExportWorker) buildReport(ctx context.Context) (string, error) {
	if err := os.MkdirAll(w.exportsPath, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings, err := w.source.GetBookingsForExport(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status", "Created"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), b.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.ItemName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), b.BookerName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.Start.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.End.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), b.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), b.CreatedAt.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 12)
	_ = f.SetColWidth(sheetName, "G", "G", 20)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(w.exportsPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}
	return filePath, nil
}

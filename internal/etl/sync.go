package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Pipeline ───────────────────────────────────────────────
// Orchestrates: Extractor.Extract → ProcessTable → Destination.Write.

// TableSource produces the raw table.
type TableSource interface {
	Extract(ctx context.Context) (*Table, error)
}

// SyncResult is the outcome of one pipeline run.
type SyncResult struct {
	RunID       string        `json:"runId"`
	Status      string        `json:"status"` // "success" | "error"
	RowsRead    int           `json:"rowsRead"`
	RowsWritten int           `json:"rowsWritten"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
}

// Pipeline runs the three stages in order.
type Pipeline struct {
	Source TableSource
	Dest   Destination
	Logger *zap.Logger

	// Diagnostics receives the header row before transformation. It is kept
	// apart from Logger so the configured log level cannot silence it.
	// Defaults to Logger.
	Diagnostics *zap.Logger
}

// Run executes the pipeline end-to-end. The first failing stage stops the run.
func (p *Pipeline) Run(ctx context.Context) (*SyncResult, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	result := &SyncResult{RunID: uuid.New().String()}
	logger = logger.With(zap.String("run_id", result.RunID))

	fail := func(stage string, err error) (*SyncResult, error) {
		err = fmt.Errorf("%s: %w", stage, err)
		result.Status = "error"
		result.Error = err.Error()
		result.Duration = time.Since(start)
		logger.Error("Pipeline failed", zap.String("stage", stage), zap.Error(err))
		return result, err
	}

	// 1. Extract.
	raw, err := p.Source.Extract(ctx)
	if err != nil {
		return fail("extract", err)
	}
	result.RowsRead = len(raw.Rows)

	// 2. Transform.
	diag := logger
	if p.Diagnostics != nil {
		diag = p.Diagnostics.With(zap.String("run_id", result.RunID))
	}
	cleaned, err := ProcessTable(raw, diag)
	if err != nil {
		return fail("transform", err)
	}

	// 3. Write.
	written, err := p.Dest.Write(cleaned)
	if err != nil {
		return fail("write", err)
	}

	result.Status = "success"
	result.RowsWritten = written
	result.Duration = time.Since(start)
	logger.Info("Pipeline finished",
		zap.Int("rows_read", result.RowsRead),
		zap.Int("rows_written", result.RowsWritten),
		zap.Duration("duration", result.Duration))
	return result, nil
}

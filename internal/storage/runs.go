package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/riskwire/riskwire/internal/core/domain"
)

// InsertBatchRun appends one run record to the audit trail. Assigns the id
// when the caller left it empty.
func (db *DB) InsertBatchRun(ctx context.Context, run *domain.BatchRunLog) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO batch_runs (id, started_at, duration_ms, processed, skipped, errors, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, toTimestamptz(run.StartedAt), run.Duration.Milliseconds(),
		run.Processed, run.Skipped, run.Errors, run.Status)
	if err != nil {
		return fmt.Errorf("insert batch run: %w", err)
	}

	return nil
}

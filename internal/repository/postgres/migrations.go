package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS tracked_jobs (
    id               TEXT PRIMARY KEY,
    title            VARCHAR(100) NOT NULL,
    company          VARCHAR(100) NOT NULL,
    application_link TEXT NOT NULL,
    status           TEXT NOT NULL CHECK (status IN ('Applied', 'Interviewing', 'Rejected', 'Offer')),
    created_at       TIMESTAMPTZ NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL,
    seq              BIGSERIAL
);

CREATE INDEX IF NOT EXISTS idx_tracked_jobs_created ON tracked_jobs (created_at DESC, seq DESC);
`

// Migrate creates the tracked_jobs table if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

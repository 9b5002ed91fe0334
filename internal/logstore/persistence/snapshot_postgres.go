package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	upsertSnapshotSQL = `INSERT INTO logvault_snapshots (name, checkpoint_id, version, image, captured_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (name) DO UPDATE SET
    checkpoint_id = EXCLUDED.checkpoint_id,
    version = EXCLUDED.version,
    image = EXCLUDED.image,
    captured_at = EXCLUDED.captured_at,
    updated_at = now()`

	selectSnapshotSQL = `SELECT image FROM logvault_snapshots WHERE name = $1`
)

// DefaultSnapshotName is the row key used when a deployment runs one store.
const DefaultSnapshotName = "default"

// PostgresSnapshotter stores the image as JSONB in logvault_snapshots. The
// schema lives in the top-level migrations package.
type PostgresSnapshotter struct {
	db   *sql.DB
	name string
}

func NewPostgres(db *sql.DB, name string) *PostgresSnapshotter {
	if name == "" {
		name = DefaultSnapshotName
	}
	return &PostgresSnapshotter{db: db, name: name}
}

func (p *PostgresSnapshotter) Save(ctx context.Context, img *Image) error {
	data, err := Encode(img)
	if err != nil {
		return err
	}
	checkpointID, err := uuid.Parse(img.CheckpointID)
	if err != nil {
		checkpointID = uuid.New()
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, upsertSnapshotSQL,
		p.name, checkpointID, img.Version, data, img.CapturedAt,
	); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (p *PostgresSnapshotter) Load(ctx context.Context) (*Image, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx, selectSnapshotSQL, p.name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return Decode(data)
}

// Close is a no-op; the pool is owned by the caller.
func (p *PostgresSnapshotter) Close() error {
	return nil
}

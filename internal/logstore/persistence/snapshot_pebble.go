package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

var pebbleImageKey = []byte("logvault/image")

// PebbleSnapshotter stores the image in an embedded pebble database. Each
// save is a synced single-key write.
type PebbleSnapshotter struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) the database in dir.
func OpenPebble(dir string) (*PebbleSnapshotter, error) {
	if dir == "" {
		return nil, fmt.Errorf("pebble directory is required")
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble: %w", err)
	}
	return &PebbleSnapshotter{db: db}, nil
}

func (p *PebbleSnapshotter) Save(_ context.Context, img *Image) error {
	data, err := Encode(img)
	if err != nil {
		return err
	}
	if err := p.db.Set(pebbleImageKey, data, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set snapshot: %w", err)
	}
	return nil
}

func (p *PebbleSnapshotter) Load(_ context.Context) (*Image, error) {
	value, closer, err := p.db.Get(pebbleImageKey)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("pebble get snapshot: %w", err)
	}
	// value is only valid until closer.Close.
	data := append([]byte(nil), value...)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("pebble release snapshot: %w", err)
	}
	return Decode(data)
}

func (p *PebbleSnapshotter) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("close pebble: %w", err)
	}
	return nil
}

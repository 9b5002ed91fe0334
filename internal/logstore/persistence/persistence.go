// Package persistence saves and loads the durable image of the log store.
//
// Error Contract:
// All Snapshotter implementations follow this error pattern:
//   - Load returns (nil, nil) when no image has been saved yet
//   - Load returns an error wrapping ErrCorruptImage when stored bytes cannot
//     be decoded; callers treat that as first start
//   - Any other error is a storage failure and must not be swallowed
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"logvault/internal/logstore/models"
	"logvault/internal/sentinel"
	"logvault/internal/usage"
)

// FormatVersion is written into every image. Decode rejects other versions.
const FormatVersion = 1

// ErrCorruptImage marks stored bytes that are not a decodable image.
var ErrCorruptImage = fmt.Errorf("corrupt image: %w", sentinel.ErrInvalidState)

// Image is the serialised durable state.
type Image struct {
	Version      int               `json:"version"`
	CheckpointID string            `json:"checkpoint_id"`
	CapturedAt   time.Time         `json:"captured_at"`
	Store        models.StoreImage `json:"store"`
	Usage        usage.State       `json:"usage"`
}

// Snapshotter is the durable storage primitive behind checkpoints.
type Snapshotter interface {
	Save(ctx context.Context, img *Image) error
	Load(ctx context.Context) (*Image, error)
	Close() error
}

// Quarantiner is implemented by backends that can move an unusable image
// aside, so the next Save does not overwrite it. Quarantine returns where the
// image now lives.
type Quarantiner interface {
	Quarantine(ctx context.Context, at time.Time) (string, error)
}

func quarantineSuffix(at time.Time) string {
	return "corrupt-" + at.UTC().Format("20060102T150405Z")
}

// Encode serialises img as JSON.
func Encode(img *Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode image: nil image")
	}
	data, err := json.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return data, nil
}

// Decode parses data produced by Encode.
func Decode(data []byte) (*Image, error) {
	var img Image
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	if img.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptImage, img.Version)
	}
	return &img, nil
}

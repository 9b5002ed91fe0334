package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"logvault/internal/logstore/metrics"
	"logvault/internal/logstore/models"
	"logvault/internal/logstore/persistence"
	"logvault/internal/platform/tracer"
	"logvault/internal/sentinel"
	"logvault/internal/usage"
	dErrors "logvault/pkg/domain-errors"
	request "logvault/pkg/platform/middleware/request"
)

// Store is the bounded log store.
// Error Contract:
//   - Add, SetCapacity and Restore return sentinel.ErrInvalidInput (wrapped)
//     for out-of-range input and leave the store unchanged
//   - Reads never fail for well-formed filters; absence is an empty result
type Store interface {
	Add(ctx context.Context, in models.NewEntry) (models.AddResult, error)
	Query(ctx context.Context, filter models.Filter, page models.Page) ([]models.Entry, error)
	Export(ctx context.Context, filter models.Filter, page models.Page) (models.Export, error)
	Size(ctx context.Context, filter models.Filter) (int, error)
	Clear(ctx context.Context, namespaces []string) (int, error)
	SetCapacity(ctx context.Context, capacity int) (int, error)
	Capacity(ctx context.Context) int
	MaxCapacity() int
	Stats(ctx context.Context) models.Stats
	Image(ctx context.Context) models.StoreImage
	Restore(ctx context.Context, img models.StoreImage) error
	ReserveSequences(ctx context.Context, next uint64)
}

// Accountant is the usage accountant sampled by Stats and the usage worker.
type Accountant interface {
	Poll(ctx context.Context) []usage.Snapshot
	Status() usage.Status
	State() usage.State
	Restore(state usage.State) error
}

type Option func(*Service)

// Service exposes the log store operations. Every store operation holds the
// read side of mu; capturing or replacing the image holds the write side so an
// image never observes a partially applied operation. Snapshot I/O happens
// under saveMu only, and the accountant is never called under mu, since it
// may block on its reporter.
type Service struct {
	mu          sync.RWMutex
	saveMu      sync.Mutex
	store       Store
	accountant  Accountant
	snapshotter persistence.Snapshotter
	backend     string
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      tracer.Tracer

	// unix nanos of the last successful checkpoint
	lastSaved atomic.Int64
}

func New(store Store, accountant Accountant, snapshotter persistence.Snapshotter, opts ...Option) *Service {
	svc := &Service{
		store:       store,
		accountant:  accountant,
		snapshotter: snapshotter,
		backend:     "unknown",
		logger:      slog.Default(),
		tracer:      tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithBackend names the persistence backend in logs and spans.
func WithBackend(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.backend = name
		}
	}
}

// Add appends one entry stamped with the request time.
func (s *Service) Add(ctx context.Context, req *models.AddRequest) (*models.AddResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.store.Add(ctx, models.NewEntry{
		Namespace: req.Namespace,
		Level:     req.ParsedLevel(),
		Message:   req.Message,
		At:        request.Now(ctx),
	})
	if err != nil {
		return nil, translate(err, "failed to add entry")
	}
	s.metrics.ObserveAdd(res.Entry.Level, res.Evicted)
	return &models.AddResponse{Sequence: res.Entry.Sequence}, nil
}

func (s *Service) Query(ctx context.Context, req *models.QueryRequest) (*models.QueryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.store.Query(ctx, req.Filter(), req.Page())
	if err != nil {
		return nil, translate(err, "failed to query entries")
	}
	s.metrics.ObserveRead("query")
	return &models.QueryResponse{Entries: models.NewEntryResults(entries)}, nil
}

func (s *Service) Export(ctx context.Context, req *models.QueryRequest) (*models.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	export, err := s.store.Export(ctx, req.Filter(), req.Page())
	if err != nil {
		return nil, translate(err, "failed to export entries")
	}
	s.metrics.ObserveRead("export")
	exported := models.NewEntryResults(export.Exported)
	return &models.ExportResponse{Exported: exported, ExportedCount: len(exported)}, nil
}

func (s *Service) Size(ctx context.Context, req *models.SizeRequest) (*models.SizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n, err := s.store.Size(ctx, req.Filter())
	if err != nil {
		return nil, translate(err, "failed to size entries")
	}
	s.metrics.ObserveRead("size")
	return &models.SizeResponse{Size: n}, nil
}

// Clear removes the entries of the requested namespaces, or all entries when
// none are given.
func (s *Service) Clear(ctx context.Context, req *models.ClearRequest) (*models.ClearResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	removed, err := s.store.Clear(ctx, req.Namespaces)
	if err != nil {
		return nil, translate(err, "failed to clear entries")
	}
	s.metrics.ObserveCleared(removed)
	s.logger.InfoContext(ctx, "entries_cleared",
		"namespaces", req.Namespaces,
		"removed", removed,
		"request_id", request.GetRequestID(ctx),
	)
	return &models.ClearResponse{Removed: removed}, nil
}

// SetBufferSize changes the capacity, evicting the oldest entries when it
// shrinks below the current size.
func (s *Service) SetBufferSize(ctx context.Context, req *models.BufferSizeRequest) (*models.BufferSizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	evicted, err := s.store.SetCapacity(ctx, req.Size)
	if err != nil {
		return nil, translate(err, "failed to set buffer size")
	}
	s.metrics.ObserveEvicted(evicted)
	s.logger.InfoContext(ctx, "buffer_size_changed",
		"size", req.Size,
		"evicted", evicted,
		"request_id", request.GetRequestID(ctx),
	)
	return &models.BufferSizeResponse{Size: s.store.Capacity(ctx)}, nil
}

func (s *Service) BufferSize(ctx context.Context) *models.BufferSizeResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &models.BufferSizeResponse{Size: s.store.Capacity(ctx)}
}

// Poll advances the usage accountant. It satisfies the usage worker's Poller.
// The accountant reads store counters itself.
func (s *Service) Poll(ctx context.Context) []usage.Snapshot {
	return s.accountant.Poll(ctx)
}

// Stats polls the accountant so closed periods are recorded before the
// counters are read.
func (s *Service) Stats(ctx context.Context) *models.StatsResponse {
	s.accountant.Poll(ctx)

	s.mu.RLock()
	stats := s.store.Stats(ctx)
	maxCapacity := s.store.MaxCapacity()
	s.mu.RUnlock()

	s.metrics.ObserveStats(stats)
	return models.NewStatsResponse(stats, maxCapacity, s.accountant.Status())
}

// Checkpoint captures the store and accountant state and saves it. Capture
// blocks store operations; the save does not. Saves are serialised so the
// durable image is always the latest capture. A failed save is a persistence
// failure.
func (s *Service) Checkpoint(ctx context.Context) (err error) {
	start := time.Now()
	checkpointID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, tracer.SpanCheckpoint,
		tracer.String(tracer.AttrBackend, s.backend),
		tracer.String(tracer.AttrCheckpointID, checkpointID),
	)
	defer func() { span.End(err) }()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	img := &persistence.Image{
		Version:      persistence.FormatVersion,
		CheckpointID: checkpointID,
		CapturedAt:   time.Now().UTC(),
		Store:        s.store.Image(ctx),
		Usage:        s.accountant.State(),
	}
	s.mu.Unlock()

	err = s.snapshotter.Save(ctx, img)

	entries := len(img.Store.Entries)
	span.SetAttributes(
		tracer.Int(tracer.AttrEntries, entries),
		tracer.Int(tracer.AttrCapacity, img.Store.Capacity),
	)
	if err != nil {
		s.metrics.ObserveCheckpoint("failure", time.Since(start).Seconds(), entries)
		s.logger.ErrorContext(ctx, "checkpoint_failed",
			"checkpoint_id", checkpointID,
			"backend", s.backend,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodePersistence, "failed to save checkpoint")
	}
	s.metrics.ObserveCheckpoint("success", time.Since(start).Seconds(), entries)
	s.lastSaved.Store(img.CapturedAt.UnixNano())
	s.logger.InfoContext(ctx, "checkpoint_completed",
		"checkpoint_id", checkpointID,
		"backend", s.backend,
		"entries", entries,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// LastCheckpoint returns the capture time of the last successful checkpoint,
// or zero before the first one.
func (s *Service) LastCheckpoint() time.Time {
	n := s.lastSaved.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

// Restore loads the saved image, if any, and replaces the in-memory state.
// It reports whether an image was applied. Missing, corrupt or invalid images
// leave the store empty; only backend failures error. Unusable images are
// quarantined when the backend supports it, and an invalid image still
// reserves the sequences it handed out.
func (s *Service) Restore(ctx context.Context) (restored bool, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanRestore,
		tracer.String(tracer.AttrBackend, s.backend),
	)
	defer func() {
		span.SetAttributes(tracer.Bool(tracer.AttrImageFound, restored))
		span.End(err)
	}()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.snapshotter.Load(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrCorruptImage) {
			span.AddEvent(tracer.EventImageDiscarded)
			s.logger.WarnContext(ctx, "image_discarded",
				"backend", s.backend,
				"error", err,
			)
			s.quarantine(ctx)
			return false, nil
		}
		s.logger.ErrorContext(ctx, "restore_failed",
			"backend", s.backend,
			"error", err,
		)
		return false, dErrors.Wrap(err, dErrors.CodePersistence, "failed to load checkpoint")
	}
	if img == nil {
		s.logger.InfoContext(ctx, "restore_skipped", "backend", s.backend, "reason", "no image")
		return false, nil
	}

	if maxCapacity := s.store.MaxCapacity(); img.Store.Capacity > maxCapacity {
		s.logger.WarnContext(ctx, "image_capacity_lowered",
			"checkpoint_id", img.CheckpointID,
			"image_capacity", img.Store.Capacity,
			"max_capacity", maxCapacity,
			"trimmed", max(len(img.Store.Entries)-maxCapacity, 0),
		)
	}
	if err := s.store.Restore(ctx, img.Store); err != nil {
		floor := img.Store.SequenceFloor()
		s.store.ReserveSequences(ctx, floor)
		span.AddEvent(tracer.EventImageDiscarded)
		s.logger.WarnContext(ctx, "image_discarded",
			"backend", s.backend,
			"checkpoint_id", img.CheckpointID,
			"discarded_entries", len(img.Store.Entries),
			"next_sequence", floor,
			"error", err,
		)
		s.quarantine(ctx)
		return false, nil
	}
	if err := s.accountant.Restore(img.Usage); err != nil {
		s.logger.WarnContext(ctx, "usage_state_discarded",
			"checkpoint_id", img.CheckpointID,
			"error", err,
		)
	}

	stats := s.store.Stats(ctx)
	s.metrics.ObserveStats(stats)
	span.SetAttributes(tracer.Int(tracer.AttrEntries, stats.Size))
	s.logger.InfoContext(ctx, "restore_completed",
		"backend", s.backend,
		"checkpoint_id", img.CheckpointID,
		"captured_at", img.CapturedAt,
		"entries", stats.Size,
		"next_sequence", stats.NextSequence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return true, nil
}

// quarantine moves an unusable image aside when the backend can, so the next
// checkpoint does not destroy it. Failure to do so is logged, not fatal.
func (s *Service) quarantine(ctx context.Context) {
	q, ok := s.snapshotter.(persistence.Quarantiner)
	if !ok {
		return
	}
	where, err := q.Quarantine(ctx, time.Now())
	if err != nil {
		s.logger.WarnContext(ctx, "image_quarantine_failed", "backend", s.backend, "error", err)
		return
	}
	s.logger.WarnContext(ctx, "image_quarantined", "backend", s.backend, "location", where)
}

// translate maps store errors onto domain codes once, at the service edge.
func translate(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrInvalidInput):
		return dErrors.New(dErrors.CodeInvalidInput, err.Error())
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

package vault

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobvault/internal/labels"
	"github.com/jonathan/jobvault/internal/types"
)

// Engine runs the save pipeline: resolve labels, guard the root, allocate a
// directory, write the artifacts. Steps never overlap and nothing is retried
// or rolled back.
type Engine struct {
	resolver  *labels.Resolver
	allocator *Allocator
	writer    *Writer
	now       func() time.Time
	logger    *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for record dates and savedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithResolver replaces the label resolver, e.g. to fix untitled suffixes.
func WithResolver(r *labels.Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithLogger sets the logger; nil uses the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine with the default resolver, allocator and writer.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		resolver:  labels.NewResolver(nil),
		allocator: &Allocator{},
		writer:    NewWriter(),
		now:       time.Now,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Save persists req under root and reports the outcome. It never returns an
// error: every failure is folded into the result.
func (e *Engine) Save(ctx context.Context, root Root, req *types.SaveRequest) types.SaveResult {
	dir, err := e.save(ctx, root, req)
	if err != nil {
		e.logger.Printf("[VAULT] Save failed: %v", err)
		return types.SaveResult{OK: false, Error: err.Error()}
	}
	e.logger.Printf("[VAULT] Saved record %s", dir.Path)
	return types.SaveResult{OK: true, DirName: dir.Name, Path: dir.Path}
}

func (e *Engine) save(ctx context.Context, root Root, req *types.SaveRequest) (*RecordDir, error) {
	if root == nil {
		return nil, &ConfigurationError{Message: "no storage root selected"}
	}
	if req == nil {
		return nil, &ConfigurationError{Message: "empty save request"}
	}

	snap := req.Snapshot
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	// Reject bad input before the root is touched
	checked := types.SaveRequest{Snapshot: snap, Resume: req.Resume}
	if err := checked.Validate(); err != nil {
		return nil, &ConfigurationError{Message: "invalid save request", Cause: err}
	}
	now := e.now()
	if _, err := e.writer.Metadata(&snap, req.Resume, now); err != nil {
		return nil, &ConfigurationError{Message: "invalid save request", Cause: err}
	}

	lbl := e.resolver.Resolve(labels.Context{
		Company: snap.Company,
		Role:    snap.Role,
		URL:     snap.URL,
		Title:   snap.Title,
	})

	if err := EnsurePermission(ctx, root); err != nil {
		return nil, err
	}

	dir, err := e.allocator.Allocate(root.Path(), now, lbl.Company, lbl.Role)
	if err != nil {
		return nil, err
	}

	if err := e.writer.Write(dir, &snap, req.Resume, now); err != nil {
		return dir, err
	}
	return dir, nil
}

package store

import (
	"context"
	"errors"

	"github.com/gradientlab/darkroom/internal/domain"
)

var ErrJobNotFound = errors.New("job not found")

// JobStore persists edit jobs. Get reports absence through its bool rather
// than an error so callers can map a missing job to a 404 without sentinel
// checks; UpdateStatus and SetOutput return ErrJobNotFound instead, since a
// mutation of a missing job is always a bug upstream.
type JobStore interface {
	Create(ctx context.Context, job domain.Job) error
	Get(ctx context.Context, id string) (domain.Job, bool, error)
	UpdateStatus(ctx context.Context, id, status string) (domain.Job, error)
	SetOutput(ctx context.Context, id, outputKey string) error
}

// UsageStore records accounting rows; implemented by both job stores so the
// worker can bind one handle for both concerns.
type UsageStore interface {
	CreateUsageLog(ctx context.Context, usage domain.UsageLog) error
}

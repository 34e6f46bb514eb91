package settlement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hook is one idempotent recompute step run after a mutating transaction
// commits. Hooks receive the booking whose facts changed.
type Hook struct {
	Name string
	Run  func(ctx context.Context, bookingID uuid.UUID) error
}

// Pipeline is the ordered list of post-commit hooks: settlement sync first,
// then status resolution, so the resolver always sees synced payment flags.
// Hook failures never roll back the primary mutation; they are logged and
// re-driven by the periodic batch sweep, which converges to the same result.
type Pipeline struct {
	hooks []Hook
	log   *zap.Logger
}

// NewPipeline creates a pipeline with the given hooks in execution order
func NewPipeline(log *zap.Logger, hooks ...Hook) *Pipeline {
	return &Pipeline{hooks: hooks, log: log}
}

// Run executes every hook for every booking, in order. Errors are logged and
// the remaining hooks still run; a failed recompute is retried by the sweep.
func (p *Pipeline) Run(ctx context.Context, bookingIDs ...uuid.UUID) {
	for _, bookingID := range bookingIDs {
		for _, hook := range p.hooks {
			if err := hook.Run(ctx, bookingID); err != nil {
				p.log.Warn("post-commit hook failed",
					zap.String("hook", hook.Name),
					zap.String("booking_id", bookingID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

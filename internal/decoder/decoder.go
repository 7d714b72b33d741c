// Package decoder recovers readable script text from unknown binary
// containers. Strategies are attempted strictly in registration order, each
// under its own time budget; the first output above the plausibility floor
// wins and later strategies are skipped. A file no strategy can decode is
// not an error, merely nothing recoverable.
package decoder

import (
	"context"
	"os"
	"time"

	"github.com/gmodtools/swepscan/pkg/models"
	"go.uber.org/zap"
)

// Strategy is a single decode attempt with a uniform signature. raw holds
// the file content, already read once by the cascade; path is passed for
// strategies that must hand the file to an external process.
type Strategy interface {
	Name() models.DecodeStrategy
	Decode(ctx context.Context, path string, raw []byte) (string, error)
}

// Cascade runs an ordered strategy list with a shared acceptance predicate.
type Cascade struct {
	strategies []Strategy
	floor      int
	budget     time.Duration
	logger     *zap.Logger
}

// NewCascade creates an empty cascade. floor is the minimum decoded size
// considered substantial; budget bounds each individual strategy.
func NewCascade(logger *zap.Logger, floor int, budget time.Duration) *Cascade {
	return &Cascade{
		floor:  floor,
		budget: budget,
		logger: logger,
	}
}

// Register appends a strategy. Order of registration is order of attempt.
func (c *Cascade) Register(s Strategy) {
	c.strategies = append(c.strategies, s)
}

// Strategies returns the registered strategy names in attempt order.
func (c *Cascade) Strategies() []models.DecodeStrategy {
	names := make([]models.DecodeStrategy, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Decode reads the file once and walks the cascade. The returned outcome
// carries the winning strategy tag, or StrategyNone when every attempt
// failed or produced output below the floor.
func (c *Cascade) Decode(ctx context.Context, path string) models.DecodeOutcome {
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		c.logger.Debug("Decode read failed", zap.String("path", path), zap.Error(err))
		return models.DecodeOutcome{Strategy: models.StrategyNone, Elapsed: time.Since(start)}
	}

	for _, s := range c.strategies {
		if ctx.Err() != nil {
			break
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.budget)
		text, err := s.Decode(attemptCtx, path, raw)
		cancel()

		if err != nil {
			c.logger.Debug("Decode strategy failed",
				zap.String("strategy", string(s.Name())),
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		if len(text) < c.floor {
			continue
		}

		return models.DecodeOutcome{
			Text:     text,
			Strategy: s.Name(),
			Elapsed:  time.Since(start),
		}
	}

	return models.DecodeOutcome{Strategy: models.StrategyNone, Elapsed: time.Since(start)}
}

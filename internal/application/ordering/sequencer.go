package ordering

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/domain/order"
	"github.com/mddstore/backend/internal/domain/shared"
)

const (
	sequencerMaxAttempts = 5
	sequencerBaseBackoff = 20 * time.Millisecond
)

// Sequencer allocates order numbers without a dedicated counter table. It
// reads the highest number in the current month bucket, proposes the next
// one, and probes for existence before handing it out. Two concurrent
// checkouts can still propose the same number; the unique index on the
// order number is the final arbiter and the caller retries through Next.
type Sequencer struct {
	orders order.OrderRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewSequencer creates a Sequencer backed by the order repository
func NewSequencer(orders order.OrderRepository, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		orders: orders,
		logger: logger,
		now:    time.Now,
	}
}

// Next returns a fresh order number for the current month bucket. It makes
// up to five attempts, backing off briefly between collisions, and fails
// with SEQUENCE_EXHAUSTED once attempts run out or the month is full.
func (s *Sequencer) Next(ctx context.Context) (string, error) {
	prefix := order.NumberPrefix(s.now())

	for attempt := 1; attempt <= sequencerMaxAttempts; attempt++ {
		last, err := s.orders.LastNumberWithPrefix(ctx, prefix)
		if err != nil {
			return "", err
		}

		seq := order.SequenceOf(last) + 1
		candidate, err := order.ComposeNumber(s.now(), seq)
		if err != nil {
			return "", err
		}

		taken, err := s.orders.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}

		s.logger.Warn("order number collision, retrying",
			zap.String("candidate", candidate),
			zap.Int("attempt", attempt))

		if attempt < sequencerMaxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoffFor(attempt)):
			}
		}
	}

	return "", shared.NewDomainErrorf("SEQUENCE_EXHAUSTED",
		"Could not allocate an order number for %s after %d attempts", prefix, sequencerMaxAttempts)
}

// backoffFor returns a jittered delay that grows with the attempt count
func backoffFor(attempt int) time.Duration {
	base := sequencerBaseBackoff * time.Duration(attempt)
	jitter := time.Duration(rand.Int63n(int64(sequencerBaseBackoff)))
	return base + jitter
}

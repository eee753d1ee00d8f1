package payment

import "context"

// IdempotencyStore remembers which webhook events have been processed so
// gateway redeliveries cannot double-apply
type IdempotencyStore interface {
	// MarkProcessed records the event key and reports whether this call
	// was the first to do so
	MarkProcessed(ctx context.Context, key string) (bool, error)
	// Release forgets the event key so a later redelivery is treated as
	// first again. Used when handling failed after the key was claimed.
	Release(ctx context.Context, key string) error
}

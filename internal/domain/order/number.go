package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mddstore/backend/internal/domain/shared"
)

// Order numbers look like MDD25080042: a fixed store prefix, two-digit year,
// two-digit month, and a four-digit sequence that restarts every month.
const (
	numberPrefix   = "MDD"
	sequenceDigits = 4

	// MaxSequence is the highest sequence a month can hold
	MaxSequence = 9999
)

// NumberPrefix returns the prefix all orders placed in t's month share,
// e.g. "MDD2508" for August 2025.
func NumberPrefix(t time.Time) string {
	return fmt.Sprintf("%s%02d%02d", numberPrefix, t.Year()%100, int(t.Month()))
}

// ComposeNumber builds a full order number from a month bucket and sequence
func ComposeNumber(t time.Time, seq int) (string, error) {
	if seq < 1 || seq > MaxSequence {
		return "", shared.NewDomainErrorf("SEQUENCE_EXHAUSTED", "Order sequence %d out of range for %s", seq, NumberPrefix(t))
	}
	return fmt.Sprintf("%s%0*d", NumberPrefix(t), sequenceDigits, seq), nil
}

// SequenceOf extracts the numeric sequence from an order number. It returns
// 0 when the number does not carry a parseable trailing sequence.
func SequenceOf(number string) int {
	if len(number) <= sequenceDigits {
		return 0
	}
	seq, err := strconv.Atoi(number[len(number)-sequenceDigits:])
	if err != nil {
		return 0
	}
	return seq
}

// HasPrefix reports whether number belongs to the given month prefix
func HasPrefix(number, prefix string) bool {
	return strings.HasPrefix(number, prefix)
}

// IsNumber reports whether s has the shape of an order number: the store
// prefix, a four-digit month bucket and a four-digit sequence.
func IsNumber(s string) bool {
	if len(s) != len(numberPrefix)+4+sequenceDigits || !strings.HasPrefix(s, numberPrefix) {
		return false
	}
	_, err := strconv.Atoi(s[len(numberPrefix):])
	return err == nil
}

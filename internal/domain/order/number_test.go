package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberPrefix(t *testing.T) {
	aug := time.Date(2025, time.August, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "MDD2508", NumberPrefix(aug))

	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "MDD2601", NumberPrefix(jan))
}

func TestComposeNumber(t *testing.T) {
	aug := time.Date(2025, time.August, 15, 10, 0, 0, 0, time.UTC)

	n, err := ComposeNumber(aug, 42)
	require.NoError(t, err)
	assert.Equal(t, "MDD25080042", n)

	n, err = ComposeNumber(aug, MaxSequence)
	require.NoError(t, err)
	assert.Equal(t, "MDD25089999", n)

	_, err = ComposeNumber(aug, 0)
	assert.Error(t, err)
	_, err = ComposeNumber(aug, MaxSequence+1)
	assert.Error(t, err)
}

func TestSequenceOf(t *testing.T) {
	assert.Equal(t, 42, SequenceOf("MDD25080042"))
	assert.Equal(t, 9999, SequenceOf("MDD25089999"))
	assert.Equal(t, 0, SequenceOf("MDD"))
	assert.Equal(t, 0, SequenceOf("MDD2508XXXX"))
}

func TestMonthRollover(t *testing.T) {
	aug := time.Date(2025, time.August, 31, 23, 59, 0, 0, time.UTC)
	sep := time.Date(2025, time.September, 1, 0, 1, 0, 0, time.UTC)

	augNum, err := ComposeNumber(aug, 250)
	require.NoError(t, err)
	sepNum, err := ComposeNumber(sep, 1)
	require.NoError(t, err)

	assert.Equal(t, "MDD25080250", augNum)
	assert.Equal(t, "MDD25090001", sepNum)
	assert.False(t, HasPrefix(sepNum, NumberPrefix(aug)))
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber("MDD25080001"))
	assert.True(t, IsNumber("MDD25129999"))
	assert.False(t, IsNumber("MDD250800"))
	assert.False(t, IsNumber("ORD25080001"))
	assert.False(t, IsNumber("MDD2508000X"))
	assert.False(t, IsNumber(""))
}

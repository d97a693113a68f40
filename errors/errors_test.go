package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestNewBoxIndexError(t *testing.T) {
	err := NewBoxIndexError(5, 3)

	assert.True(t, IsBoxIndexError(err))
	assert.Contains(t, err.Error(), "box 5")
	assert.Equal(t, []string{"valid box indexes are 0..2"}, GetAllHints(err))
}

func TestNewBoxIndexError_EmptyPipeline(t *testing.T) {
	err := NewBoxIndexError(0, 0)

	assert.True(t, IsBoxIndexError(err))
	assert.Equal(t, []string{"the pipeline has no boxes"}, GetAllHints(err))
}

func TestSentinelChecks(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isIndex  bool
		isConfig bool
	}{
		{"nil", nil, false, false},
		{"index", NewBoxIndexError(1, 1), true, false},
		{"config", NewInvalidConfigError("speed %d", -1), false, true},
		{"wrapped config", Wrap(NewInvalidConfigError("days"), "load"), false, true},
		{"std wrapped index", fmt.Errorf("outer: %w", NewBoxIndexError(2, 1)), true, false},
		{"input", NewInvalidInputError("not a number: %q", "x"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isIndex, IsBoxIndexError(tt.err))
			assert.Equal(t, tt.isConfig, IsInvalidConfigError(tt.err))
		})
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("not a number: %q", "abc")
	assert.True(t, Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), `not a number: "abc"`)
}

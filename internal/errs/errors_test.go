package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "missing")))
	assert.Equal(t, Conflict, KindOf(Errorf(Conflict, "duplicate barcode: %s", "4901234567894")))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.Equal(t, Internal, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := New(NotFound, "product not found")
	wrapped := fmt.Errorf("lookup failed: %w", err)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, NotFound))
	assert.False(t, IsKind(wrapped, Conflict))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(UpstreamUnavailable, cause, "provider unavailable")

	assert.Equal(t, UpstreamUnavailable, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "provider unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(NotFound, nil, "ignored"))
}

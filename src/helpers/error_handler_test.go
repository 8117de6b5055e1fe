package helpers

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundErrorListsCandidates(t *testing.T) {
	err := NewNotFoundError("no price data for 9999", []string{"9999.TW", "9999.TWO", "9999"})

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "no price data for 9999 (tried: 9999.TW, 9999.TWO, 9999)", Describe(err))
	assert.Equal(t, "no price data for 9999: not found", err.Error())
}

func TestDescribeUnwrapsNotFound(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFoundError("no price data for X", []string{"X"}))

	assert.Equal(t, "no price data for X (tried: X)", Describe(wrapped))
	assert.Equal(t, "boom", Describe(errors.New("boom")))
}

func TestProviderFailure(t *testing.T) {
	err := NewProviderFailure("yahoo", "history", "2330.TW", io.ErrUnexpectedEOF)

	assert.True(t, errors.Is(err, ErrProviderFailure))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrNotFound))

	var pf *ProviderFailure
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &pf))
	assert.Equal(t, "2330.TW", pf.Symbol)
}

func TestTaxonomySentinels(t *testing.T) {
	inc := NewIncompleteDataError("2330.TW", []string{"Close", "Volume"})
	assert.True(t, errors.Is(inc, ErrIncompleteData))
	assert.Equal(t, []string{"Close", "Volume"}, inc.Missing)
	assert.Contains(t, inc.Error(), "Close,Volume")

	assert.True(t, errors.Is(NewEmptyResultError("2330.TW"), ErrEmptyResult))
	assert.True(t, errors.Is(NewValidationError("empty ticker"), ErrValidation))

	cause := errors.New("bad yaml")
	assert.True(t, errors.Is(NewConfigurationError("config", cause), cause))
}

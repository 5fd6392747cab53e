package biddingerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBidError_WrapsSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("service: failed: %w", NewBidError(ErrBelowMinIncrement, "minimum bid increment is $5.00"))

	require.ErrorIs(t, err, ErrBelowMinIncrement)
	var bidErr *BidError
	require.True(t, errors.As(err, &bidErr))
	require.Equal(t, "minimum bid increment is $5.00", bidErr.Message)
}

func TestIsCorrectable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err         error
		correctable bool
	}{
		{ErrInvalidAmount, true},
		{ErrBelowCurrentPrice, true},
		{ErrBelowMinIncrement, true},
		{ErrAuctionEnded, false},
		{ErrAuctionNotFound, false},
		{errors.New("boom"), false},
	}

	for _, tc := range tests {
		require.Equal(t, tc.correctable, IsCorrectable(NewBidError(tc.err, "x")), tc.err.Error())
	}
}

func TestCodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range codes {
		wrapped := fmt.Errorf("service: %w", c.err)
		require.Equal(t, c.code, Code(wrapped))
		require.Equal(t, c.err, FromCode(c.code))
	}
	require.Empty(t, Code(errors.New("boom")))
	require.Nil(t, FromCode("nope"))
	require.Nil(t, FromCode(""))
}

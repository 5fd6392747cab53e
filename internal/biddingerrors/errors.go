package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrNoBids          = errors.New("no bids found for auction")
	ErrUserNoBids      = errors.New("user has not placed any bids")
	ErrInvalidUserID   = errors.New("invalid user id")
)

// Bid validation errors. The first three are correctable by the bidder;
// ErrAuctionEnded is terminal.
var (
	ErrInvalidAmount     = errors.New("invalid bid amount")
	ErrBelowCurrentPrice = errors.New("bid below current price")
	ErrBelowMinIncrement = errors.New("bid below minimum increment")
	ErrAuctionEnded      = errors.New("auction has ended")
)

// Identity errors
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden for role")
)

// BidError carries the message shown next to the bid input.
type BidError struct {
	Err     error
	Message string
}

func (e *BidError) Error() string {
	return e.Message
}

func (e *BidError) Unwrap() error {
	return e.Err
}

// NewBidError wraps a validation sentinel with a user-facing message.
func NewBidError(err error, message string) *BidError {
	return &BidError{Err: err, Message: message}
}

// IsCorrectable reports whether err is an input error the bidder can fix
// by changing the amount.
func IsCorrectable(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrBelowCurrentPrice) ||
		errors.Is(err, ErrBelowMinIncrement)
}

var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidAmount, "invalid_amount"},
	{ErrBelowCurrentPrice, "below_current_price"},
	{ErrBelowMinIncrement, "below_min_increment"},
	{ErrAuctionEnded, "auction_ended"},
	{ErrAuctionNotFound, "auction_not_found"},
	{ErrNoBids, "no_bids"},
	{ErrUserNoBids, "user_no_bids"},
	{ErrInvalidUserID, "invalid_user_id"},
	{ErrUnauthenticated, "unauthenticated"},
	{ErrForbidden, "forbidden"},
}

// Code returns a stable machine-readable code for known errors, or "".
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// FromCode returns the sentinel for a code produced by Code, or nil.
func FromCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}

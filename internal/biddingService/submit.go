package bidding

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/internal/models"

	"github.com/shopspring/decimal"
)

// Submission is the state produced by an accepted bid
type Submission struct {
	Auction           models.Auction
	Bids              []models.Bid // newest first
	Bid               models.Bid
	NextBidSuggestion string
}

const (
	maxIntegerDigits  = 15
	maxFractionDigits = 8
)

var (
	plainAmount   = regexp.MustCompile(fmt.Sprintf(`^[+-]?\d{1,%d}(\.\d{1,%d})?$`, maxIntegerDigits, maxFractionDigits))
	decimalDigits = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
)

// ParseAmount parses a bid amount typed by a user. Only plain decimal
// notation is accepted, with at most 15 integer and 8 fraction digits, so
// NaN, infinities and exponent forms like "1e3" are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, biddingerrors.NewBidError(biddingerrors.ErrInvalidAmount, "bid amount is required")
	}
	if !plainAmount.MatchString(s) {
		if decimalDigits.MatchString(s) {
			return decimal.Decimal{}, biddingerrors.NewBidError(biddingerrors.ErrInvalidAmount, fmt.Sprintf("bid amount %q has too many digits", s))
		}
		return decimal.Decimal{}, biddingerrors.NewBidError(biddingerrors.ErrInvalidAmount, fmt.Sprintf("bid amount %q is not a number", s))
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, biddingerrors.NewBidError(biddingerrors.ErrInvalidAmount, fmt.Sprintf("bid amount %q is not a number", s))
	}
	return amount, nil
}

// SuggestNextBid is the smallest acceptable bid on auction, formatted to 2 decimals
func SuggestNextBid(auction models.Auction) string {
	return auction.CurrentPrice.Add(auction.MinBidIncrement).StringFixed(2)
}

// SubmitBid validates rawAmount against auction at now and, when it is
// acceptable, returns the new auction and bid history. The checks run in a
// fixed order and the first failure is returned. Neither auction nor
// existing is modified.
func SubmitBid(auction models.Auction, existing []models.Bid, rawAmount string, bidder models.User, now time.Time) (Submission, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Submission{}, err
	}

	if !amount.GreaterThan(auction.CurrentPrice) {
		return Submission{}, biddingerrors.NewBidError(biddingerrors.ErrBelowCurrentPrice,
			fmt.Sprintf("bid must be greater than current price of $%s", auction.CurrentPrice.StringFixed(2)))
	}
	if amount.LessThan(auction.CurrentPrice.Add(auction.MinBidIncrement)) {
		return Submission{}, biddingerrors.NewBidError(biddingerrors.ErrBelowMinIncrement,
			fmt.Sprintf("minimum bid increment is $%s", auction.MinBidIncrement.StringFixed(2)))
	}
	if auction.IsEnded(now) {
		return Submission{}, biddingerrors.NewBidError(biddingerrors.ErrAuctionEnded, "auction has ended")
	}

	bid := models.Bid{
		ID:        nextBidID(existing),
		AuctionID: auction.ID,
		UserID:    bidder.ID,
		UserName:  bidder.DisplayName,
		Amount:    amount,
		IsWinning: true,
		CreatedAt: now,
	}

	bids := make([]models.Bid, 0, len(existing)+1)
	bids = append(bids, bid)
	for _, b := range existing {
		b.IsWinning = false
		bids = append(bids, b)
	}

	updated := auction
	updated.CurrentPrice = amount
	updated.BidsCount = auction.BidsCount + 1

	return Submission{
		Auction:           updated,
		Bids:              bids,
		Bid:               bid,
		NextBidSuggestion: amount.Add(auction.MinBidIncrement).StringFixed(2),
	}, nil
}

func nextBidID(bids []models.Bid) int64 {
	var max int64
	for _, b := range bids {
		if b.ID > max {
			max = b.ID
		}
	}
	return max + 1
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the authenticated caller
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// Seller identifies the trader who owns an auction
type Seller struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Auction represents one tobacco lot open for bidding
type Auction struct {
	ID              int64               `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	TobaccoType     TobaccoType         `json:"tobacco_type"`
	Quantity        string              `json:"quantity"`
	Grade           string              `json:"grade"`
	RegionGrown     string              `json:"region_grown,omitempty"`
	SeasonGrown     string              `json:"season_grown,omitempty"`
	Seller          Seller              `json:"seller"`
	StartingPrice   decimal.Decimal     `json:"starting_price"`
	CurrentPrice    decimal.Decimal     `json:"current_price"`
	MinBidIncrement decimal.Decimal     `json:"min_bid_increment"`
	ReservePrice    decimal.NullDecimal `json:"reserve_price"`
	BidsCount       int                 `json:"bids_count"`
	TIMBCertificate string              `json:"timb_certificate,omitempty"`
	TIMBCleared     bool                `json:"timb_cleared"`
	CreatedAt       time.Time           `json:"created_at"`
	StartTime       time.Time           `json:"start_time"`
	EndsAt          time.Time           `json:"ends_at"`
}

// IsEnded reports whether bidding has closed at now
func (a Auction) IsEnded(now time.Time) bool {
	return !now.Before(a.EndsAt)
}

// ReserveMet reports whether the current price reaches the reserve.
// Auctions without a reserve always report true.
func (a Auction) ReserveMet() bool {
	if !a.ReservePrice.Valid {
		return true
	}
	return a.CurrentPrice.GreaterThanOrEqual(a.ReservePrice.Decimal)
}

// Bid represents one accepted bid on an auction
type Bid struct {
	ID        int64           `json:"id"`
	AuctionID int64           `json:"auction_id"`
	UserID    int64           `json:"user_id"`
	UserName  string          `json:"user_name"`
	Amount    decimal.Decimal `json:"amount"`
	IsWinning bool            `json:"is_winning"`
	CreatedAt time.Time       `json:"created_at"`
}

package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"tobacco-auction/internal/access"
	"tobacco-auction/internal/countdown"
	"tobacco-auction/internal/models"
)

// AmountInput accepts a bid amount sent either as a JSON string or a JSON number
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("amount must be a number or a numeric string")
		}
		*a = AmountInput(n.String())
		return nil
	}
}

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount AmountInput `json:"amount"`
}

type ListAuctionsQuery struct {
	Search string `form:"search"`
	Type   string `form:"type" binding:"omitempty,oneof=all flue_cured burley dark_fired oriental connecticut other"`
	Sort   string `form:"sort" binding:"omitempty,oneof=newest ending_soon price_asc price_desc most_bids"`
}

type BidResponse struct {
	ID        int64  `json:"id"`
	AuctionID int64  `json:"auction_id"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	Amount    string `json:"amount"`
	IsWinning bool   `json:"is_winning"`
	CreatedAt string `json:"created_at"`
}

type AuctionSummary struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	TobaccoType   models.TobaccoType `json:"tobacco_type"`
	Quantity      string             `json:"quantity"`
	Grade         string             `json:"grade"`
	Seller        models.Seller      `json:"seller"`
	StartingPrice string             `json:"starting_price"`
	CurrentPrice  string             `json:"current_price"`
	BidsCount     int                `json:"bids_count"`
	CreatedAt     string             `json:"created_at"`
	EndsAt        string             `json:"ends_at"`
	Status        countdown.Status   `json:"status"`
	TimeRemaining string             `json:"time_remaining"`
	Actions       []access.Action    `json:"actions"`
}

type AuctionDetail struct {
	AuctionSummary
	RegionGrown       string        `json:"region_grown,omitempty"`
	SeasonGrown       string        `json:"season_grown,omitempty"`
	MinBidIncrement   string        `json:"min_bid_increment"`
	ReservePrice      *string       `json:"reserve_price"`
	ReserveMet        bool          `json:"reserve_met"`
	StartTime         string        `json:"start_time"`
	TIMBCertificate   string        `json:"timb_certificate,omitempty"`
	TIMBCleared       bool          `json:"timb_cleared"`
	Ended             bool          `json:"ended"`
	NextBidSuggestion string        `json:"next_bid_suggestion,omitempty"`
	WinningBid        *BidResponse  `json:"winning_bid,omitempty"`
	Bids              []BidResponse `json:"bids"`
}

type PlaceBidResponse struct {
	Auction           AuctionSummary `json:"auction"`
	Bid               BidResponse    `json:"bid"`
	NextBidSuggestion string         `json:"next_bid_suggestion"`
}

type CurrentUserResponse struct {
	ID           int64               `json:"id"`
	DisplayName  string              `json:"display_name"`
	Role         models.Role         `json:"role"`
	Capabilities []access.Capability `json:"capabilities"`
	Navigation   []access.NavItem    `json:"navigation"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NewBidResponse renders a bid with its amount to 2 decimals
func NewBidResponse(b models.Bid) BidResponse {
	return BidResponse{
		ID:        b.ID,
		AuctionID: b.AuctionID,
		UserID:    b.UserID,
		UserName:  b.UserName,
		Amount:    b.Amount.StringFixed(2),
		IsWinning: b.IsWinning,
		CreatedAt: formatTime(b.CreatedAt),
	}
}

// NewBidResponses renders bids in the given order, never returning nil
func NewBidResponses(bids []models.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, NewBidResponse(b))
	}
	return out
}

// NewAuctionSummary renders a listing card for user at now
func NewAuctionSummary(a models.Auction, user models.User, now time.Time) AuctionSummary {
	label, _ := countdown.TimeRemaining(a.EndsAt, now, countdown.ListView)
	return AuctionSummary{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		TobaccoType:   a.TobaccoType,
		Quantity:      a.Quantity,
		Grade:         a.Grade,
		Seller:        a.Seller,
		StartingPrice: a.StartingPrice.StringFixed(2),
		CurrentPrice:  a.CurrentPrice.StringFixed(2),
		BidsCount:     a.BidsCount,
		CreatedAt:     formatTime(a.CreatedAt),
		EndsAt:        formatTime(a.EndsAt),
		Status:        countdown.StatusAt(a.EndsAt, now),
		TimeRemaining: label,
		Actions:       access.AuctionActions(user, a, now),
	}
}

// NewAuctionDetail renders the auction page, with bids newest first
func NewAuctionDetail(a models.Auction, bids []models.Bid, user models.User, now time.Time, nextBid string) AuctionDetail {
	label, ended := countdown.TimeRemaining(a.EndsAt, now, countdown.DetailView)

	detail := AuctionDetail{
		AuctionSummary:  NewAuctionSummary(a, user, now),
		RegionGrown:     a.RegionGrown,
		SeasonGrown:     a.SeasonGrown,
		MinBidIncrement: a.MinBidIncrement.StringFixed(2),
		ReserveMet:      a.ReserveMet(),
		StartTime:       formatTime(a.StartTime),
		TIMBCertificate: a.TIMBCertificate,
		TIMBCleared:     a.TIMBCleared,
		Ended:           ended,
		Bids:            NewBidResponses(bids),
	}
	detail.TimeRemaining = label
	if a.ReservePrice.Valid {
		reserve := a.ReservePrice.Decimal.StringFixed(2)
		detail.ReservePrice = &reserve
	}
	if !ended {
		detail.NextBidSuggestion = nextBid
	}
	if ended {
		for _, b := range bids {
			if b.IsWinning {
				winner := NewBidResponse(b)
				detail.WinningBid = &winner
				break
			}
		}
	}
	return detail
}

// NewCurrentUserResponse renders the caller identity with its capability set
func NewCurrentUserResponse(u models.User) CurrentUserResponse {
	return CurrentUserResponse{
		ID:           u.ID,
		DisplayName:  u.DisplayName,
		Role:         u.Role,
		Capabilities: access.Capabilities(u.Role).List(),
		Navigation:   access.NavItems(u.Role),
	}
}

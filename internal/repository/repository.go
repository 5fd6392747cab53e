package repository

import (
	"fmt"
	"sync"

	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// MutateFunc receives copies of an auction and its bids (newest first) and
// returns the state to store. A non-nil error discards the change.
type MutateFunc func(auction models.Auction, bids []models.Bid) (models.Auction, []models.Bid, error)

// AuctionDB defines the auction storage interface for the marketplace
type AuctionDB interface {
	ListAuctions() ([]models.Auction, error)
	GetAuction(auctionID int64) (models.Auction, error)
	GetBidsByAuction(auctionID int64) ([]models.Bid, error)
	GetWinningBid(auctionID int64) (models.Bid, error)
	GetAuctionsByBidder(userID int64) ([]models.Auction, error)
	UpdateAuction(auctionID int64, mutate MutateFunc) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu             sync.RWMutex
	order          []int64                  // auction ids in insertion order
	auctions       map[int64]models.Auction // key: auctionID -> value: auction
	bids           map[int64][]models.Bid   // key: auctionID -> value: bids, newest first
	bidderAuctions map[int64][]int64        // key: userID -> value: auctionIDs the user has bid on
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:       make(map[int64]models.Auction),
		bids:           make(map[int64][]models.Bid),
		bidderAuctions: make(map[int64][]int64),
	}
}

// AddAuction stores an auction with its existing bids, newest first.
// Adding an existing id replaces it.
func (r *MemoryRepo) AddAuction(auction models.Auction, bids ...models.Bid) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.ID]; !ok {
		r.order = append(r.order, auction.ID)
	}
	r.auctions[auction.ID] = auction
	r.bids[auction.ID] = append([]models.Bid(nil), bids...)
	for _, b := range bids {
		r.trackBidder(b.UserID, auction.ID)
	}
}

// ListAuctions returns every auction in insertion order
func (r *MemoryRepo) ListAuctions() ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Auction, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.auctions[id])
	}
	return out, nil
}

// GetAuction returns a single auction
func (r *MemoryRepo) GetAuction(auctionID int64) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// GetBidsByAuction returns all bids for an auction, newest first
func (r *MemoryRepo) GetBidsByAuction(auctionID int64) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	bids := r.bids[auctionID]
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, biddingerrors.ErrNoBids)
	}
	return append([]models.Bid(nil), bids...), nil
}

// GetWinningBid returns the bid flagged as winning for an auction
func (r *MemoryRepo) GetWinningBid(auctionID int64) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return models.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	for _, b := range r.bids[auctionID] {
		if b.IsWinning {
			return b, nil
		}
	}
	return models.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, biddingerrors.ErrNoBids)
}

// GetAuctionsByBidder returns all auctions a user has bid on
func (r *MemoryRepo) GetAuctionsByBidder(userID int64) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, ok := r.bidderAuctions[userID]
	if !ok || len(ids) == 0 {
		return nil, fmt.Errorf("get auctions for user %d: %w", userID, biddingerrors.ErrUserNoBids)
	}

	out := make([]models.Auction, 0, len(ids))
	for _, id := range ids {
		if a, exists := r.auctions[id]; exists {
			out = append(out, a)
		}
	}
	return out, nil
}

// UpdateAuction applies mutate to an auction and its bids under the write lock,
// so concurrent updates to the same auction are serialised.
func (r *MemoryRepo) UpdateAuction(auctionID int64, mutate MutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("update auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}

	next, bids, err := mutate(current, append([]models.Bid(nil), r.bids[auctionID]...))
	if err != nil {
		return err
	}
	if next.ID != auctionID {
		return fmt.Errorf("update auction %d: mutate changed id to %d", auctionID, next.ID)
	}

	r.auctions[auctionID] = next
	r.bids[auctionID] = bids
	for _, b := range bids {
		r.trackBidder(b.UserID, auctionID)
	}
	return nil
}

// trackBidder records that userID bid on auctionID. Caller holds the write lock.
func (r *MemoryRepo) trackBidder(userID, auctionID int64) {
	for _, id := range r.bidderAuctions[userID] {
		if id == auctionID {
			return
		}
	}
	r.bidderAuctions[userID] = append(r.bidderAuctions[userID], auctionID)
}

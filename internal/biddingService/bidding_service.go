package bidding

import (
	"fmt"
	"time"

	"tobacco-auction/internal/access"
	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/internal/listing"
	"tobacco-auction/internal/metrics"
	"tobacco-auction/internal/models"
	"tobacco-auction/internal/repository"
)

// BiddingService defines the business logic for auction browsing and bidding
type BiddingService struct {
	repo    repository.AuctionDB
	metrics *metrics.BidMetrics
	now     func() time.Time
}

// NewBiddingService creates a new BiddingService instance. bidMetrics may be nil.
func NewBiddingService(repo repository.AuctionDB, bidMetrics *metrics.BidMetrics) *BiddingService {
	return &BiddingService{
		repo:    repo,
		metrics: bidMetrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ListAuctions returns the auctions matching criteria in display order
func (s *BiddingService) ListAuctions(criteria listing.Criteria) ([]models.Auction, error) {
	all, err := s.repo.ListAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return listing.VisibleAuctions(all, criteria), nil
}

// GetAuction returns a single auction
func (s *BiddingService) GetAuction(auctionID int64) (models.Auction, error) {
	if auctionID <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - invalid auction ID %d", biddingerrors.ErrAuctionNotFound, auctionID)
	}

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %d: %w", auctionID, err)
	}
	return auction, nil
}

// GetBidsForAuction returns the bid history of an auction, newest first
func (s *BiddingService) GetBidsForAuction(auctionID int64) ([]models.Bid, error) {
	if auctionID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid auction ID %d", biddingerrors.ErrAuctionNotFound, auctionID)
	}

	bids, err := s.repo.GetBidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

// GetWinningBid returns the current winning bid of an auction
func (s *BiddingService) GetWinningBid(auctionID int64) (models.Bid, error) {
	if auctionID <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - invalid auction ID %d", biddingerrors.ErrAuctionNotFound, auctionID)
	}

	bid, err := s.repo.GetWinningBid(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %d: %w", auctionID, err)
	}
	return bid, nil
}

// GetAuctionsByBidder returns all auctions a user has bid on
func (s *BiddingService) GetAuctionsByBidder(userID int64) ([]models.Auction, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid user ID %d", biddingerrors.ErrInvalidUserID, userID)
	}

	auctions, err := s.repo.GetAuctionsByBidder(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auctions for user %d: %w", userID, err)
	}
	return auctions, nil
}

// PlaceBid validates and records a bid by bidder. Validation and storage
// happen under the repository's write lock, so a rejected bid never changes
// stored state.
func (s *BiddingService) PlaceBid(auctionID int64, rawAmount string, bidder models.User) (Submission, error) {
	if bidder.ID <= 0 {
		s.metrics.IncRejected(biddingerrors.Code(biddingerrors.ErrUnauthenticated))
		return Submission{}, fmt.Errorf("service: %w - missing bidder", biddingerrors.ErrUnauthenticated)
	}
	if !access.Can(bidder.Role, access.CapPlaceBid) {
		s.metrics.IncRejected(biddingerrors.Code(biddingerrors.ErrForbidden))
		return Submission{}, fmt.Errorf("service: %w - role %s cannot place bids", biddingerrors.ErrForbidden, bidder.Role)
	}

	now := s.now()
	var result Submission
	err := s.repo.UpdateAuction(auctionID, func(auction models.Auction, bids []models.Bid) (models.Auction, []models.Bid, error) {
		sub, err := SubmitBid(auction, bids, rawAmount, bidder, now)
		if err != nil {
			return auction, bids, err
		}
		result = sub
		return sub.Auction, sub.Bids, nil
	})
	if err != nil {
		s.metrics.IncRejected(rejectReason(err))
		return Submission{}, fmt.Errorf("service: failed to place bid on auction %d by user %d: %w", auctionID, bidder.ID, err)
	}

	s.metrics.IncAccepted()
	return result, nil
}

func rejectReason(err error) string {
	if code := biddingerrors.Code(err); code != "" {
		return code
	}
	return "error"
}

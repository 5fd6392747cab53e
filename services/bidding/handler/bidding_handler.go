package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"tobacco-auction/internal/access"
	bidding "tobacco-auction/internal/biddingService"
	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/internal/listing"
	"tobacco-auction/internal/models"
	"tobacco-auction/services/bidding/helpers"
	"tobacco-auction/utils"

	"github.com/gin-gonic/gin"
)

type BiddingServiceInterface interface {
	ListAuctions(criteria listing.Criteria) ([]models.Auction, error)
	GetAuction(auctionID int64) (models.Auction, error)
	GetBidsForAuction(auctionID int64) ([]models.Bid, error)
	GetWinningBid(auctionID int64) (models.Bid, error)
	GetAuctionsByBidder(userID int64) ([]models.Auction, error)
	PlaceBid(auctionID int64, rawAmount string, bidder models.User) (bidding.Submission, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
	now     func() time.Time
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{
		service: service,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func requireUser(c *gin.Context, handlerName string) (models.User, bool) {
	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, biddingerrors.ErrUnauthenticated, "authentication required")
		utils.Warn(handlerName+": no authenticated user", nil)
		return models.User{}, false
	}
	return user, true
}

func auctionIDParam(c *gin.Context, handlerName string) (int64, bool) {
	id, err := helpers.ParseIDParam(c, "auction_id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		utils.Warn(handlerName+": invalid auction id", map[string]any{"error": err.Error()})
		return 0, false
	}
	return id, true
}

func writeServiceError(c *gin.Context, handlerName, logMsg string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	wrapped := fmt.Errorf("%s: %w", message, err)
	if code := biddingerrors.Code(err); code != "" {
		utils.JSONErrorWithCode(c, status, wrapped, message, code, biddingerrors.IsCorrectable(err))
	} else {
		utils.JSONError(c, status, wrapped, message)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+logMsg, fields)
		return
	}
	utils.Warn(handlerName+": "+logMsg, fields)
}

// CurrentUserHandler handles GET /me
func (h *BiddingHandler) CurrentUserHandler(c *gin.Context) {
	user, ok := requireUser(c, "CurrentUserHandler")
	if !ok {
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewCurrentUserResponse(user), "current user retrieved successfully")
	helpers.LogSuccess("CurrentUserHandler", "current user retrieved successfully", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *BiddingHandler) ListAuctionsHandler(c *gin.Context) {
	user, ok := requireUser(c, "ListAuctionsHandler")
	if !ok {
		return
	}

	var query helpers.ListAuctionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}

	criteria := listing.Criteria{Search: query.Search, Type: query.Type, Sort: listing.SortKey(query.Sort)}
	auctions, err := h.service.ListAuctions(criteria)
	if err != nil {
		writeServiceError(c, "ListAuctionsHandler", "failed to list auctions", err, nil)
		return
	}

	now := h.now()
	cards := make([]helpers.AuctionSummary, 0, len(auctions))
	for _, a := range auctions {
		cards = append(cards, helpers.NewAuctionSummary(a, user, now))
	}

	utils.JSONResponse(c, http.StatusOK, cards, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"search": query.Search,
		"type":   query.Type,
		"sort":   query.Sort,
		"count":  len(cards),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	user, ok := requireUser(c, "GetAuctionHandler")
	if !ok {
		return
	}
	auctionID, ok := auctionIDParam(c, "GetAuctionHandler")
	if !ok {
		return
	}

	auction, err := h.service.GetAuction(auctionID)
	if err != nil {
		writeServiceError(c, "GetAuctionHandler", "error retrieving auction", err, map[string]any{"auction_id": auctionID})
		return
	}

	bids, err := h.service.GetBidsForAuction(auctionID)
	if err != nil && !errors.Is(err, biddingerrors.ErrNoBids) {
		writeServiceError(c, "GetAuctionHandler", "error retrieving bids", err, map[string]any{"auction_id": auctionID})
		return
	}

	detail := helpers.NewAuctionDetail(auction, bids, user, h.now(), bidding.SuggestNextBid(auction))
	utils.JSONResponse(c, http.StatusOK, detail, "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"bids_count": len(bids),
		"ended":      detail.Ended,
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *BiddingHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID, ok := auctionIDParam(c, "GetBidsByAuctionHandler")
	if !ok {
		return
	}

	bids, err := h.service.GetBidsForAuction(auctionID)
	if err != nil && !errors.Is(err, biddingerrors.ErrNoBids) {
		writeServiceError(c, "GetBidsByAuctionHandler", "error retrieving bids", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// GetWinningBidHandler handles GET /auctions/:auction_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	auctionID, ok := auctionIDParam(c, "GetWinningBidHandler")
	if !ok {
		return
	}

	bid, err := h.service.GetWinningBid(auctionID)
	if err != nil {
		// For auction, winning bid not found -> 404
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"auction_id": auctionID})
			return
		}
		writeServiceError(c, "GetWinningBidHandler", "winning bid error", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"user_id":    bid.UserID,
		"amount":     bid.Amount.StringFixed(2),
	})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	user, ok := requireUser(c, "PlaceBidHandler")
	if !ok {
		return
	}
	auctionID, ok := auctionIDParam(c, "PlaceBidHandler")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	sub, err := h.service.PlaceBid(auctionID, string(req.Amount), user)
	if err != nil {
		if biddingerrors.Code(err) != "" {
			helpers.HandleBidError(c, "PlaceBidHandler", err)
			return
		}
		writeServiceError(c, "PlaceBidHandler", "failed to place bid", err, map[string]any{
			"auction_id": auctionID,
			"user_id":    user.ID,
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		Auction:           helpers.NewAuctionSummary(sub.Auction, user, h.now()),
		Bid:               helpers.NewBidResponse(sub.Bid),
		NextBidSuggestion: sub.NextBidSuggestion,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     sub.Bid.ID,
		"auction_id": auctionID,
		"user_id":    user.ID,
		"amount":     sub.Bid.Amount.StringFixed(2),
	})
}

// GetAuctionsByBidderHandler handles GET /users/:user_id/auctions
func (h *BiddingHandler) GetAuctionsByBidderHandler(c *gin.Context) {
	user, ok := requireUser(c, "GetAuctionsByBidderHandler")
	if !ok {
		return
	}

	userID, err := helpers.ParseIDParam(c, "user_id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid user id")
		utils.Warn("GetAuctionsByBidderHandler: invalid user id", map[string]any{"error": err.Error()})
		return
	}

	if userID != user.ID && !access.Can(user.Role, access.CapManageUsers) {
		utils.JSONError(c, http.StatusForbidden, biddingerrors.ErrForbidden, "not allowed for this role")
		utils.Warn("GetAuctionsByBidderHandler: forbidden", map[string]any{"user_id": userID, "caller_id": user.ID})
		return
	}

	auctions, err := h.service.GetAuctionsByBidder(userID)
	if err != nil && !errors.Is(err, biddingerrors.ErrUserNoBids) {
		writeServiceError(c, "GetAuctionsByBidderHandler", "error retrieving auctions", err, map[string]any{"user_id": userID})
		return
	}

	now := h.now()
	cards := make([]helpers.AuctionSummary, 0, len(auctions))
	for _, a := range auctions {
		cards = append(cards, helpers.NewAuctionSummary(a, user, now))
	}

	utils.JSONResponse(c, http.StatusOK, cards, "auctions retrieved successfully")
	helpers.LogSuccess("GetAuctionsByBidderHandler", "auctions retrieved successfully", map[string]any{
		"user_id":        userID,
		"auctions_count": len(cards),
	})
}

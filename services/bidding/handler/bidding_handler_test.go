package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tobacco-auction/internal/access"
	bidding "tobacco-auction/internal/biddingService"
	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/internal/countdown"
	"tobacco-auction/internal/fixtures"
	"tobacco-auction/internal/listing"
	"tobacco-auction/internal/models"
	"tobacco-auction/services/bidding/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var (
	testNow = fixtures.Epoch
	buyer   = models.User{ID: 5, DisplayName: "Global Tobacco Inc.", Role: models.RoleBuyer}
	trader  = models.User{ID: 2, DisplayName: "Virginia Farms Ltd", Role: models.RoleTrader}
	officer = models.User{ID: 30, DisplayName: "TIMB Inspector", Role: models.RoleTIMBOfficer}
	admin   = models.User{ID: 1, DisplayName: "Admin", Role: models.RoleAdmin}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter registers every handler behind a middleware that injects user.
// A nil user leaves the request unauthenticated.
func newTestRouter(h *BiddingHandler, user *models.User) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			helpers.SetCurrentUser(c, *user)
		}
		c.Next()
	})
	router.GET("/me", h.CurrentUserHandler)
	router.GET("/auctions", h.ListAuctionsHandler)
	router.GET("/auctions/:auction_id", h.GetAuctionHandler)
	router.GET("/auctions/:auction_id/bids", h.GetBidsByAuctionHandler)
	router.GET("/auctions/:auction_id/winning", h.GetWinningBidHandler)
	router.POST("/auctions/:auction_id/bids", h.PlaceBidHandler)
	router.GET("/users/:user_id/auctions", h.GetAuctionsByBidderHandler)
	return router
}

func newTestHandler(t *testing.T) (*BiddingHandler, *MockBiddingServiceInterface) {
	ctrl := gomock.NewController(t)
	mockService := NewMockBiddingServiceInterface(ctrl)
	h := NewBiddingHandler(mockService)
	h.now = func() time.Time { return testNow }
	return h, mockService
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func lot(id int64) fixtures.Lot {
	return fixtures.Lots(testNow)[id-1]
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	flueCured := lot(1)
	accepted, err := bidding.SubmitBid(flueCured.Auction, flueCured.Bids, "355", buyer, testNow)
	require.NoError(t, err)

	tests := []struct {
		name           string
		user           *models.User
		path           string
		requestBody    string
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		expectedCode   string
		expectedError  string
		correctable    *bool
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_string_amount",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":"355"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "355", buyer).Return(accepted, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bid := data["bid"].(map[string]any)
				require.Equal(t, float64(9), bid["id"])
				require.Equal(t, "355.00", bid["amount"])
				require.Equal(t, true, bid["is_winning"])
				require.Equal(t, "Global Tobacco Inc.", bid["user_name"])

				auction := data["auction"].(map[string]any)
				require.Equal(t, "355.00", auction["current_price"])
				require.Equal(t, float64(9), auction["bids_count"])
				require.Equal(t, "360.00", data["next_bid_suggestion"])
			},
		},
		{
			name:        "success_numeric_amount",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":355.50}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "355.50", buyer).Return(accepted, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
		},
		{
			name:           "invalid_json",
			user:           &buyer,
			path:           "/auctions/1/bids",
			requestBody:    `{invalid json}`,
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "amount_wrong_json_type",
			user:           &buyer,
			path:           "/auctions/1/bids",
			requestBody:    `{"amount":true}`,
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "invalid_auction_id",
			user:           &buyer,
			path:           "/auctions/abc/bids",
			requestBody:    `{"amount":"355"}`,
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid auction id",
		},
		{
			name:           "unauthenticated",
			user:           nil,
			path:           "/auctions/1/bids",
			requestBody:    `{"amount":"355"}`,
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "authentication required",
		},
		{
			name:        "empty_amount",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":""}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "", buyer).
					Return(bidding.Submission{}, fmt.Errorf("service: failed to place bid: %w",
						biddingerrors.NewBidError(biddingerrors.ErrInvalidAmount, "bid amount is required")))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid bid amount",
			expectedCode:   "invalid_amount",
			expectedError:  "bid amount is required",
			correctable:    ptr(true),
		},
		{
			name:        "exponent_amount",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":"1e900000000"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "1e900000000", buyer).
					DoAndReturn(func(_ int64, raw string, bidder models.User) (bidding.Submission, error) {
						return bidding.SubmitBid(flueCured.Auction, flueCured.Bids, raw, bidder, testNow)
					})
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid bid amount",
			expectedCode:   "invalid_amount",
			expectedError:  `bid amount "1e900000000" is not a number`,
			correctable:    ptr(true),
		},
		{
			name:        "numeric_exponent_amount",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":3.55e2}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "3.55e2", buyer).
					DoAndReturn(func(_ int64, raw string, bidder models.User) (bidding.Submission, error) {
						return bidding.SubmitBid(flueCured.Auction, flueCured.Bids, raw, bidder, testNow)
					})
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid bid amount",
			expectedCode:   "invalid_amount",
			correctable:    ptr(true),
		},
		{
			name:        "below_current_price",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":"340"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "340", buyer).
					Return(bidding.Submission{}, fmt.Errorf("service: failed to place bid: %w",
						biddingerrors.NewBidError(biddingerrors.ErrBelowCurrentPrice, "bid must be greater than current price of $350.00")))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid below current price",
			expectedCode:   "below_current_price",
			expectedError:  "bid must be greater than current price of $350.00",
			correctable:    ptr(true),
		},
		{
			name:        "below_min_increment",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":"352"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "352", buyer).
					Return(bidding.Submission{}, fmt.Errorf("service: failed to place bid: %w",
						biddingerrors.NewBidError(biddingerrors.ErrBelowMinIncrement, "minimum bid increment is $5.00")))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid below minimum increment",
			expectedCode:   "below_min_increment",
			expectedError:  "minimum bid increment is $5.00",
			correctable:    ptr(true),
		},
		{
			name:        "auction_ended",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":"400"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "400", buyer).
					Return(bidding.Submission{}, fmt.Errorf("service: failed to place bid: %w",
						biddingerrors.NewBidError(biddingerrors.ErrAuctionEnded, "auction has ended")))
			},
			expectedStatus: http.StatusGone,
			expectedMsg:    "auction has ended",
			expectedCode:   "auction_ended",
			expectedError:  "auction has ended",
			correctable:    ptr(false),
		},
		{
			name:        "forbidden_role",
			user:        &trader,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":"400"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "400", trader).
					Return(bidding.Submission{}, fmt.Errorf("service: %w - role trader cannot bid", biddingerrors.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "not allowed for this role",
			expectedCode:   "forbidden",
		},
		{
			name:        "auction_not_found",
			user:        &buyer,
			path:        "/auctions/99/bids",
			requestBody: `{"amount":"400"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(99), "400", buyer).
					Return(bidding.Submission{}, fmt.Errorf("service: failed to place bid: %w", biddingerrors.ErrAuctionNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
			expectedCode:   "auction_not_found",
		},
		{
			name:        "service_generic_error",
			user:        &buyer,
			path:        "/auctions/1/bids",
			requestBody: `{"amount":"400"}`,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(int64(1), "400", buyer).
					Return(bidding.Submission{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, mockService := newTestHandler(t)
			tc.mockSetup(mockService)
			router := newTestRouter(h, tc.user)

			req := httptest.NewRequest(http.MethodPost, tc.path, bytes.NewReader([]byte(tc.requestBody)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			resp := decode(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.expectedCode != "" {
				require.Equal(t, tc.expectedCode, resp["error_code"])
			}
			if tc.expectedError != "" {
				require.Equal(t, tc.expectedError, resp["error"])
			}
			if tc.correctable != nil {
				require.Equal(t, *tc.correctable, resp["correctable"])
			}
			if tc.validateData != nil && w.Code == http.StatusCreated {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

// Test ListAuctionsHandler
func TestListAuctionsHandler(t *testing.T) {
	all := fixtures.Auctions(testNow)

	tests := []struct {
		name           string
		query          string
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		expectedIDs    []float64
	}{
		{
			name:  "default_criteria",
			query: "",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().ListAuctions(listing.Criteria{}).Return(listing.VisibleAuctions(all, listing.Criteria{}), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auctions retrieved successfully",
			expectedIDs:    []float64{6, 2, 1, 4, 3, 5},
		},
		{
			name:  "search_type_and_sort",
			query: "?search=oriental&type=oriental&sort=price_desc",
			mockSetup: func(m *MockBiddingServiceInterface) {
				c := listing.Criteria{Search: "oriental", Type: "oriental", Sort: listing.SortPriceDesc}
				m.EXPECT().ListAuctions(c).Return(listing.VisibleAuctions(all, c), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auctions retrieved successfully",
			expectedIDs:    []float64{4, 6},
		},
		{
			name:  "no_matches",
			query: "?search=zzz",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().ListAuctions(listing.Criteria{Search: "zzz"}).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auctions retrieved successfully",
			expectedIDs:    []float64{},
		},
		{
			name:           "unknown_sort",
			query:          "?sort=cheapest",
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "unknown_type",
			query:          "?type=cavendish",
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:  "service_generic_error",
			query: "",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().ListAuctions(listing.Criteria{}).Return(nil, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, mockService := newTestHandler(t)
			tc.mockSetup(mockService)
			router := newTestRouter(h, &buyer)

			req := httptest.NewRequest(http.MethodGet, "/auctions"+tc.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decode(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.expectedIDs == nil {
				return
			}
			data := resp["data"].([]any)
			ids := make([]float64, 0, len(data))
			for _, raw := range data {
				card := raw.(map[string]any)
				ids = append(ids, card["id"].(float64))
				require.Equal(t, string(countdown.StatusActive), card["status"])
				require.Contains(t, card["actions"], string(access.ActionPlaceBid))
			}
			require.Equal(t, tc.expectedIDs, ids)
		})
	}
}

// Test GetAuctionHandler
func TestGetAuctionHandler(t *testing.T) {
	flueCured := lot(1)
	ended := flueCured
	ended.Auction.EndsAt = testNow.Add(-time.Minute)

	tests := []struct {
		name           string
		user           models.User
		path           string
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name: "open_auction_for_buyer",
			user: buyer,
			path: "/auctions/1",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuction(int64(1)).Return(flueCured.Auction, nil)
				m.EXPECT().GetBidsForAuction(int64(1)).Return(flueCured.Bids, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction retrieved successfully",
			validateData: func(t *testing.T, data map[string]any) {
				label, _ := countdown.TimeRemaining(flueCured.Auction.EndsAt, testNow, countdown.DetailView)
				require.Equal(t, label, data["time_remaining"])
				require.Equal(t, false, data["ended"])
				require.Equal(t, "355.00", data["next_bid_suggestion"])
				require.Equal(t, "400.00", data["reserve_price"])
				require.Equal(t, false, data["reserve_met"])
				require.Equal(t, "5.00", data["min_bid_increment"])
				require.Len(t, data["bids"], 8)
				require.Nil(t, data["winning_bid"])
				require.Equal(t, []any{"view_details", "place_bid"}, data["actions"])
			},
		},
		{
			name: "own_auction_for_trader",
			user: trader,
			path: "/auctions/1",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuction(int64(1)).Return(flueCured.Auction, nil)
				m.EXPECT().GetBidsForAuction(int64(1)).Return(flueCured.Bids, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction retrieved successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, []any{"view_details", "manage"}, data["actions"])
			},
		},
		{
			name: "ended_auction_shows_winner",
			user: officer,
			path: "/auctions/1",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuction(int64(1)).Return(ended.Auction, nil)
				m.EXPECT().GetBidsForAuction(int64(1)).Return(ended.Bids, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction retrieved successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, countdown.AuctionEndedLabel, data["time_remaining"])
				require.Equal(t, true, data["ended"])
				require.Equal(t, string(countdown.StatusEnded), data["status"])
				require.NotContains(t, data, "next_bid_suggestion")
				winner := data["winning_bid"].(map[string]any)
				require.Equal(t, "350.00", winner["amount"])
				require.Equal(t, []any{"view_details", "review"}, data["actions"])
			},
		},
		{
			name: "no_bids",
			user: buyer,
			path: "/auctions/2",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuction(int64(2)).Return(lot(2).Auction, nil)
				m.EXPECT().GetBidsForAuction(int64(2)).Return(nil, biddingerrors.ErrNoBids)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction retrieved successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, []any{}, data["bids"])
				require.Nil(t, data["reserve_price"])
				require.Equal(t, true, data["reserve_met"])
			},
		},
		{
			name: "auction_not_found",
			user: buyer,
			path: "/auctions/99",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuction(int64(99)).Return(models.Auction{}, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name:           "invalid_id",
			user:           buyer,
			path:           "/auctions/0",
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid auction id",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, mockService := newTestHandler(t)
			tc.mockSetup(mockService)
			router := newTestRouter(h, &tc.user)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decode(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.validateData != nil && w.Code == http.StatusOK {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

// Test GetBidsByAuctionHandler
func TestGetBidsByAuctionHandler(t *testing.T) {
	flueCured := lot(1)

	tests := []struct {
		name           string
		auctionID      int64
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		expectedLen    int
	}{
		{
			name:      "success_multiple_bids",
			auctionID: 1,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBidsForAuction(int64(1)).Return(flueCured.Bids, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			expectedLen:    8,
		},
		{
			name:      "service_no_bids_error",
			auctionID: 3,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBidsForAuction(int64(3)).Return(nil, biddingerrors.ErrNoBids)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			expectedLen:    0,
		},
		{
			name:      "auction_not_found",
			auctionID: 99,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBidsForAuction(int64(99)).Return(nil, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name:      "service_generic_error",
			auctionID: 4,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBidsForAuction(int64(4)).Return(nil, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, mockService := newTestHandler(t)
			tc.mockSetup(mockService)
			router := newTestRouter(h, &buyer)

			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/auctions/%d/bids", tc.auctionID), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decode(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if w.Code == http.StatusOK {
				data := resp["data"].([]any)
				require.Len(t, data, tc.expectedLen)
				if tc.expectedLen > 0 {
					first := data[0].(map[string]any)
					require.Equal(t, "350.00", first["amount"])
					require.Equal(t, true, first["is_winning"])
				}
			}
		})
	}
}

// Test GetWinningBidHandler
func TestGetWinningBidHandler(t *testing.T) {
	winner := lot(1).Bids[0]

	tests := []struct {
		name           string
		auctionID      int64
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:      "success",
			auctionID: 1,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetWinningBid(int64(1)).Return(winner, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "winning bid retrieved successfully",
		},
		{
			name:      "no_winning_bid",
			auctionID: 2,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetWinningBid(int64(2)).Return(models.Bid{}, biddingerrors.ErrNoBids)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "no winning bid found",
		},
		{
			name:      "auction_not_found",
			auctionID: 99,
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetWinningBid(int64(99)).Return(models.Bid{}, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, mockService := newTestHandler(t)
			tc.mockSetup(mockService)
			router := newTestRouter(h, &buyer)

			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/auctions/%d/winning", tc.auctionID), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decode(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if w.Code == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, float64(winner.ID), data["id"])
				require.Equal(t, "350.00", data["amount"])
			}
		})
	}
}

// Test GetAuctionsByBidderHandler
func TestGetAuctionsByBidderHandler(t *testing.T) {
	auctions := fixtures.Auctions(testNow)[:2]

	tests := []struct {
		name           string
		user           models.User
		userID         string
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		expectedLen    int
	}{
		{
			name:   "own_auctions",
			user:   buyer,
			userID: "5",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuctionsByBidder(int64(5)).Return(auctions, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auctions retrieved successfully",
			expectedLen:    2,
		},
		{
			name:   "admin_reads_other_user",
			user:   admin,
			userID: "5",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuctionsByBidder(int64(5)).Return(auctions, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auctions retrieved successfully",
			expectedLen:    2,
		},
		{
			name:   "user_without_bids",
			user:   buyer,
			userID: "5",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuctionsByBidder(int64(5)).Return(nil, biddingerrors.ErrUserNoBids)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auctions retrieved successfully",
			expectedLen:    0,
		},
		{
			name:   "service_rejects_user_id",
			user:   admin,
			userID: "5",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetAuctionsByBidder(int64(5)).
					Return(nil, fmt.Errorf("service: %w - invalid user ID %d", biddingerrors.ErrInvalidUserID, 5))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid user id",
		},
		{
			name:           "other_user_forbidden",
			user:           buyer,
			userID:         "8",
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "not allowed for this role",
		},
		{
			name:           "invalid_user_id",
			user:           buyer,
			userID:         "me",
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid user id",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, mockService := newTestHandler(t)
			tc.mockSetup(mockService)
			router := newTestRouter(h, &tc.user)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tc.userID+"/auctions", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decode(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if w.Code == http.StatusOK {
				require.Len(t, resp["data"], tc.expectedLen)
			}
		})
	}
}

// Test CurrentUserHandler
func TestCurrentUserHandler(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	newTestRouter(h, &officer).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "timb_officer", data["role"])
	require.ElementsMatch(t, []any{"view_auctions", "review_auction", "pending_clearance", "view_reports"}, data["capabilities"])
	require.Len(t, data["navigation"], 4)

	w = httptest.NewRecorder()
	newTestRouter(h, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

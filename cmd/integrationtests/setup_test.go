package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"tobacco-auction/internal/auth"
	bidding "tobacco-auction/internal/biddingService"
	"tobacco-auction/internal/config"
	"tobacco-auction/internal/fixtures"
	"tobacco-auction/internal/models"
	"tobacco-auction/internal/repository"
	"tobacco-auction/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var testJWT = config.JWTConfig{Secret: "integration-secret", Issuer: "tobacco-auction", ExpirationMinutes: 10}

var (
	Buyer       = models.User{ID: 5, DisplayName: "Global Tobacco Inc.", Role: models.RoleBuyer}
	OtherBuyer  = models.User{ID: 8, DisplayName: "Premier Leaf Buyers", Role: models.RoleBuyer}
	Seller      = models.User{ID: 2, DisplayName: "Virginia Farms Ltd", Role: models.RoleTrader}
	TIMBOfficer = models.User{ID: 30, DisplayName: "TIMB Inspector", Role: models.RoleTIMBOfficer}
	Admin       = models.User{ID: 1, DisplayName: "Admin", Role: models.RoleAdmin}
)

// SetupTestRouter initializes the router over the demo auctions rebased to now.
func SetupTestRouter() *gin.Engine {
	return SetupTestRouterWithLots(fixtures.Lots(time.Now().UTC())...)
}

// SetupTestRouterWithLots initializes the router and seeds the repo with lots.
func SetupTestRouterWithLots(lots ...fixtures.Lot) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()

	for _, lot := range lots {
		repo.AddAuction(lot.Auction, lot.Bids...)
	}

	service := bidding.NewBiddingService(repo, nil)
	router := server.SetupRouter(service, testJWT, prometheus.NewRegistry())
	return router
}

// Token mints a bearer token for user.
func Token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWT, time.Now(), user)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

// ExecuteRequestAndParse executes an HTTP request as user on the given router and parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, user *models.User, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+Token(t, *user))
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// Lot returns a single demo auction rebased to now, optionally modified.
func Lot(id int64, modify func(*fixtures.Lot)) fixtures.Lot {
	lot := fixtures.Lots(time.Now().UTC())[id-1]
	if modify != nil {
		modify(&lot)
	}
	return lot
}

package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/internal/models"
	"tobacco-auction/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// ErrInvalidID is returned when a path id is not a positive integer
var ErrInvalidID = errors.New("invalid id")

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// ParseIDParam reads a positive integer path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidID, name, raw)
	}
	return id, nil
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, biddingerrors.ErrBelowCurrentPrice):
		return http.StatusConflict, "bid below current price"
	case errors.Is(err, biddingerrors.ErrBelowMinIncrement):
		return http.StatusConflict, "bid below minimum increment"
	case errors.Is(err, biddingerrors.ErrAuctionEnded):
		return http.StatusGone, "auction has ended"
	case errors.Is(err, biddingerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, biddingerrors.ErrForbidden):
		return http.StatusForbidden, "not allowed for this role"
	case errors.Is(err, biddingerrors.ErrInvalidUserID):
		return http.StatusBadRequest, "invalid user id"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusOK, "no bids found for auction"
	case errors.Is(err, biddingerrors.ErrUserNoBids):
		return http.StatusOK, "no auctions found for user"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// UserMessage returns the message a bidder should see for err
func UserMessage(err error) string {
	var bidErr *biddingerrors.BidError
	if errors.As(err, &bidErr) {
		return bidErr.Message
	}
	return err.Error()
}

// HandleBidError sends a rejected bid back with its code and whether it can be corrected
func HandleBidError(c *gin.Context, handlerName string, err error) {
	status, msg := MapErrorToHTTP(err)
	code := biddingerrors.Code(err)
	if code == "" {
		utils.JSONError(c, status, err, msg)
	} else {
		utils.JSONErrorWithCode(c, status, errors.New(UserMessage(err)), msg, code, biddingerrors.IsCorrectable(err))
	}
	utils.Warn(handlerName+": bid rejected", map[string]any{"error": err.Error(), "code": code})
}

// SetCurrentUser stores the authenticated caller on the request context
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated caller, if any
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

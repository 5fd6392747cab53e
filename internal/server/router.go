package server

import (
	"net/http"

	bidding "tobacco-auction/internal/biddingService"
	"tobacco-auction/internal/config"
	"tobacco-auction/internal/metrics"
	handler "tobacco-auction/services/bidding/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all Gin routes for the application.
// A nil registry disables /metrics and request counting. Routers built on
// the same registry share its collectors.
func SetupRouter(biddingService *bidding.BiddingService, jwtCfg config.JWTConfig, reg *prometheus.Registry) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // tag every request
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if reg != nil {
		router.Use(MetricsMiddleware(metrics.NewHTTPMetrics(reg)))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	biddingHandler := handler.NewBiddingHandler(biddingService)

	api := router.Group("", AuthMiddleware(jwtCfg))
	{
		api.GET("/me", biddingHandler.CurrentUserHandler)
	}

	auctions := api.Group("/auctions")
	{
		auctions.GET("", biddingHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", biddingHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.POST("/:auction_id/bids", biddingHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/winning", biddingHandler.GetWinningBidHandler)
	}

	users := api.Group("/users")
	{
		users.GET("/:user_id/auctions", biddingHandler.GetAuctionsByBidderHandler)
	}

	return router
}

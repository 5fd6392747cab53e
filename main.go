package main

import (
	"fmt"
	"os"
	"time"

	bidding "tobacco-auction/internal/biddingService"
	"tobacco-auction/internal/config"
	"tobacco-auction/internal/fixtures"
	"tobacco-auction/internal/metrics"
	"tobacco-auction/internal/repository"
	"tobacco-auction/internal/server"
	"tobacco-auction/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := utils.SetLevel(cfg.App.LogLevel); err != nil {
		utils.Warn("invalid log level, keeping default", map[string]any{"level": cfg.App.LogLevel})
	}
	if !cfg.App.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo := repository.NewMemoryRepo()

	if cfg.Fixtures.Seed {
		prepopulateAuctions(repo)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	biddingSvc := bidding.NewBiddingService(repo, metrics.NewBidMetrics(reg))

	router := server.SetupRouter(biddingSvc, cfg.JWT, reg)

	addr := cfg.App.Addr()
	utils.Info("starting auction server", map[string]any{"addr": addr, "env": cfg.App.Env})
	if err := router.Run(addr); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}

// prepopulateAuctions adds the demo auctions, rebased to now, to the in-memory repo
func prepopulateAuctions(repo *repository.MemoryRepo) {
	lots := fixtures.Lots(time.Now().UTC())
	for _, lot := range lots {
		repo.AddAuction(lot.Auction, lot.Bids...)
		utils.Debug("seeded auction", map[string]any{
			"auction_id": lot.Auction.ID,
			"bids":       len(lot.Bids),
			"ends_at":    lot.Auction.EndsAt,
		})
	}
	utils.Info("seeded demo auctions", map[string]any{"count": len(lots)})
}

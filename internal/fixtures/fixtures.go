// Package fixtures holds the demo marketplace data seeded at startup.
//
// Timestamps are written against a fixed epoch and shifted so that the epoch
// lands on the caller's now, which keeps the demo auctions open.
package fixtures

import (
	"time"

	"tobacco-auction/internal/models"

	"github.com/shopspring/decimal"
)

// Epoch is the instant the fixture timestamps are written against.
var Epoch = time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

// Lot is one seeded auction with its bid history, newest bid first.
type Lot struct {
	Auction models.Auction
	Bids    []models.Bid
}

type bidder struct {
	id   int64
	name string
}

var bidders = []bidder{
	{5, "Global Tobacco Inc."},
	{8, "Premier Leaf Buyers"},
	{12, "EastWest Trading Co."},
	{19, "Leaf Processors Ltd."},
}

// Lots returns the six demo auctions rebased so that Epoch maps to now.
func Lots(now time.Time) []Lot {
	shift := now.Sub(Epoch)

	lots := []Lot{
		{Auction: flueCured(), Bids: flueCuredBids()},
		{Auction: auction(2, "Organic Burley Tobacco Batch #FB284",
			"Certified organic burley tobacco, grown without pesticides. Medium nicotine content.",
			models.TobaccoBurley, "320kg", "A", models.Seller{ID: 3, Name: "Organic Leaf Co"},
			"200.00", "280.50", 5, ts("2025-03-11T10:30:00"), ts("2025-03-16T14:30:00"))},
		{Auction: auction(3, "Dark Fired Kentucky Tobacco",
			"Traditional dark-fired tobacco with strong smoky flavor, ideal for pipe blends and snuff.",
			models.TobaccoDarkFired, "275kg", "Premium", models.Seller{ID: 4, Name: "Kentucky Leaf Holdings"},
			"350.00", "420.75", 12, ts("2025-03-09T16:45:00"), ts("2025-03-14T09:45:00"))},
		{Auction: auction(4, "Premium Oriental Tobacco",
			"Aromatic oriental tobacco with unique spicy notes, perfect for specialty cigarette blends.",
			models.TobaccoOriental, "180kg", "A+", models.Seller{ID: 6, Name: "Anatolia Tobacco Traders"},
			"300.00", "385.25", 7, ts("2025-03-10T09:15:00"), ts("2025-03-14T21:15:00"))},
		{Auction: auction(5, "Shade-Grown Connecticut Wrapper Leaf",
			"Fine, silky wrapper leaves grown under shade. Excellent elasticity and neutral flavor.",
			models.TobaccoConnecticut, "150kg", "Premium", models.Seller{ID: 7, Name: "Connecticut Valley Farms"},
			"450.00", "520.00", 9, ts("2025-03-08T12:00:00"), ts("2025-03-18T12:00:00"))},
		{Auction: auction(6, "Organic Sun-Cured Oriental Blend",
			"Naturally sun-cured oriental varieties, offering a mild and aromatic smoke.",
			models.TobaccoOriental, "220kg", "B+", models.Seller{ID: 9, Name: "Sun Leaf Organics"},
			"250.00", "310.25", 4, ts("2025-03-12T11:30:00"), ts("2025-03-17T15:00:00"))},
	}

	for i := range lots {
		if lots[i].Bids == nil {
			lots[i].Bids = ladder(lots[i].Auction)
		}
		lots[i] = rebase(lots[i], shift)
	}
	return lots
}

// Auctions returns only the auction records of Lots(now).
func Auctions(now time.Time) []models.Auction {
	lots := Lots(now)
	out := make([]models.Auction, 0, len(lots))
	for _, l := range lots {
		out = append(out, l.Auction)
	}
	return out
}

func flueCured() models.Auction {
	a := auction(1, "Premium Flue-Cured Virginia Tobacco",
		"High-quality flue-cured tobacco with exceptional flavor profile, perfect for premium blends. "+
			"This batch features golden-yellow leaves with excellent texture and elasticity, ideal for premium cigarette production.",
		models.TobaccoFlueCured, "500kg", "Premium", models.Seller{ID: 2, Name: "Virginia Farms Ltd"},
		"250.00", "350.00", 8, ts("2025-03-10T14:00:00"), ts("2025-03-15T18:00:00"))
	a.StartTime = ts("2025-03-10T15:00:00")
	a.ReservePrice = decimal.NewNullDecimal(decimal.RequireFromString("400.00"))
	a.RegionGrown = "Virginia, USA"
	a.SeasonGrown = "2024 Summer"
	a.TIMBCertificate = "TIMB-2025-000345"
	return a
}

func flueCuredBids() []models.Bid {
	rows := []struct {
		id     int64
		bidder bidder
		amount string
		at     string
	}{
		{8, bidders[0], "350.00", "2025-03-12T16:45:22"},
		{7, bidders[1], "335.50", "2025-03-12T14:32:10"},
		{6, bidders[2], "310.25", "2025-03-11T09:18:45"},
		{5, bidders[0], "300.00", "2025-03-11T07:56:32"},
		{4, bidders[3], "280.00", "2025-03-10T21:14:09"},
		{3, bidders[1], "265.00", "2025-03-10T18:05:55"},
		{2, bidders[2], "255.00", "2025-03-10T16:22:40"},
		{1, bidders[0], "250.00", "2025-03-10T15:10:18"},
	}

	bids := make([]models.Bid, 0, len(rows))
	for i, r := range rows {
		bids = append(bids, models.Bid{
			ID:        r.id,
			AuctionID: 1,
			UserID:    r.bidder.id,
			UserName:  r.bidder.name,
			Amount:    decimal.RequireFromString(r.amount),
			IsWinning: i == 0,
			CreatedAt: ts(r.at),
		})
	}
	return bids
}

func auction(id int64, title, description string, typ models.TobaccoType, quantity, grade string,
	seller models.Seller, starting, current string, bids int, createdAt, endsAt time.Time) models.Auction {
	return models.Auction{
		ID:              id,
		Title:           title,
		Description:     description,
		TobaccoType:     typ,
		Quantity:        quantity,
		Grade:           grade,
		Seller:          seller,
		StartingPrice:   decimal.RequireFromString(starting),
		CurrentPrice:    decimal.RequireFromString(current),
		MinBidIncrement: decimal.RequireFromString("5.00"),
		BidsCount:       bids,
		TIMBCleared:     true,
		CreatedAt:       createdAt,
		StartTime:       createdAt.Add(time.Hour),
		EndsAt:          endsAt,
	}
}

// ladder builds BidsCount evenly spaced bids from the starting price up to the
// current price, newest first.
func ladder(a models.Auction) []models.Bid {
	n := int64(a.BidsCount)
	if n == 0 {
		return nil
	}
	spread := a.CurrentPrice.Sub(a.StartingPrice)
	window := Epoch.Sub(a.StartTime)

	bids := make([]models.Bid, n)
	for i := int64(1); i <= n; i++ {
		b := bidders[(a.ID+i)%int64(len(bidders))]
		bids[n-i] = models.Bid{
			ID:        i,
			AuctionID: a.ID,
			UserID:    b.id,
			UserName:  b.name,
			Amount:    a.StartingPrice.Add(spread.Mul(decimal.NewFromInt(i)).Div(decimal.NewFromInt(n)).Round(2)),
			IsWinning: i == n,
			CreatedAt: a.StartTime.Add(window * time.Duration(i) / time.Duration(n+1)),
		}
	}
	return bids
}

func rebase(l Lot, shift time.Duration) Lot {
	l.Auction.CreatedAt = l.Auction.CreatedAt.Add(shift)
	l.Auction.StartTime = l.Auction.StartTime.Add(shift)
	l.Auction.EndsAt = l.Auction.EndsAt.Add(shift)
	for i := range l.Bids {
		l.Bids[i].CreatedAt = l.Bids[i].CreatedAt.Add(shift)
	}
	return l
}

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

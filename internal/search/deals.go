package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/alex-user-go/tripsearch/internal/providers"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// DealFeed serves the promotional feeds, falling back to the built-in
// lists when the provider cannot.
type DealFeed struct {
	provider providers.DealProvider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDealFeed creates a new DealFeed.
func NewDealFeed(provider providers.DealProvider, timeout time.Duration, logger *slog.Logger) *DealFeed {
	return &DealFeed{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// TreasureHunt returns the limited-time offers.
func (d *DealFeed) TreasureHunt(ctx context.Context) []types.TreasureHuntDeal {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	deals, err := d.provider.TreasureHunt(ctx)
	if err != nil {
		d.logger.Warn("treasure hunt feed failed, using built-in deals", "error", err)
		return DefaultTreasureHunt()
	}
	return deals
}

// WhatsHot returns the trending packages.
func (d *DealFeed) WhatsHot(ctx context.Context) []types.HotDeal {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	deals, err := d.provider.WhatsHot(ctx)
	if err != nil {
		d.logger.Warn("whats hot feed failed, using built-in deals", "error", err)
		return DefaultWhatsHot()
	}
	return deals
}

// DefaultTreasureHunt returns the built-in treasure hunt list.
func DefaultTreasureHunt() []types.TreasureHuntDeal {
	return []types.TreasureHuntDeal{
		{
			ID:    "1",
			Title: "Norwegian Cruise Line Exclusive Deals",
			Image: "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=400&h=300&fit=crop&q=80",
			Benefits: []string{
				"Daily Gratuities or Shipboard Credit on Select Sailings",
				"Digital Shop Card with Every Sailing",
			},
			ExtrasValue: "$400",
		},
		{
			ID:    "2",
			Title: "Hawaii Island: OUTRIGGER Kona Resort and Spa Club Package",
			Image: "https://images.unsplash.com/photo-1598135753163-6167c1a1ad65?w=400&h=300&fit=crop&q=80",
			Benefits: []string{
				"Two Complimentary Luau Tickets",
				"Complimentary Valet Parking",
				"20% Discount on Wind Fair Cruises",
			},
			ExtrasValue: "$400",
		},
		{
			ID:    "3",
			Title: "Riviera Nayarit: Marival Distinct Package",
			Image: "https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=400&h=300&fit=crop&q=80",
			Benefits: []string{
				"All-Inclusive Resort",
				"Digital Shop Card",
				"One-, Two- and Three-Bedroom Residences",
			},
			ExtrasValue: "$200",
		},
	}
}

// DefaultWhatsHot returns the built-in trending list.
func DefaultWhatsHot() []types.HotDeal {
	return []types.HotDeal{
		{
			ID:         "1",
			Title:      "Turks and Caicos: Beaches Resort",
			Image:      "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=400&h=300&fit=crop&q=80",
			Price:      "From $3,299",
			Duration:   "7 nights",
			Inclusions: []string{"All-Inclusive", "Family Resort", "Water Park"},
		},
		{
			ID:         "2",
			Title:      "Costa Rica: Manuel Antonio",
			Image:      "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop&q=80",
			Price:      "From $1,899",
			Duration:   "5 nights",
			Inclusions: []string{"Eco-Lodge", "Adventure Tours", "Wildlife Viewing"},
		},
		{
			ID:         "3",
			Title:      "Japan: Tokyo & Kyoto Experience",
			Image:      "https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e?w=400&h=300&fit=crop&q=80",
			Price:      "From $4,599",
			Duration:   "10 nights",
			Inclusions: []string{"Cultural Tours", "Bullet Train", "Traditional Ryokan"},
		},
	}
}

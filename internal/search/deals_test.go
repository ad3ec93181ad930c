package search_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

type mockDeals struct {
	hunt []types.TreasureHuntDeal
	hot  []types.HotDeal
	err  error
}

func (m mockDeals) TreasureHunt(ctx context.Context) ([]types.TreasureHuntDeal, error) {
	return m.hunt, m.err
}

func (m mockDeals) WhatsHot(ctx context.Context) ([]types.HotDeal, error) {
	return m.hot, m.err
}

func TestDealFeed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	live := mockDeals{
		hunt: []types.TreasureHuntDeal{{ID: "10", Title: "Alaska Cruise"}},
		hot:  []types.HotDeal{{ID: "20", Title: "Lisbon"}},
	}
	feed := search.NewDealFeed(live, time.Second, logger)
	assert.Equal(t, live.hunt, feed.TreasureHunt(context.Background()))
	assert.Equal(t, live.hot, feed.WhatsHot(context.Background()))

	feed = search.NewDealFeed(mockDeals{err: errors.New("unreachable")}, time.Second, logger)
	assert.Equal(t, search.DefaultTreasureHunt(), feed.TreasureHunt(context.Background()))
	assert.Equal(t, search.DefaultWhatsHot(), feed.WhatsHot(context.Background()))
	assert.Len(t, feed.WhatsHot(context.Background()), 3)
}

package providers

import (
	"context"
	"errors"

	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// Provider retrieves the raw listing for a query from a remote catalog.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Search performs a single request; it does not retry.
	Search(ctx context.Context, q types.SearchQuery) (*types.ResultSet, error)
}

// DealProvider serves the storefront's promotional feeds.
type DealProvider interface {
	TreasureHunt(ctx context.Context) ([]types.TreasureHuntDeal, error)
	WhatsHot(ctx context.Context) ([]types.HotDeal, error)
}

var (
	// ErrNoEndpoint is returned when no base URL is configured.
	ErrNoEndpoint = errors.New("provider endpoint not configured")

	// ErrMalformedPayload is returned when the response carries no usable results.
	ErrMalformedPayload = types.ErrMalformedPayload
)

// SearchRequest is the JSON body sent to POST /api/search.
type SearchRequest struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Return      string `json:"return"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	Rooms       string `json:"rooms"`
	Adults      string `json:"adults"`
	Children    string `json:"children"`
	FlyingFrom  string `json:"flyingFrom"`
	Class       string `json:"class"`
	AddFlight   string `json:"addFlight"`
	AddCar      string `json:"addCar"`
}

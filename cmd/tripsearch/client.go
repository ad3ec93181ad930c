package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alex-user-go/tripsearch/internal/handler"
	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// client talks to the storefront API.
type client struct {
	baseURL    string
	httpClient *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *client) search(ctx context.Context, q types.SearchQuery, f types.FilterState) (*handler.SearchResponse, error) {
	v := querycodec.Encode(q)
	for k, vals := range search.FilterValues(f) {
		v[k] = vals
	}

	var resp handler.SearchResponse
	if err := c.get(ctx, "/search?"+v.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *client) treasureHunt(ctx context.Context) ([]types.TreasureHuntDeal, error) {
	var deals []types.TreasureHuntDeal
	return deals, c.get(ctx, "/deals/treasure-hunt", &deals)
}

func (c *client) whatsHot(ctx context.Context) ([]types.HotDeal, error) {
	var deals []types.HotDeal
	return deals, c.get(ctx, "/deals/whats-hot", &deals)
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

// HTTPProvider queries a catalog provider over HTTP.
type HTTPProvider struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPProvider creates a new HTTPProvider. An empty baseURL is allowed;
// every call then fails with ErrNoEndpoint.
func NewHTTPProvider(name, baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		name:    name,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return p.name
}

// NewSearchRequest builds the request body for q from its transport tokens.
func NewSearchRequest(q types.SearchQuery) SearchRequest {
	v := querycodec.Encode(q)
	return SearchRequest{
		Type:        v.Get(querycodec.KeyType),
		Destination: v.Get(querycodec.KeyDest),
		Departure:   v.Get(querycodec.KeyDeparture),
		Return:      v.Get(querycodec.KeyReturn),
		CheckIn:     v.Get(querycodec.KeyCheckIn),
		CheckOut:    v.Get(querycodec.KeyCheckOut),
		Rooms:       v.Get(querycodec.KeyRooms),
		Adults:      v.Get(querycodec.KeyAdults),
		Children:    v.Get(querycodec.KeyChildren),
		FlyingFrom:  v.Get(querycodec.KeyFlyingFrom),
		Class:       v.Get(querycodec.KeyClass),
		AddFlight:   v.Get(querycodec.KeyAddFlight),
		AddCar:      v.Get(querycodec.KeyAddCar),
	}
}

// Search posts q to /api/search and parses the results payload.
func (p *HTTPProvider) Search(ctx context.Context, q types.SearchQuery) (*types.ResultSet, error) {
	body, err := json.Marshal(NewSearchRequest(q))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	data, err := p.do(ctx, http.MethodPost, "/api/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	rs, err := types.ParseResultSet(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return rs, nil
}

// TreasureHunt fetches the treasure hunt feed.
func (p *HTTPProvider) TreasureHunt(ctx context.Context) ([]types.TreasureHuntDeal, error) {
	var deals []types.TreasureHuntDeal
	if err := p.getJSON(ctx, "/api/treasure-hunt", &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// WhatsHot fetches the what's hot feed.
func (p *HTTPProvider) WhatsHot(ctx context.Context) ([]types.HotDeal, error) {
	var deals []types.HotDeal
	if err := p.getJSON(ctx, "/api/whats-hot", &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, path string, out any) error {
	data, err := p.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	if p.baseURL == "" {
		return nil, ErrNoEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}

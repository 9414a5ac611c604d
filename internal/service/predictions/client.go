package predictions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// DefaultURL is the local predictions feed.
const DefaultURL = "http://127.0.0.1:5000/api/predictions"

// ErrFetchFailed wraps every failure of the predictions feed.
var ErrFetchFailed = errors.New("predictions fetch failed")

// Prediction is one scored point of the map overlay.
type Prediction struct {
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Score   float64           `json:"prediction_score"`
	Details map[string]string `json:"details,omitempty"`
}

// Client reads the predictions feed.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a client for url. A nil httpClient uses http.DefaultClient.
func New(url string, httpClient *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, httpClient: httpClient}
}

// Fetch downloads the current predictions.
func (c *Client) Fetch(ctx context.Context) ([]Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var items []Prediction
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetchFailed, err)
	}
	return items, nil
}

// Sink receives fetched predictions.
type Sink func(items []Prediction)

// Trigger fetches the feed once and hands the result to a sink. It satisfies widget.Loader.
type Trigger struct {
	client *Client
	sink   Sink
	logger *zap.Logger
}

// NewTrigger builds a Trigger. sink may be nil when only the fetch matters.
func NewTrigger(client *Client, sink Sink, logger *zap.Logger) *Trigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{client: client, sink: sink, logger: logger.Named("predictions")}
}

// Load fetches the predictions and forwards them to the sink.
func (t *Trigger) Load(ctx context.Context) error {
	items, err := t.client.Fetch(ctx)
	if err != nil {
		return err
	}
	t.logger.Info("predictions loaded", zap.Int("count", len(items)))
	if t.sink != nil {
		t.sink(items)
	}
	return nil
}

package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPWordSupply fetches target words from the words endpoint. Failures
// surface as errors so the session can fall back to its local pool instead
// of stalling.
type HTTPWordSupply struct {
	endpoint string
	client   *http.Client
}

func NewHTTPWordSupply(endpoint string) *HTTPWordSupply {
	return &HTTPWordSupply{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPWordSupply) RequestWords(ctx context.Context, count int, difficulty string) ([]string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid words endpoint: %w", err)
	}
	q := u.Query()
	q.Set("count", strconv.Itoa(count))
	if difficulty != "" {
		q.Set("difficulty", difficulty)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("words endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode words response: %w", err)
	}
	return body.Words, nil
}

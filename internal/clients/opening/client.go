// Package opening talks to the opening-narration service, the one network
// call made when a campaign is created.
package opening

//go:generate mockgen -destination=mock/mock_client.go -package=mockopening -source=client.go

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

// Path is where the service accepts opening requests
const Path = "/api/opening"

// DefaultTimeout bounds a request when the config leaves it unset
const DefaultTimeout = 10 * time.Second

// Client produces the opening scene for a universe
type Client interface {
	Opening(ctx context.Context, universe campaign.Universe) (string, error)
}

// Request is the wire body sent to the service
type Request struct {
	Universe campaign.Universe `json:"universe"`
}

// Response is the wire body returned by the service
type Response struct {
	Opening string `json:"opening"`
}

// ErrorResponse is returned by the service on a rejected request
type ErrorResponse struct {
	Error string `json:"error"`
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// Config holds configuration for the HTTP client
type Config struct {
	BaseURL    string // Required, e.g. http://localhost:8080
	HttpClient *http.Client
	Timeout    time.Duration
}

// New creates an HTTP client for the opening service
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("opening client config is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, dnderr.InvalidArgument("opening service base URL is required")
	}

	hc := cfg.HttpClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  hc,
	}, nil
}

func (c *httpClient) Opening(ctx context.Context, universe campaign.Universe) (string, error) {
	body, err := json.Marshal(Request{Universe: universe})
	if err != nil {
		return "", dnderr.Wrap(err, "failed to encode opening request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return "", dnderr.Wrap(err, "failed to build opening request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "opening service request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to read opening response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		_ = json.Unmarshal(data, &errResp)
		return "", dnderr.Newf(dnderr.CodeUnavailable, "opening service returned %d: %s", resp.StatusCode, errResp.Error).
			WithMeta("status", resp.StatusCode)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to decode opening response")
	}
	if strings.TrimSpace(out.Opening) == "" {
		return "", dnderr.New(dnderr.CodeUnavailable, "opening service returned an empty opening")
	}

	return out.Opening, nil
}

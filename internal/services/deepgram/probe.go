// Package deepgram probes Deepgram API key liveness.
//
// The probe posts an empty request to the transcription endpoint: a valid
// key fails with a bad-audio error, which is exactly the signal we want
// without spending credits on real audio.
package deepgram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.deepgram.com"

const probeTimeout = 10 * time.Second

// ProbeResult reports key liveness. BalanceWarning is set when the key is
// recognized but the account is out of credits.
type ProbeResult struct {
	Valid          bool   `json:"valid"`
	Error          string `json:"error,omitempty"`
	BalanceWarning bool   `json:"balance_warning"`
}

// Option customizes the prober.
type Option func(*Prober)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(baseURL string) Option {
	return func(p *Prober) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			p.baseURL = trimmed
		}
	}
}

// Prober checks Deepgram API keys.
type Prober struct {
	baseURL    string
	httpClient *http.Client
}

// NewProber builds a Prober against the production endpoint.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: probeTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProbeKey verifies the key against the live API. Network failures are
// reported in the result, never returned as errors: the caller renders the
// result either way.
func (p *Prober) ProbeKey(ctx context.Context, apiKey string) *ProbeResult {
	if strings.TrimSpace(apiKey) == "" {
		return &ProbeResult{Valid: false, Error: "no API key provided"}
	}

	url := p.baseURL + "/v1/listen?model=nova-2&language=en"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(""))
	if err != nil {
		return &ProbeResult{Valid: false, Error: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Authorization", "Token "+apiKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &ProbeResult{Valid: false, Error: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &ProbeResult{Valid: false, Error: "Invalid API key (401 Unauthorized)"}
	case resp.StatusCode == http.StatusPaymentRequired:
		return &ProbeResult{Valid: false, Error: "Insufficient credits (402 Payment Required)", BalanceWarning: true}
	case resp.StatusCode == http.StatusBadRequest:
		// Auth succeeded; the empty audio payload is what was rejected.
		return &ProbeResult{Valid: true}
	case resp.StatusCode >= 300:
		return &ProbeResult{Valid: false, Error: fmt.Sprintf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	default:
		return &ProbeResult{Valid: true}
	}
}

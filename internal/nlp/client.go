// internal/nlp/client.go
package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
	"github.com/textlens/TextLensHub/internal/models"
	"github.com/textlens/TextLensHub/internal/utils"
)

// Endpoint suffixes, one per analysis kind. The remote service is opaque:
// each endpoint is a plain GET with the user text as sole query parameter.
var endpointSuffixes = map[models.AnalysisKind]string{
	models.KindSentiment:                 "analyzeText",
	models.KindEntity:                    "analyzeEntities",
	models.KindEntitySentiment:           "analyzeEntitySentiment",
	models.KindEntitySentimentBySentence: "analyzeSentencesWithSalience",
	models.KindSyntax:                    "analyzeSyntax",
}

// Client dispatches analysis requests to the remote endpoints. It issues
// exactly one outbound call per invocation: no retries, no deduplication.
// Concurrent duplicate calls for the same kind are possible if the caller
// does not consult InFlight before submitting.
type Client struct {
	baseURL string
	http    *http.Client

	mu       sync.Mutex
	inFlight map[models.AnalysisKind]int
}

// NewClient creates a dispatcher against the given service base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
		inFlight: make(map[models.AnalysisKind]int),
	}
}

// Endpoint returns the full URL for a kind, without query parameters.
func (c *Client) Endpoint(kind models.AnalysisKind) (string, error) {
	suffix, ok := endpointSuffixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown analysis kind: %s", kind)
	}
	return c.baseURL + "/" + suffix, nil
}

// InFlight reports whether a request for kind is currently pending, so a
// caller can disable resubmission. The client does not itself enforce
// mutual exclusion across overlapping calls.
func (c *Client) InFlight(kind models.AnalysisKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[kind] > 0
}

func (c *Client) markInFlight(kind models.AnalysisKind, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[kind] += delta
	if c.inFlight[kind] < 0 {
		c.inFlight[kind] = 0
	}
}

// Analyze issues one GET <endpoint>?text=<text> and returns the raw
// response body. Failures are classified: HTTP 400 carries the server's
// body text verbatim, anything else is a transient failure. The in-flight
// flag is cleared on every exit path.
func (c *Client) Analyze(ctx context.Context, kind models.AnalysisKind, text string) (json.RawMessage, error) {
	endpoint, err := c.Endpoint(kind)
	if err != nil {
		return nil, apperrors.NewTransientError("invalid analysis kind", err)
	}

	c.markInFlight(kind, 1)
	defer c.markInFlight(kind, -1)

	query := url.Values{}
	query.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewTransientError("failed to build request", err)
	}

	logger := utils.GetLogger()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Errorf("analysis request failed: kind=%s err=%v", kind, err)
		return nil, apperrors.NewTransientError("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransientError("failed to read response", err)
	}

	logger.Debugf("analysis request done: kind=%s status=%d elapsed=%s",
		kind, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, apperrors.NewServerRejectedError(strings.TrimSpace(string(body)))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, apperrors.NewTransientError(
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	return json.RawMessage(body), nil
}

package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/models"
)

const (
	acceptHeader   = "application/vnd.github.v3+json"
	defaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of an error response ends up in a fault.
	maxErrorBody = 512
)

// HTTPClient fetches resources from the live REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for cfg.BaseURL. The HTTP client timeout
// is set from the config. A base URL that is not an absolute http(s) URL
// yields a capability fault.
func NewHTTPClient(cfg config.RemoteConfig) (*HTTPClient, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, models.WrapFault(models.FaultCapability, err, "invalid API base URL %q", cfg.BaseURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, models.NewFault(models.FaultCapability, "API base URL %q must be an absolute http(s) URL", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// URL returns the absolute URL for a resource path.
func (c *HTTPClient) URL(creds models.Credentials, path string) string {
	return c.baseURL + "/repos/" + url.PathEscape(creds.Owner) + "/" + url.PathEscape(creds.Repo) + "/" + strings.TrimPrefix(path, "/")
}

// Fetch performs exactly one GET request. 200 returns the body, 404 a
// not-found fault, any other status or network failure a transport fault.
func (c *HTTPClient) Fetch(ctx context.Context, creds models.Credentials, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(creds, path), nil)
	if err != nil {
		return nil, models.WrapFault(models.FaultTransport, err, "building request for %s", path)
	}
	req.Header.Set("Accept", acceptHeader)
	if creds.HasToken() {
		req.Header.Set("Authorization", "token "+creds.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.WrapFault(models.FaultTransport, err, "calling API for %s", path)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, models.WrapFault(models.FaultTransport, err, "reading response for %s", path)
		}
		if !json.Valid(body) {
			return nil, models.NewFault(models.FaultTransport, "response for %s is not valid JSON", path)
		}
		return body, nil
	case http.StatusNotFound:
		return nil, models.NewFault(models.FaultNotFound, "%s not found", path)
	default:
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, models.NewFault(models.FaultTransport, "API error %d for %s: %s",
			resp.StatusCode, path, strings.TrimSpace(string(excerpt)))
	}
}

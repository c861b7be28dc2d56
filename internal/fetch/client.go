// Package fetch talks to the draft provider. Transport concerns (timeouts,
// bounded retries, payload caching) live here so the state-resolution
// packages stay pure functions over already-fetched data.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"nfl-draft-mcp/internal/draftstate"
	"nfl-draft-mcp/internal/store"
)

type Client struct {
	HTTP         *http.Client
	Cache        *store.JSONCache
	BaseURL      string
	UserAgent    string
	Retries      int
	RetryBackoff time.Duration
	UseCache     bool
	DisableWrite bool
	Logger       *slog.Logger
}

func NewClient(cache *store.JSONCache, baseURL string) *Client {
	return &Client{
		HTTP:         &http.Client{Timeout: 20 * time.Second},
		Cache:        cache,
		BaseURL:      baseURL,
		UserAgent:    "nfl-draft-mcp/1.0",
		Retries:      3,
		RetryBackoff: 500 * time.Millisecond,
		UseCache:     true,
		Logger:       slog.Default(),
	}
}

// FetchRaw downloads urlPath (like "/draft/123") and mirrors it to relPath.
// Attempts are bounded; a final failure returns an error and writes nothing,
// leaving any previously cached payload intact.
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Cache.Exists(relPath) {
		return c.Cache.Read(relPath)
	}

	var lastErr error
	for attempt := 1; attempt <= c.Retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.RetryBackoff * time.Duration(attempt-1)):
			}
			c.Logger.Warn("retrying provider fetch",
				"path", urlPath, "attempt", attempt, "err", lastErr)
		}
		body, err := c.fetchOnce(ctx, urlPath)
		if err != nil {
			lastErr = err
			continue
		}
		if !c.DisableWrite {
			if werr := c.Cache.Write(relPath, body); werr != nil {
				return nil, werr
			}
		}
		return body, nil
	}
	return nil, fmt.Errorf("GET %s failed after %d attempts: %w", urlPath, c.Retries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, urlPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, string(body))
	}
	return body, nil
}

// DraftPayload fetches and decodes the provider's draft object.
func (c *Client) DraftPayload(ctx context.Context, draftID string, force bool) (draftstate.ProviderPayload, error) {
	relPath := fmt.Sprintf("draft/%s/payload.json", draftID)
	body, err := c.FetchRaw(ctx, "/draft/"+draftID, relPath, force)
	if err != nil {
		return draftstate.ProviderPayload{}, err
	}
	var payload draftstate.ProviderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return draftstate.ProviderPayload{}, fmt.Errorf("decode draft payload: %w", err)
	}
	return payload, nil
}

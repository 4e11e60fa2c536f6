// Package identity talks to the Graph-style downstream API that the sign-on
// gateway fronts. The console only needs two facts about the principal: the
// mail address (for the domain gate) and the display name (for the header).
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// displayNameTTL bounds how long a resolved display name is reused.
const displayNameTTL = 30 * time.Minute

// Client calls the downstream identity API on behalf of a principal.
type Client struct {
	logger  *slog.Logger
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	names map[string]cachedName
}

type cachedName struct {
	name    string
	expires time.Time
}

// userInfo is the wire shape of the /me resource.
type userInfo struct {
	DisplayName string `json:"displayName"`
	Mail        string `json:"mail"`
}

// NewClient creates a Client for the given API base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		logger:  logger,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		names:   make(map[string]cachedName),
	}
}

// Mail returns the principal's mail address.
func (c *Client) Mail(ctx context.Context, token string) (string, error) {
	info, err := c.me(ctx, token, "?$select=mail")
	if err != nil {
		return "", err
	}
	return info.Mail, nil
}

// DisplayName returns the principal's display name, cached for thirty
// minutes per object ID.
func (c *Client) DisplayName(ctx context.Context, objectID, token string) (string, error) {
	if objectID == "" {
		// Without a stable key the result cannot be cached safely.
		info, err := c.me(ctx, token, "")
		if err != nil {
			return "", err
		}
		return info.DisplayName, nil
	}

	c.mu.Lock()
	cached, ok := c.names[objectID]
	c.mu.Unlock()
	if ok && time.Now().Before(cached.expires) {
		return cached.name, nil
	}

	info, err := c.me(ctx, token, "")
	if err != nil {
		return "", err
	}
	if info.DisplayName != "" {
		c.mu.Lock()
		c.names[objectID] = cachedName{name: info.DisplayName, expires: time.Now().Add(displayNameTTL)}
		c.mu.Unlock()
	}
	return info.DisplayName, nil
}

// me fetches the /me resource with the principal's token. A challenge
// demanding additional claims is passed through as ErrConsentRequired so the
// edge can trigger re-authentication.
func (c *Client) me(ctx context.Context, token, query string) (*userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me"+query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity api call: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("identity api call", "url", req.URL.String(), "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if strings.Contains(resp.Header.Get("WWW-Authenticate"), "claims") {
			return nil, domain.ErrConsentRequired
		}
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity api status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	return &info, nil
}

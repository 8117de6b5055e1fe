package yahoo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"stock-lens/src/network"
)

// crumbSession holds the crumb quoteSummary requires alongside the consent
// cookie kept in the network manager's jar.
type crumbSession struct {
	source *YahooFinanceSource
	mu     sync.Mutex
	crumb  string
}

func newCrumbSession(source *YahooFinanceSource) *crumbSession {
	return &crumbSession{source: source}
}

// -----------------------------------------------------------------------------

func (c *crumbSession) get(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	s := c.source
	// The cookie endpoint answers 404 but still sets the session cookie.
	if _, err := s.Network.Get(ctx, s.CookieURL, nil); err != nil {
		s.Logger.Debug("Cookie bootstrap: %v", err)
	}

	body, err := s.Network.Get(ctx, s.BaseURL+"/v1/test/getcrumb", nil)
	if err != nil {
		return "", fmt.Errorf("fetch crumb: %w", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", fmt.Errorf("unexpected crumb response")
	}

	c.crumb = crumb
	s.Logger.Info("Yahoo session initialized")
	return crumb, nil
}

// -----------------------------------------------------------------------------

func (c *crumbSession) invalidate() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

// -----------------------------------------------------------------------------

// isUnauthorized reports an expired crumb or cookie.
func isUnauthorized(err error) bool {
	var se *network.StatusError
	return errors.As(err, &se) && se.StatusCode == 401
}

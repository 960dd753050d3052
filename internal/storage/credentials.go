package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// tokenRefreshSkew is how long before expiry a cached token stops being used.
	tokenRefreshSkew = 300 * time.Second
	// tokenExchangeTimeout bounds one shared refresh independently of the
	// caller that started it.
	tokenExchangeTimeout = 30 * time.Second
)

type tokenExchange func(ctx context.Context) (*oauth2.Token, error)

// credentialCache holds one access token per backend and refreshes it at most
// once for any number of concurrent callers.
type credentialCache struct {
	exchange tokenExchange
	now      func() time.Time

	mu    sync.RWMutex
	token *oauth2.Token

	group singleflight.Group
}

func newCredentialCache(exchange tokenExchange, now func() time.Time) *credentialCache {
	if now == nil {
		now = time.Now
	}
	return &credentialCache{exchange: exchange, now: now}
}

// AccessToken returns a token valid for at least tokenRefreshSkew.
func (c *credentialCache) AccessToken(ctx context.Context) (string, error) {
	if token, ok := c.cached(); ok {
		return token, nil
	}

	// The refresh is shared by every waiter, so it must not inherit the
	// cancellation of whichever caller happened to start it.
	results := c.group.DoChan("token", func() (interface{}, error) {
		if token, ok := c.cached(); ok {
			return token, nil
		}
		exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tokenExchangeTimeout)
		defer cancel()
		fresh, err := c.exchange(exchangeCtx)
		if err != nil {
			return "", err
		}
		if fresh == nil || fresh.AccessToken == "" {
			return "", errors.New("token endpoint returned no access token")
		}
		c.mu.Lock()
		c.token = fresh
		c.mu.Unlock()
		return fresh.AccessToken, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(string), nil
	}
}

func (c *credentialCache) cached() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == nil || c.token.AccessToken == "" {
		return "", false
	}
	if !c.token.Expiry.IsZero() && !c.now().Add(tokenRefreshSkew).Before(c.token.Expiry) {
		return "", false
	}
	return c.token.AccessToken, true
}

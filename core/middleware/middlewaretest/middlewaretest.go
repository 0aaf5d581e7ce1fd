// Package middlewaretest provides an AuthMiddleware backed by in-memory users,
// for handler tests that need authenticated requests.
package middlewaretest

import (
	"context"
	"sync"
	"testing"
	"time"

	"event-api/core/config"
	"event-api/core/constants"
	"event-api/core/errors"
	"event-api/core/middleware"
	"event-api/core/utils"

	"github.com/google/uuid"
)

type Authenticator struct {
	mu         sync.Mutex
	principals map[uuid.UUID]*middleware.Principal
}

// New returns the middleware and the authenticator that resolves its users.
// A JWT configuration is installed when the process has none.
func New() (*middleware.Middleware, *Authenticator) {
	if _, ok := config.GetSafe(); !ok {
		config.Set(&config.Config{JWT: config.JWTConfig{
			Secret:     "middlewaretest-secret",
			Issuer:     "event-api-test",
			AccessTTL:  5 * time.Minute,
			RefreshTTL: time.Hour,
		}})
	}
	a := &Authenticator{principals: map[uuid.UUID]*middleware.Principal{}}
	return middleware.NewMiddleware(a, openCache{}), a
}

func (a *Authenticator) ResolvePrincipal(_ context.Context, id uuid.UUID) (*middleware.Principal, *errors.AppError) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.principals[id]; ok {
		return p, nil
	}
	return nil, errors.NewAppError(errors.ErrUnauthorized, "User not found or inactive", nil)
}

// Login registers p and returns an Authorization header value carrying its access token.
func (a *Authenticator) Login(t testing.TB, p *middleware.Principal) string {
	t.Helper()
	a.mu.Lock()
	a.principals[p.ID] = p
	a.mu.Unlock()

	token, err := utils.GenerateToken(p.ID, p.Email, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

// openCache blacklists nothing and never blocks a login.
type openCache struct{}

func (openCache) IsTokenBlacklisted(context.Context, string) (bool, error)        { return false, nil }
func (openCache) AddToTokenBlacklist(context.Context, string, time.Duration) error { return nil }
func (openCache) IncrementLoginAttempt(context.Context, string) error              { return nil }
func (openCache) IsLoginBlocked(context.Context, string) (bool, error)             { return false, nil }
func (openCache) Del(context.Context, string) error                                { return nil }
func (openCache) Ping(context.Context) error                                       { return nil }
func (openCache) Close() error                                                     { return nil }

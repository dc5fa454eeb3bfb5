package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"tutortrack/core/config"
	"tutortrack/core/constants"
	"tutortrack/core/errors"
	"tutortrack/core/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fakeCache keeps auth bookkeeping in maps so token and state flows can be
// exercised without redis
type fakeCache struct {
	values    map[string]string
	blacklist map[string]bool
	states    map[string]bool
	attempts  map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values:    map[string]string{},
		blacklist: map[string]bool{},
		states:    map[string]bool{},
		attempts:  map[string]int64{},
	}
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.values[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }

func (f *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

func (f *fakeCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	f.blacklist[token] = true
	return nil
}

func (f *fakeCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return f.blacklist[token], nil
}

func (f *fakeCache) IncrementLoginAttempt(ctx context.Context, key string) (int64, error) {
	f.attempts[key]++
	return f.attempts[key], nil
}

func (f *fakeCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	return f.attempts[key] >= constants.MaxLoginAttempts, nil
}

func (f *fakeCache) SetOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	f.states[state] = true
	return nil
}

func (f *fakeCache) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	if !f.states[state] {
		return false, nil
	}
	delete(f.states, state)
	return true, nil
}

func (f *fakeCache) EventsVersion(ctx context.Context, ownerID string) (int64, error) {
	return 0, nil
}

func (f *fakeCache) BumpEventsVersion(ctx context.Context, ownerID string) error { return nil }

func (f *fakeCache) Client() *redis.Client { return nil }

func newTestAuthService(c *fakeCache) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "unit-test-secret"},
		GoogleAPI: config.GoogleAPIConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost:7070/api/v1/auth/google/callback",
		},
	}
	return NewAuthService(nil, cfg, c, nil)
}

func TestGetGoogleAuthURLStoresState(t *testing.T) {
	c := newFakeCache()
	svc := newTestAuthService(c)

	result, appErr := svc.GetGoogleAuthURL(context.Background())
	if appErr != nil {
		t.Fatalf("get auth url: %v", appErr)
	}
	if !strings.Contains(result.AuthURL, "client_id=client-id") {
		t.Fatalf("auth url missing client id: %s", result.AuthURL)
	}
	if !strings.Contains(result.AuthURL, "accounts.google.com") {
		t.Fatalf("auth url not pointing at google: %s", result.AuthURL)
	}
	if len(c.states) != 1 {
		t.Fatalf("expected one stored state, got %d", len(c.states))
	}
	for state := range c.states {
		if !strings.Contains(result.AuthURL, state) {
			t.Fatalf("auth url does not carry stored state %s", state)
		}
	}
}

func TestHandleGoogleCallbackRejectsUnknownState(t *testing.T) {
	svc := newTestAuthService(newFakeCache())

	_, appErr := svc.HandleGoogleCallback(context.Background(), "never-issued", "code")
	if appErr == nil {
		t.Fatal("expected error for unknown state")
	}
	if appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("expected code %s, got %s", errors.ErrUnauthorized, appErr.Code)
	}
}

func TestValidateAccessToken(t *testing.T) {
	c := newFakeCache()
	svc := newTestAuthService(c)
	userID := uuid.New()

	pair, appErr := svc.issueTokenPair(userID)
	if appErr != nil {
		t.Fatalf("issue token pair: %v", appErr)
	}

	claims, appErr := svc.ValidateAccessToken(context.Background(), pair.AccessToken)
	if appErr != nil {
		t.Fatalf("validate access token: %v", appErr)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
}

func TestValidateAccessTokenRejectsRefreshScope(t *testing.T) {
	svc := newTestAuthService(newFakeCache())

	pair, appErr := svc.issueTokenPair(uuid.New())
	if appErr != nil {
		t.Fatalf("issue token pair: %v", appErr)
	}

	_, appErr = svc.ValidateAccessToken(context.Background(), pair.RefreshToken)
	if appErr == nil {
		t.Fatal("expected scope mismatch error")
	}
	if appErr.Code != errors.ErrInvalidTokenFormat {
		t.Fatalf("expected code %s, got %s", errors.ErrInvalidTokenFormat, appErr.Code)
	}
}

func TestValidateAccessTokenRejectsBlacklisted(t *testing.T) {
	c := newFakeCache()
	svc := newTestAuthService(c)

	pair, appErr := svc.issueTokenPair(uuid.New())
	if appErr != nil {
		t.Fatalf("issue token pair: %v", appErr)
	}
	c.blacklist[pair.AccessToken] = true

	_, appErr = svc.ValidateAccessToken(context.Background(), pair.AccessToken)
	if appErr == nil {
		t.Fatal("expected error for revoked token")
	}
	if appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("expected code %s, got %s", errors.ErrUnauthorized, appErr.Code)
	}
}

func TestLogoutBlocksTokenReuse(t *testing.T) {
	c := newFakeCache()
	svc := newTestAuthService(c)

	pair, appErr := svc.issueTokenPair(uuid.New())
	if appErr != nil {
		t.Fatalf("issue token pair: %v", appErr)
	}

	if appErr := svc.Logout(context.Background(), pair.RefreshToken); appErr != nil {
		t.Fatalf("logout: %v", appErr)
	}
	if !c.blacklist[pair.RefreshToken] {
		t.Fatal("expected refresh token to be blacklisted")
	}

	// A revoked refresh token cannot mint a new pair
	_, appErr = svc.RefreshToken(context.Background(), pair.RefreshToken)
	if appErr == nil {
		t.Fatal("expected error reusing revoked refresh token")
	}
}

func TestLogoutRejectsAccessToken(t *testing.T) {
	svc := newTestAuthService(newFakeCache())

	pair, appErr := svc.issueTokenPair(uuid.New())
	if appErr != nil {
		t.Fatalf("issue token pair: %v", appErr)
	}

	if appErr := svc.Logout(context.Background(), pair.AccessToken); appErr == nil {
		t.Fatal("expected scope mismatch logging out with an access token")
	}
}

func TestRemainingTTL(t *testing.T) {
	expired := &utils.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	if got := remainingTTL(expired); got != time.Minute {
		t.Fatalf("expected floor of one minute for expired claims, got %s", got)
	}

	missing := &utils.TokenClaims{}
	if got := remainingTTL(missing); got != constants.RefreshTokenTTL {
		t.Fatalf("expected refresh ttl for missing expiry, got %s", got)
	}

	future := &utils.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if got := remainingTTL(future); got <= 0 || got > time.Hour {
		t.Fatalf("expected positive ttl up to an hour, got %s", got)
	}
}

func TestAvatarObjectKey(t *testing.T) {
	key := avatarObjectKey("Ravi Kumar", "photo.PNG")
	if !strings.HasPrefix(key, "avatars/ravi-kumar-") {
		t.Fatalf("unexpected key prefix: %s", key)
	}
	if !strings.HasSuffix(key, ".PNG") {
		t.Fatalf("expected original extension kept, got %s", key)
	}
	if key == avatarObjectKey("Ravi Kumar", "photo.PNG") {
		t.Fatal("expected unique keys for repeated uploads")
	}
}

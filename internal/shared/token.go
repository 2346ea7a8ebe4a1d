package shared

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound indicates the bearer token is unknown or expired.
var ErrTokenNotFound = errors.New("token no encontrado")

// TokenStore issues and resolves opaque API tokens backed by Redis. The SPA
// sends the token in the Authorization header on every request.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

type tokenPayload struct {
	UserID    int64  `json:"user_id"`
	EmpresaID int64  `json:"empresa_id"`
	IssuedAt  string `json:"issued_at"`
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Issue mints a new token for the user and persists it with the configured TTL.
func (s *TokenStore) Issue(ctx context.Context, userID, empresaID int64) (string, error) {
	token := s.generateToken()
	payload, err := json.Marshal(tokenPayload{
		UserID:    userID,
		EmpresaID: empresaID,
		IssuedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.redisKey(token), payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user and empresa the token was issued for, refreshing
// its TTL so active sessions do not expire mid-use.
func (s *TokenStore) Resolve(ctx context.Context, token string) (userID, empresaID int64, err error) {
	if token == "" {
		return 0, 0, ErrTokenNotFound
	}
	data, err := s.client.Get(ctx, s.redisKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, 0, ErrTokenNotFound
		}
		return 0, 0, err
	}
	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, 0, err
	}
	_ = s.client.Expire(ctx, s.redisKey(token), s.ttl).Err()
	return payload.UserID, payload.EmpresaID, nil
}

// Revoke deletes the token. Revoking an unknown token is not an error.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.redisKey(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// TTL exposes the configured token lifetime.
func (s *TokenStore) TTL() time.Duration {
	return s.ttl
}

func (s *TokenStore) redisKey(token string) string {
	return "token:" + token
}

func (s *TokenStore) generateToken() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

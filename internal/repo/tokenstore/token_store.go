package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Purpose namespaces tokens so a password-reset token can never be replayed
// against the verification endpoint.
type Purpose string

const (
	PurposeReset  Purpose = "reset"
	PurposeVerify Purpose = "verify"
)

// Store hands out single-use tokens bound to a user id. Tokens live in
// Redis when it is available and fall back to process memory otherwise,
// so auth flows keep working in development without a running Redis.
type Store struct {
	redisClient *redis.Client

	mu     sync.Mutex
	memory map[string]memoryEntry
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

func New(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
		memory:      map[string]memoryEntry{},
	}
}

// Issue creates a fresh token for the user with the given TTL.
func (s *Store) Issue(ctx context.Context, purpose Purpose, userID string, ttl time.Duration) (string, error) {
	token := uuid.New().String()
	key := tokenKey(purpose, token)

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, key, userID, ttl).Err(); err == nil {
			return token, nil
		}
	}

	s.mu.Lock()
	s.memory[key] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return token, nil
}

// Consume resolves a token to its user id and invalidates it. A token can
// be consumed at most once.
func (s *Store) Consume(ctx context.Context, purpose Purpose, token string) (string, bool) {
	key := tokenKey(purpose, token)

	if s.redisClient != nil {
		userID, err := s.redisClient.GetDel(ctx, key).Result()
		if err == nil && userID != "" {
			return userID, true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.memory[key]
	if !ok {
		return "", false
	}
	delete(s.memory, key)
	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.userID, true
}

func tokenKey(purpose Purpose, token string) string {
	return "token:" + string(purpose) + ":" + token
}

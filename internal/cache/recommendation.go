package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/forgo/cuppa/internal/model"
)

const (
	keyPrefix         = "cuppa:rec:"
	catalogGeneration = "cuppa:gen:catalog"
	userGeneration    = "cuppa:gen:user:"
)

// Query identifies one recommendation result
type Query struct {
	// Kind separates personal rankings from quiz-only rankings
	Kind   string
	UserID string
	Limit  int
	Quiz   *model.QuizResults
}

// RecommendationCache caches ranked recommendations in Redis
type RecommendationCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRecommendationCache creates a cache whose entries live for ttl
func NewRecommendationCache(client redis.UniversalClient, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{client: client, ttl: ttl}
}

// Get looks up a cached result. It always returns the key to store under on a
// miss; a nil slice with a nil error is a miss.
func (c *RecommendationCache) Get(ctx context.Context, q Query) ([]model.ScoredCoffee, string, error) {
	key, err := c.key(ctx, q)
	if err != nil {
		return nil, "", err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, key, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("cache get: %w", err)
	}

	var recs []model.ScoredCoffee
	if err := json.Unmarshal(data, &recs); err != nil {
		// Unreadable entries are treated as a miss and overwritten
		return nil, key, nil
	}
	return recs, key, nil
}

// Set stores a result under a key returned by Get
func (c *RecommendationCache) Set(ctx context.Context, key string, recs []model.ScoredCoffee) error {
	if recs == nil {
		recs = []model.ScoredCoffee{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateUser drops every cached result for one user
func (c *RecommendationCache) InvalidateUser(ctx context.Context, userID string) error {
	if err := c.client.Incr(ctx, userGeneration+userID).Err(); err != nil {
		return fmt.Errorf("cache invalidate user: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached result
func (c *RecommendationCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, catalogGeneration).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *RecommendationCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RecommendationCache) key(ctx context.Context, q Query) (string, error) {
	gens, err := c.client.MGet(ctx, catalogGeneration, userGeneration+q.UserID).Result()
	if err != nil {
		return "", fmt.Errorf("cache generations: %w", err)
	}

	quiz, err := json.Marshal(q.Quiz)
	if err != nil {
		return "", fmt.Errorf("cache encode quiz: %w", err)
	}

	h, _ := blake2b.New256(nil)
	for _, part := range [][]byte{
		[]byte(q.Kind),
		[]byte(q.UserID),
		[]byte(strconv.Itoa(q.Limit)),
		quiz,
		[]byte(generation(gens[0])),
		[]byte(generation(gens[1])),
	} {
		// Length-prefixed so part boundaries are unambiguous
		h.Write([]byte(strconv.Itoa(len(part)) + ":"))
		h.Write(part)
	}

	return keyPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

func generation(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "0"
}

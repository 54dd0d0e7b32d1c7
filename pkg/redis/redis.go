package redis

import (
	"context"
	"errors"
	"fmt"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

const revokedPrefix = "revoked:"

// IRedis keeps the ids of admin tokens invalidated by logout until they
// would have expired anyway.
type IRedis interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisClient struct {
	client *redis.Client
}

// New connects to REDIS_ADDRESS. Without an address the denylist is kept in
// process memory, which is enough for a single instance.
func New() IRedis {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		logrus.Info("REDIS_ADDRESS not set, keeping revoked tokens in memory")
		return NewMemory()
	}

	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error revoking token %s: %v", tokenID, err))
		return err
	}
	logrus.Debug(fmt.Sprintf("Revoked token %s for %v", tokenID, ttl))
	return nil
}

func (r *redisClient) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := r.client.Get(ctx, revokedPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error checking token %s: %v", tokenID, err))
		return false, err
	}
	return true, nil
}

type memoryClient struct {
	cache *gocache.Cache
}

func NewMemory() IRedis {
	return &memoryClient{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (m *memoryClient) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.cache.Set(revokedPrefix+tokenID, struct{}{}, ttl)
	return nil
}

func (m *memoryClient) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found := m.cache.Get(revokedPrefix + tokenID)
	return found, nil
}

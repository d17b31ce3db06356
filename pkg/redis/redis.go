package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

type IRedis interface {
	SetSearchCache(ctx context.Context, query string, payload string, expiration time.Duration) error
	GetSearchCache(ctx context.Context, query string) (string, error)
	InvalidateSearchCache(ctx context.Context) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
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

func searchKey(query string) string {
	return "catalog:search:" + query
}

func (r *redisClient) SetSearchCache(ctx context.Context, query string, payload string, expiration time.Duration) error {
	err := r.client.Set(ctx, searchKey(query), payload, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error caching search %q: %v", query, err))
		return err
	}
	return nil
}

func (r *redisClient) GetSearchCache(ctx context.Context, query string) (string, error) {
	val, err := r.client.Get(ctx, searchKey(query)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading search cache for %q: %v", query, err))
		return "", err
	}
	return val, nil
}

// InvalidateSearchCache drops every cached search. Called after product
// mutations so stale stock or prices never reach the POS.
func (r *redisClient) InvalidateSearchCache(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, searchKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			logrus.Error(fmt.Sprintf("Error deleting cache key %s: %v", iter.Val(), err))
			return err
		}
	}
	return iter.Err()
}

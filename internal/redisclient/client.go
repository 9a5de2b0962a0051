package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetSession stores a session token to uid mapping with a TTL
func (c *Client) SetSession(ctx context.Context, token, uid string, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("session:%s", token), uid, ttl).Err()
}

// GetSession resolves a session token to a uid. An unknown token returns an
// empty uid with no error.
func (c *Client) GetSession(ctx context.Context, token string) (string, error) {
	uid, err := c.rdb.Get(ctx, fmt.Sprintf("session:%s", token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return uid, nil
}

// DeleteSession invalidates a session token
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("session:%s", token)).Err()
}

// SetImageURL caches the stable image URL for a barcode
func (c *Client) SetImageURL(ctx context.Context, barcode, imageURL string) error {
	return c.rdb.Set(ctx, fmt.Sprintf("productimg:%s", barcode), imageURL, 0).Err()
}

// GetImageURL retrieves the cached image URL for a barcode, empty on miss
func (c *Client) GetImageURL(ctx context.Context, barcode string) (string, error) {
	imageURL, err := c.rdb.Get(ctx, fmt.Sprintf("productimg:%s", barcode)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return imageURL, nil
}

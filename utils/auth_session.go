package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const adminSessionPrefix = "adminSession:"

// SaveAdminSession records an issued admin token (by hash) with a TTL
// matching the token's lifetime. A token that is absent from the session
// cache is treated as revoked even if its signature still verifies.
func SaveAdminSession(client *redis.Client, tokenHash string, ttl time.Duration) error {
	ctx := context.Background()
	if err := client.Set(ctx, adminSessionPrefix+tokenHash, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save admin session: %w", err)
	}
	return nil
}

// AdminSessionExists reports whether the token hash is still registered.
func AdminSessionExists(client *redis.Client, tokenHash string) (bool, error) {
	ctx := context.Background()
	n, err := client.Exists(ctx, adminSessionPrefix+tokenHash).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check admin session: %w", err)
	}
	return n > 0, nil
}

// DeleteAdminSession revokes an admin token.
func DeleteAdminSession(client *redis.Client, tokenHash string) error {
	ctx := context.Background()
	return client.Del(ctx, adminSessionPrefix+tokenHash).Err()
}

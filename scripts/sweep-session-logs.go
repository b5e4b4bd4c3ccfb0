package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

const (
	keyPattern = "session_log:*"
	defaultTTL = 24 * time.Hour
)

// Finds session logs that would never expire or hold entries the server can
// no longer decode, then offers to repair them.
func main() {
	redisURL := os.Getenv("LUMINA_REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning session logs...")

	iter := client.Scan(ctx, 0, keyPattern, 0).Iterator()

	var corruptedKeys, persistentKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		raw, err := client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		for i, item := range raw {
			var entry transformation.LogEntry
			if err := json.Unmarshal([]byte(item), &entry); err != nil || !entry.Category.IsValid() {
				fmt.Printf("✗ Undecodable entry %d in %s\n", i, key)
				corruptedKeys = append(corruptedKeys, key)
				break
			}
		}

		ttl, err := client.TTL(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading TTL of %s: %v\n", key, err)
			continue
		}
		if ttl < 0 {
			persistentKeys = append(persistentKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d logs: %d corrupted, %d without expiry\n",
		checkedCount, len(corruptedKeys), len(persistentKeys))

	if len(corruptedKeys) == 0 && len(persistentKeys) == 0 {
		fmt.Println("Nothing to repair!")
		return
	}

	fmt.Printf("\nDo you want to DELETE corrupted logs and expire the rest after %s? (yes/no): ", defaultTTL)
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	deleted := make(map[string]bool, len(corruptedKeys))
	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
			continue
		}
		deleted[key] = true
		fmt.Printf("Deleted %s\n", key)
	}
	for _, key := range persistentKeys {
		if deleted[key] {
			continue
		}
		if err := client.Expire(ctx, key, defaultTTL).Err(); err != nil {
			fmt.Printf("Failed to expire %s: %v\n", key, err)
			continue
		}
		fmt.Printf("Expiring %s\n", key)
	}
	fmt.Println("\nRepair complete!")
}

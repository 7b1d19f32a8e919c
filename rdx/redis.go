package rdx

import (
	"log"
	"os"
	"time"

	"toyvault/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// SetWithExpiry stores a string value, logging instead of failing the caller.
func SetWithExpiry(key, value string, ttl time.Duration) {
	if err := Conn.Set(globals.Ctx, key, value, ttl).Err(); err != nil {
		log.Println("Redis SET error for key", key, ":", err)
	}
}

// Get returns the value for key, or "" when absent or on error.
func Get(key string) string {
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Redis GET error for key", key, ":", err)
		}
		return ""
	}
	return val
}

// Del removes a key, logging errors only.
func Del(key string) {
	if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
		log.Println("Redis DEL error for key", key, ":", err)
	}
}

// DelPrefix removes every key matching prefix* via SCAN.
func DelPrefix(prefix string) {
	iter := Conn.Scan(globals.Ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(globals.Ctx) {
		if err := Conn.Del(globals.Ctx, iter.Val()).Err(); err != nil {
			log.Println("Redis DEL error for key", iter.Val(), ":", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("Redis SCAN error for prefix", prefix, ":", err)
	}
}

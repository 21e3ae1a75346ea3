package cache

import (
	"os"
	"time"

	"github.com/gomodule/redigo/redis"
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_URL"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func CreateRedisPool() *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", redisAddr()) },
	}
}

func CreateRedisConnection() (redis.Conn, error) {
	return redis.Dial("tcp", redisAddr())
}

package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Get(key string, conn *redis.Conn) (string, error) {
	return redis.String((*conn).Do("GET", key))
}

func Del(key string, conn *redis.Conn) error {
	_, err := (*conn).Do("DEL", key)
	return err
}

func Set(key string, value interface{}, conn *redis.Conn) error {
	reply, err := redis.String((*conn).Do("SET", key, value))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return redis.ErrNil
	}
	return nil
}

// SetEx stores a value that expires after ttl seconds. Used for the
// per-room snapshot mirror reconnecting clients catch up from.
func SetEx(key string, value interface{}, ttlSeconds int, conn *redis.Conn) error {
	_, err := (*conn).Do("SETEX", key, ttlSeconds, value)
	return err
}

// SetNXPX writes the key only if absent, expiring after ttl milliseconds.
// Returns false when the key already existed. This is the nonce-replay
// primitive of the audit service.
func SetNXPX(key string, value interface{}, ttlMillis int, conn *redis.Conn) (bool, error) {
	reply, err := redis.String((*conn).Do("SET", key, value, "NX", "PX", ttlMillis))
	if err == redis.ErrNil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return reply == "OK", nil
}

// IncrExpire bumps a counter and ensures it dies after ttl seconds, so a
// rate-limit window cleans itself up without a sweeper.
func IncrExpire(key string, ttlSeconds int, conn *redis.Conn) (int, error) {
	n, err := redis.Int((*conn).Do("INCR", key))
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if _, err := (*conn).Do("EXPIRE", key, ttlSeconds); err != nil {
			return n, err
		}
	}
	return n, nil
}

package queries

import (
	"encoding/json"
	"fmt"

	"github.com/gomodule/redigo/redis"
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/cache"
)

// Snapshot mirror: the latest authoritative room view is copied into Redis
// under a TTL so a reconnecting client can catch up before the next
// broadcast. The in-memory session remains the source of truth.

const snapshotTTLSeconds = 2 * 60 * 60

func snapshotKey(gameID string) string {
	return fmt.Sprintf("%s.snapshot", gameID)
}

func MirrorSnapshot(gameID string, snap models.RoomSnapshot, conn *redis.Conn) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return cache.SetEx(snapshotKey(gameID), raw, snapshotTTLSeconds, conn)
}

// LatestSnapshot returns the mirrored snapshot JSON, or "" if none is live.
func LatestSnapshot(gameID string, conn *redis.Conn) string {
	raw, err := cache.Get(snapshotKey(gameID), conn)
	if err != nil {
		return ""
	}
	return raw
}

func DropSnapshot(gameID string, conn *redis.Conn) {
	_ = cache.Del(snapshotKey(gameID), conn)
}

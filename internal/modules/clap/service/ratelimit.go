package clap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// clapGuardKey is the fast-path duplicate guard for one (actor, target) pair
// on one UTC day. The database window query stays the source of truth; the
// Redis key only spares it the round trip on obvious replays.
func clapGuardKey(actorFid, targetFid int64, day time.Time) string {
	return fmt.Sprintf("clap_guard:%d:%d:%s", actorFid, targetFid, day.UTC().Format("2006-01-02"))
}

func checkAndSetClapGuard(ctx context.Context, rdb *redis.Client, actorFid, targetFid int64, now time.Time) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	midnight := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	key := clapGuardKey(actorFid, targetFid, now)

	wasSet, err := rdb.SetNX(ctx, key, "locked", midnight.Sub(now)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check clap guard in redis: %w", err)
	}

	return wasSet, nil
}

func clearClapGuard(ctx context.Context, rdb *redis.Client, actorFid, targetFid int64, now time.Time) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, clapGuardKey(actorFid, targetFid, now))
}

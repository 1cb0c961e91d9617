package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached responses after a mutation so public lists
// never serve a stale participant count or catalog.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) purgePrefix(ctx context.Context, prefix string) {
	iter := ci.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

// PurgeSessions drops both the session list and every cached single session;
// item keys carry a hashed id, so the whole namespace goes.
func (ci *CacheInvalidator) PurgeSessions(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:sessions:")
}

func (ci *CacheInvalidator) PurgeExercises(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:exercises:")
}

func (ci *CacheInvalidator) PurgeAnnouncements(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:announcements:")
}

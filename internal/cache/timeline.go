package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"minitweet/internal/model"
)

const (
	// TimelineCachePrefix is the key prefix for per-user timeline caches
	TimelineCachePrefix = "timeline:user:"

	// TimelineVersionPrefix is the key prefix for per-user invalidation
	// generations.
	TimelineVersionPrefix = "timeline:version:"

	// DefaultTimelineCacheTTL bounds how long a cached timeline is served.
	DefaultTimelineCacheTTL = time.Minute

	// versionTTL must outlive any in-flight timeline assembly; an expired
	// generation reads as 0 again.
	versionTTL = 24 * time.Hour
)

// TimelineCache stores assembled timelines. Every write that changes a
// user's timeline must invalidate that user's entry.
type TimelineCache interface {
	// Get returns the cached timeline and whether it was present.
	Get(ctx context.Context, userID int64) ([]model.Post, bool, error)

	// Version returns the user's current invalidation generation. Read it
	// before loading the timeline from storage and hand it to Set.
	Version(ctx context.Context, userID int64) (int64, error)

	// Set stores a timeline with the cache TTL, unless the user was
	// invalidated after version was read. It reports whether it stored.
	Set(ctx context.Context, userID, version int64, posts []model.Post) (bool, error)

	// Invalidate drops the cached timelines of the given users and bumps
	// their generations.
	Invalidate(ctx context.Context, userIDs ...int64) error
}

// setIfVersion writes KEYS[2] only while KEYS[1] still holds ARGV[1].
// A missing generation counts as 0.
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if (current or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// RedisTimelineCache implements TimelineCache with one JSON string per user
// and a generation counter guarding writes.
type RedisTimelineCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses a redis:// URL and pings the server so startup fails
// fast when Redis is configured but unreachable.
// URL format: redis://[:password@]host:port[/db]
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// NewTimelineCache creates a TimelineCache backed by Redis.
func NewTimelineCache(client *redis.Client, ttl time.Duration) TimelineCache {
	if ttl <= 0 {
		ttl = DefaultTimelineCacheTTL
	}
	return &RedisTimelineCache{client: client, ttl: ttl}
}

func timelineKey(userID int64) string {
	return fmt.Sprintf("%s%d", TimelineCachePrefix, userID)
}

func versionKey(userID int64) string {
	return fmt.Sprintf("%s%d", TimelineVersionPrefix, userID)
}

func (c *RedisTimelineCache) Get(ctx context.Context, userID int64) ([]model.Post, bool, error) {
	data, err := c.client.Get(ctx, timelineKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get timeline: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		slog.Warn("discarding unreadable timeline cache entry",
			slog.String("component", "TimelineCache"), slog.Int64("user", userID), slog.Any("err", err))
		return nil, false, nil
	}

	return posts, true, nil
}

func (c *RedisTimelineCache) Version(ctx context.Context, userID int64) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get timeline version: %w", err)
	}
	return version, nil
}

func (c *RedisTimelineCache) Set(ctx context.Context, userID, version int64, posts []model.Post) (bool, error) {
	if posts == nil {
		posts = []model.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return false, fmt.Errorf("marshal timeline: %w", err)
	}

	keys := []string{versionKey(userID), timelineKey(userID)}
	stored, err := setIfVersion.Run(ctx, c.client, keys,
		strconv.FormatInt(version, 10), data, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("set timeline: %w", err)
	}

	if stored == 0 {
		slog.Debug("stale timeline discarded", slog.String("component", "TimelineCache"),
			slog.Int64("user", userID), slog.Int64("version", version))
	}
	return stored == 1, nil
}

// Invalidate bumps every generation and deletes every entry in one
// MULTI/EXEC, so a concurrent Set either lands before and is deleted or is
// refused.
func (c *RedisTimelineCache) Invalidate(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Incr(ctx, versionKey(id))
			pipe.Expire(ctx, versionKey(id), versionTTL)
			pipe.Del(ctx, timelineKey(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate timelines: %w", err)
	}

	slog.Debug("timelines invalidated", slog.String("component", "TimelineCache"), slog.Int("users", len(userIDs)))
	return nil
}

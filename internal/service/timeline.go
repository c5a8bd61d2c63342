package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"minitweet/internal/cache"
	"minitweet/internal/metrics"
	"minitweet/internal/model"
	"minitweet/internal/repository"
)

type TimelineService struct {
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	cache      cache.TimelineCache
	metrics    metrics.Recorder
}

// NewTimelineService wires timeline assembly. timelineCache may be nil.
func NewTimelineService(
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	timelineCache cache.TimelineCache,
	recorder metrics.Recorder,
) *TimelineService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &TimelineService{
		followRepo: followRepo,
		postRepo:   postRepo,
		cache:      timelineCache,
		metrics:    recorder,
	}
}

// Timeline returns the posts of every account userID follows, newest first.
// Following nobody, or following only accounts without posts, yields an
// empty slice and no error.
//
// Flow:
// 1. Serve from cache when present
// 2. Read the cache generation
// 3. Resolve followee ids and fetch their posts in one query
// 4. Populate cache unless an invalidation landed since step 2
func (s *TimelineService) Timeline(ctx context.Context, userID int64) ([]model.Post, error) {
	startTime := time.Now()

	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		posts, found, err := s.cache.Get(ctx, userID)
		if err != nil {
			slog.Warn("timeline cache read failed", slog.String("component", "TimelineService"),
				slog.Int64("user", userID), slog.Any("err", err))
		}
		s.metrics.RecordTimelineCache(found)
		if found {
			return posts, nil
		}

		version, err = s.cache.Version(ctx, userID)
		if err != nil {
			slog.Warn("timeline cache version read failed", slog.String("component", "TimelineService"),
				slog.Int64("user", userID), slog.Any("err", err))
		} else {
			cacheable = true
		}
	}

	followeeIDs, err := s.followRepo.GetFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get followee ids: %w", err)
	}

	posts := []model.Post{}
	if len(followeeIDs) > 0 {
		posts, err = s.postRepo.GetByAuthors(ctx, followeeIDs)
		if err != nil {
			return nil, fmt.Errorf("get timeline posts: %w", err)
		}
	}

	if cacheable {
		if _, err := s.cache.Set(ctx, userID, version, posts); err != nil {
			slog.Warn("timeline cache write failed", slog.String("component", "TimelineService"),
				slog.Int64("user", userID), slog.Any("err", err))
		}
	}

	slog.Debug("timeline assembled", slog.String("component", "TimelineService"),
		slog.Int64("user", userID), slog.Int("followees", len(followeeIDs)),
		slog.Int("posts", len(posts)), slog.Duration("duration", time.Since(startTime)))

	return posts, nil
}

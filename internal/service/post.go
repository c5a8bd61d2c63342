package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"minitweet/internal/cache"
	"minitweet/internal/model"
	"minitweet/internal/repository"
)

type PostService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	cache      cache.TimelineCache
}

// NewPostService wires post creation. timelineCache may be nil.
func NewPostService(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	timelineCache cache.TimelineCache,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		followRepo: followRepo,
		cache:      timelineCache,
	}
}

// Create stores a post for authorID. Content length is measured in code
// points and may not exceed model.MaxPostContentLength.
func (s *PostService) Create(ctx context.Context, authorID int64, content string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrContentEmpty
	}
	if utf8.RuneCountInString(content) > model.MaxPostContentLength {
		return nil, model.ErrContentTooLong
	}

	post, err := s.postRepo.Create(ctx, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.invalidateFollowers(ctx, authorID)
	slog.Info("post created", slog.String("component", "PostService"),
		slog.Int64("post", post.ID), slog.Int64("author", authorID))

	return post, nil
}

// invalidateFollowers drops the cached timelines that now miss the new post.
// Failures are logged; the cache TTL bounds any staleness left behind.
func (s *PostService) invalidateFollowers(ctx context.Context, authorID int64) {
	if s.cache == nil {
		return
	}

	followers, err := s.followRepo.GetFollowerIDs(ctx, authorID)
	if err != nil {
		slog.Warn("load followers for invalidation failed", slog.String("component", "PostService"),
			slog.Int64("author", authorID), slog.Any("err", err))
		return
	}

	if err := s.cache.Invalidate(ctx, followers...); err != nil {
		slog.Warn("timeline invalidation failed", slog.String("component", "PostService"),
			slog.Int64("author", authorID), slog.Int("followers", len(followers)), slog.Any("err", err))
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"minitweet/internal/cache"
	"minitweet/internal/metrics"
	"minitweet/internal/model"
	"minitweet/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	cache      cache.TimelineCache
	metrics    metrics.Recorder
}

// NewFollowService wires the follow graph. timelineCache may be nil.
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	timelineCache cache.TimelineCache,
	recorder metrics.Recorder,
) *FollowService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		cache:      timelineCache,
		metrics:    recorder,
	}
}

// Follow adds the edge followerID -> followeeID.
//
// Both accounts must exist (model.ErrUserNotFound otherwise). Duplicate edges
// are rejected by the storage constraint and reported as
// model.ErrAlreadyFollowing, so two racing calls produce one success.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID int64) (*model.Follow, error) {
	if followerID == followeeID {
		s.metrics.RecordFollowOp("follow", "self")
		return nil, model.ErrCannotFollowSelf
	}

	for _, id := range []int64{followerID, followeeID} {
		exists, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check user %d: %w", id, err)
		}
		if !exists {
			s.metrics.RecordFollowOp("follow", "not_found")
			return nil, model.ErrUserNotFound
		}
	}

	follow, created, err := s.followRepo.Create(ctx, followerID, followeeID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.metrics.RecordFollowOp("follow", "not_found")
		}
		return nil, err
	}
	if !created {
		s.metrics.RecordFollowOp("follow", "conflict")
		return nil, model.ErrAlreadyFollowing
	}

	s.invalidate(ctx, followerID)
	s.metrics.RecordFollowOp("follow", "ok")
	slog.Info("follow created", slog.String("component", "FollowService"),
		slog.Int64("follower", followerID), slog.Int64("followee", followeeID))

	return follow, nil
}

// Unfollow removes the edge followerID -> followeeID. Removing an edge that
// does not exist returns model.ErrNotFollowing, including on a repeated call.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := s.followRepo.Delete(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, model.ErrNotFollowing) {
			s.metrics.RecordFollowOp("unfollow", "not_found")
		}
		return err
	}

	s.invalidate(ctx, followerID)
	s.metrics.RecordFollowOp("unfollow", "ok")
	slog.Info("follow removed", slog.String("component", "FollowService"),
		slog.Int64("follower", followerID), slog.Int64("followee", followeeID))

	return nil
}

// IsFollowing reports whether followerID follows followeeID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

func (s *FollowService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("timeline invalidation failed", slog.String("component", "FollowService"),
			slog.Int64("user", userID), slog.Any("err", err))
	}
}

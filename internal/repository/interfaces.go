package repository

import (
	"context"

	"minitweet/internal/model"
)

type UserRepository interface {
	// Create inserts the user and fills in ID and CreatedAt.
	// Returns model.ErrEmailExists on a duplicate email.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type FollowRepository interface {
	// Create reports false when the edge already exists.
	Create(ctx context.Context, followerID, followeeID int64) (*model.Follow, bool, error)
	// Delete returns model.ErrNotFollowing when there is no such edge.
	Delete(ctx context.Context, followerID, followeeID int64) error
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	GetFolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, userID int64, content string) (*model.Post, error)
	// GetByAuthors returns the authors' posts newest first, ties broken by id.
	GetByAuthors(ctx context.Context, authorIDs []int64) ([]model.Post, error)
}

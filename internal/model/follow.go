package model

import (
	"errors"
	"time"
)

type Follow struct {
	FollowerID int64     `db:"follower_id" json:"user_id"`
	FolloweeID int64     `db:"followee_id" json:"user_id_to_follow"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

// FollowRequest is the body of PUT /follow and DELETE /unfollow.
type FollowRequest struct {
	UserIDToFollow int64 `json:"user_id_to_follow"`
}

// UnfollowResponse is returned by DELETE /unfollow
type UnfollowResponse struct {
	UserID           int64 `json:"user_id"`
	UserIDToUnfollow int64 `json:"user_id_to_unfollow"`
}

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)

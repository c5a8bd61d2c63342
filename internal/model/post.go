package model

import (
	"errors"
	"time"
)

// Post represents a tweet. Posts are immutable once created.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"tweet"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreatePostRequest is the request body for PUT /tweet.
type CreatePostRequest struct {
	Tweet string `json:"tweet"`
}

// TimelineResponse is the body of GET /timeline.
type TimelineResponse struct {
	Timeline []Post `json:"timeline"`
}

// MaxPostContentLength is counted in Unicode code points, not bytes.
const MaxPostContentLength = 300

// Post errors
var (
	ErrContentTooLong = errors.New("content too long")
	ErrContentEmpty   = errors.New("content is empty")
)

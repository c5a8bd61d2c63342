package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"minitweet/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, userID int64, content string) (*model.Post, error) {
	query := `
		INSERT INTO posts (user_id, content)
		VALUES ($1, $2)
		RETURNING id, user_id, content, created_at
	`
	var post model.Post
	if err := r.db.GetContext(ctx, &post, query, userID, content); err != nil {
		if isForeignKeyViolation(err) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return &post, nil
}

// GetByAuthors fetches every post by the given authors in one query using
// user_id = ANY($1).
func (r *postRepository) GetByAuthors(ctx context.Context, authorIDs []int64) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return []model.Post{}, nil
	}

	query := `
		SELECT id, user_id, content, created_at
		FROM posts
		WHERE user_id = ANY($1)
		ORDER BY created_at DESC, id DESC
	`
	posts := []model.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, pq.Array(authorIDs)); err != nil {
		return nil, fmt.Errorf("get posts by authors: %w", err)
	}

	return posts, nil
}

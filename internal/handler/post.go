package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"minitweet/internal/httputil"
	"minitweet/internal/model"
	"minitweet/internal/transport/http/middleware"
)

type PostCreator interface {
	Create(ctx context.Context, authorID int64, content string) (*model.Post, error)
}

type PostHandler struct {
	posts PostCreator
}

func NewPostHandler(posts PostCreator) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles PUT /tweet
// Creates a new post for the authenticated user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.posts.Create(r.Context(), userID, req.Tweet)
	if err != nil {
		httputil.WriteServiceError(w, "tweet", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

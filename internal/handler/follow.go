package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"minitweet/internal/httputil"
	"minitweet/internal/model"
	"minitweet/internal/transport/http/middleware"
)

type FollowGraph interface {
	Follow(ctx context.Context, followerID, followeeID int64) (*model.Follow, error)
	Unfollow(ctx context.Context, followerID, followeeID int64) error
}

type FollowHandler struct {
	follows FollowGraph
}

func NewFollowHandler(follows FollowGraph) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// Follow handles PUT /follow
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followerID, followeeID, ok := h.parse(w, r)
	if !ok {
		return
	}

	follow, err := h.follows.Follow(r.Context(), followerID, followeeID)
	if err != nil {
		httputil.WriteServiceError(w, "follow", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, follow)
}

// Unfollow handles DELETE /unfollow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followerID, followeeID, ok := h.parse(w, r)
	if !ok {
		return
	}

	if err := h.follows.Unfollow(r.Context(), followerID, followeeID); err != nil {
		httputil.WriteServiceError(w, "unfollow", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.UnfollowResponse{
		UserID:           followerID,
		UserIDToUnfollow: followeeID,
	})
}

// parse reads the caller id from context and the target from the body,
// writing the error response itself when either is unusable.
func (h *FollowHandler) parse(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return 0, 0, false
	}

	var req model.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return 0, 0, false
	}
	if req.UserIDToFollow <= 0 {
		httputil.WriteBadRequest(w, "user_id_to_follow is required")
		return 0, 0, false
	}

	return followerID, req.UserIDToFollow, true
}

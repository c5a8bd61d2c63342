package handler

import (
	"context"
	"net/http"

	"minitweet/internal/httputil"
	"minitweet/internal/model"
	"minitweet/internal/transport/http/middleware"
)

type TimelineReader interface {
	Timeline(ctx context.Context, userID int64) ([]model.Post, error)
}

type TimelineHandler struct {
	timelines TimelineReader
}

func NewTimelineHandler(timelines TimelineReader) *TimelineHandler {
	return &TimelineHandler{timelines: timelines}
}

// Get handles GET /timeline
// An empty timeline is reported as 400 NO_CONTENTS, matching the public API.
func (h *TimelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	posts, err := h.timelines.Timeline(r.Context(), userID)
	if err != nil {
		httputil.WriteServiceError(w, "timeline", err)
		return
	}

	if len(posts) == 0 {
		httputil.WriteBadRequestWithCode(w, model.CodeNoContents, "No contents")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.TimelineResponse{Timeline: posts})
}

package handler

import (
	"net/http"

	"minitweet/internal/httputil"
)

// Ping handles GET /ping
func Ping(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

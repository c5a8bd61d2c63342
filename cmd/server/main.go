package main

import (
	"log/slog"
	"os"

	"minitweet/internal/transport/http"
)

func main() {
	if err := http.Run(); err != nil {
		slog.Error("server failed", slog.Any("err", err))
		os.Exit(1)
	}
}

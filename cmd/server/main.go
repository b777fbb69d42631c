package main

import (
	"cases_backend/internal/app"
	"log/slog"
	"os"
)

func main() {
	a := app.NewApp()
	if err := a.Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/RealZimboGuy/epochtick/pkg/epochtick"
)

func main() {

	//you may do your own logger setup here or use this default one with slog
	epochtick.SetupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := epochtick.Serve(ctx, nil); err != nil {
		slog.Error("Epoch ticker exited with error", "error", err)
		os.Exit(1)
	}
}

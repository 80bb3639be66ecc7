// Command server runs the ViewTube HTTP API.
//
// Configuration is loaded from config.yaml (override with CONFIG_PATH) and
// environment variables. The server shuts down gracefully on SIGINT/SIGTERM.
//
// Exit codes: 0 = clean shutdown, 1 = startup or runtime error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/viewtube-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("fatal: %v", err)
		stop()
		os.Exit(1)
	}
}

// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "webhyper/internal/command/channel"
	_ "webhyper/internal/command/core"
	_ "webhyper/internal/command/moderation"

	"webhyper/internal/config"
	"webhyper/internal/discord"
	"webhyper/internal/metrics"
	"webhyper/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	log.Printf("[INFO] Starting %v bot...", cfg.BotName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		router := server.NewRouter(cfg.BotName, metrics.Default.Collectors()...)
		if err := server.Run(ctx, cfg.Addr(), router); err != nil {
			log.Println("[ERR] Liveness server error:", err)
		}
	}()

	bot := discord.NewBot(cfg, nil)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	log.Println("[INFO] Discord bot exited cleanly")
}

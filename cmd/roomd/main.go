package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	log "github.com/sirupsen/logrus"

	"room-editor/internal/config"
	"room-editor/internal/repository"
	"room-editor/internal/server"
)

// ============================================================
// Room Service
// ============================================================

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.WithError(err).Warn("read .env")
	}
	cfg := config.LoadServer()
	if cfg.Development() {
		log.SetLevel(log.DebugLevel)
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	handler := server.NewRoomHandler(repo, cfg.LayoutKey, log.StandardLogger())
	app := server.NewApp(handler, server.Options{
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		RequestLog:   cfg.Development(),
	})

	// ============================================================
	// Server Start
	// ============================================================

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.WithFields(log.Fields{"addr": addr, "env": cfg.Environment, "db": cfg.DBPath}).Info("starting room service")
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

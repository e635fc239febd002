// cmd/provision/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/outreach-tracker/internal/config"
	"github.com/unclebandit/outreach-tracker/internal/logger"
	"github.com/unclebandit/outreach-tracker/internal/repository"
)

// provision connects to the configured remote without the local fallback so
// a broken credential or DSN fails loudly. Opening the backend creates the
// worksheet or table when it is missing.
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	open := repository.RemoteFromConfig(cfg)
	if open == nil {
		fmt.Println("storage.remote is none, nothing to provision")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := open(ctx)
	if err != nil {
		log.Error("❌ provisioning failed", zap.String("remote", cfg.Storage.Remote), zap.Error(err))
		os.Exit(1)
	}

	entries, err := backend.ReadAll(ctx)
	if err != nil {
		log.Error("❌ call log is not readable", zap.String("remote", cfg.Storage.Remote), zap.Error(err))
		os.Exit(1)
	}

	if c, ok := backend.(interface{ Close() error }); ok {
		c.Close()
	}

	fmt.Printf("Provisioned %s call log (%d existing entries)\n", backend.Kind(), len(entries))
}

package main

import (
	"log/slog"
	"os"

	"github.com/tphakala/healthdiary-go/cmd"
	"github.com/tphakala/healthdiary-go/internal/conf"
	"github.com/tphakala/healthdiary-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		slog.Error("error while loading configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Fatal("command execution failed", "error", err)
	}
}

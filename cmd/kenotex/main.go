package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kenxcomp/kenotex/internal/config"
	"github.com/kenxcomp/kenotex/internal/logger"
	"github.com/kenxcomp/kenotex/internal/tui"
)

// version is stamped by the release build.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println("kenotex " + version)
		return
	}

	// Config problems fall back to defaults; they are logged once the
	// logger is up rather than blocking startup.
	cfg, cfgErr := config.Load()

	dataDir, err := cfg.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kenotex: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(dataDir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Info("starting kenotex %s", version)
	if cfgErr != nil {
		logger.Error("config: %v", cfgErr)
	}

	if err := tui.Run(cfg); err != nil {
		logger.Error("run: %v", err)
		fmt.Fprintf(os.Stderr, "kenotex: %v\n", err)
		os.Exit(1)
	}
}

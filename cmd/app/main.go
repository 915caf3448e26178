package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"SwingScope/internal/di"
	"SwingScope/pkg/config"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", "analyze", "run mode: analyze, serve, backtest")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// positional args override the configured symbol list
	symbols := flag.Args()

	if err := app.Run(*mode, symbols); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

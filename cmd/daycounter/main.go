package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "daycounter/docs"
	daycounter "daycounter/internal"
	"daycounter/internal/config"
)

// @title           Day Counter API
// @version         1.0
// @description     Counts the whole days elapsed since a persisted start date
// @BasePath        /

func main() {
	envFile := flag.String("env", config.DefaultEnvFile, "Path to the .env file")
	port := flag.String("port", "", "HTTP server port (e.g. ':8080'), overrides DAYCOUNTER_PORT")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.SetTimeFormat(time.Stamp)
	log.SetReportCaller(true)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	server, err := daycounter.NewServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer server.Close()

	mux := http.NewServeMux()
	mux.Handle("/", server.SetupRoutes())
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	log.Info("Server starting on", "port", cfg.Port)
	log.Fatal(http.ListenAndServe(cfg.Port, mux))
}

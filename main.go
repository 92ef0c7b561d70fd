package main

import (
	"log"
	"os"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"load-simulation/internal/handler"
	"load-simulation/internal/logging"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	h := handler.New(logger)

	logger.Info("Scenario service starting", zap.String("port", port))
	if err := fasthttp.ListenAndServe(":"+port, h.Handle); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

package main

import (
	"log"

	_ "taskhub/docs"
	"taskhub/internal/config"
	"taskhub/internal/logger"
	"taskhub/internal/server"
)

// @title           TaskHub API
// @version         1.0
// @description     Project and task collaboration backend.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

// @schemes http
func main() {
	cfg := config.Load()

	zapLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}
	defer zapLog.Sync()

	s, err := server.Init(cfg, zapLog)
	if err != nil {
		log.Fatalf("Server initialization failed: %v", err)
	}

	s.Run()
}

package main

import (
	"os"
	"sync"
	"time"

	"github.com/avelichko/kritika/config"
	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/handler"
	"github.com/avelichko/kritika/internal/jsonlog"
	"github.com/avelichko/kritika/repository"
	"github.com/avelichko/kritika/repository/postgres"
	"github.com/avelichko/kritika/service"
	"github.com/jellydator/ttlcache/v3"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title  Kritika API
// @version 1.0.0
// @description This is an API service for reviewing and rating titles.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Other shared resources: waitgroup and the bearer-token principal cache.
	// The cache TTL bounds how long a role change or deletion can lag behind
	// for an already-issued token.
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, *data.User](5 * time.Minute))
	go cache.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, repo)
	handler := handler.New(cfg, logger, cache, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

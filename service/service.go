package service

import (
	"sync"

	"github.com/avelichko/kritika/config"
	"github.com/avelichko/kritika/internal/jsonlog"
	"github.com/avelichko/kritika/repository"
)

type Service interface {
	auth
	users
	categories
	genres
	titles
	reviews
	comments
}

// service defines the service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service. The WaitGroup tracks background
// goroutines (email delivery) so the server can drain them on shutdown.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
	}
}

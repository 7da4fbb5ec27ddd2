package handler

import (
	"github.com/avelichko/kritika/config"
	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/jsonlog"
	"github.com/avelichko/kritika/service"
	"github.com/jellydator/ttlcache/v3"
)

// Handler defines the handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	cache   *ttlcache.Cache[string, *data.User]
	service service.Service
}

// New creates a new instance of Handler. The cache sits in front of the
// bearer-token user lookup.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, *data.User], service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		cache:   cache,
		service: service,
	}
}

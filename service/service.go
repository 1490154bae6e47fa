package service

import (
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/doyosi/widgeta/model"
)

// Service answers the widget endpoints: paginated envelopes, record
// mutations and the locale switch.
type Service struct {
	DB     *gorm.DB
	Config *model.Config

	cacheMu     sync.Mutex
	sourceCache map[string]model.CachedSourceConfig
}

func NewService(db *gorm.DB, config *model.Config) *Service {
	if config == nil {
		// default if no config
		config = &model.Config{}
	}

	if config.AccessCheckFunc == nil {
		config.AccessCheckFunc = func(ctx *gin.Context, source, action, fieldName string) bool {
			return true // default permit all
		}
	}

	if config.ConfigDir == "" {
		config.ConfigDir = "config/widgeta"
	}

	if config.PerPage == 0 {
		config.PerPage = 15
	}

	if config.LocaleCookieName == "" {
		config.LocaleCookieName = "locale"
	}

	if config.DebugSQL {
		db = db.Debug()
	}

	return &Service{
		DB:          db,
		Config:      config,
		sourceCache: make(map[string]model.CachedSourceConfig),
	}
}

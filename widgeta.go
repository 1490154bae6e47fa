package widgeta

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/doyosi/widgeta/controller"
	"github.com/doyosi/widgeta/model"
	"github.com/doyosi/widgeta/service"
)

type Impl struct {
	Service *service.Service
}

// New wires the widget backend into an existing Gin engine: envelope lists,
// record mutations and the locale switch under /widgeta. A nil config gets
// defaults.
func New(r *gin.Engine, db *gorm.DB, config *model.Config) *Impl {
	svc := service.NewService(db, config)
	controller.RegisterRoutes(r, svc)

	return &Impl{Service: svc}
}

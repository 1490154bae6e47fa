package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/doyosi/widgeta/service"
)

// RegisterRoutes mounts the widget endpoints on the /widgeta group:
// envelope lists for the grid, record mutations for the form and delete
// widgets, and the locale switch.
func RegisterRoutes(r *gin.Engine, service *service.Service) {
	group := r.Group("/widgeta")

	group.POST("/locale", service.SwitchLocale)
	group.POST("/records/create", service.Create)
	group.POST("/records/update", service.Update)

	group.GET("/:source", service.List)
	group.DELETE("/:source/:id", service.Delete)
}

package service

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func logf(format string, args ...any) {
	log.Printf("widgeta: "+format, args...)
}

func (s *Service) SomethingWentWrong(ctx *gin.Context, logString string) {
	log.Println("widgeta: " + logString + " url=" + ctx.Request.URL.String())
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, see log for details."})
}

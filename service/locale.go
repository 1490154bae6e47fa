package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const localeCookieMaxAge = 365 * 24 * 60 * 60

// SwitchLocale answers POST /widgeta/locale. The accepted locale is stored
// in a cookie; rendering in the new locale is the embedding app's concern.
func (s *Service) SwitchLocale(ctx *gin.Context) {
	var payload struct {
		Locale string `json:"locale"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil || payload.Locale == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Locale is required"})
		return
	}

	if len(s.Config.Locales) > 0 && !localeAllowed(s.Config.Locales, payload.Locale) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown locale: " + payload.Locale})
		return
	}

	ctx.SetCookie(s.Config.LocaleCookieName, payload.Locale, localeCookieMaxAge, "/", "", false, false)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Locale switched", "locale": payload.Locale})
}

func localeAllowed(locales []string, locale string) bool {
	for _, l := range locales {
		if l == locale {
			return true
		}
	}
	return false
}

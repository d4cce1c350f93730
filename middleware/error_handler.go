package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"health-portal/models"
	"health-portal/utils"
)

// ErrorHandler отправляет в Sentry ошибки, накопленные обработчиками через
// c.Error. Локальные ожидаемые отказы (not found) не репортим.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors {
				if errors.Is(ginErr.Err, models.ErrNotFound) {
					continue
				}
				utils.CaptureError(ginErr.Err, map[string]interface{}{
					"endpoint": c.Request.URL.Path,
					"method":   c.Request.Method,
					"status":   c.Writer.Status(),
				})
			}
		}
	}
}

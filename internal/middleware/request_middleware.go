package middleware

import (
	"fmt"
	"net/http"

	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or assigns a fresh uuid.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(utils.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Recovery turns panics into a 500 envelope. Panic details are only echoed
// when showDetails is set (development).
func Recovery(showDetails bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.LogError(fmt.Errorf("panic: %v", recovered), "Recovered from panic", map[string]interface{}{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(utils.RequestIDKey),
		})
		details := ""
		if showDetails {
			details = fmt.Sprint(recovered)
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Something went wrong!", details))
	})
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/family-graph-api/internal/constants"
	"go.uber.org/zap"
)

// RequestLogger tags every request with an ID and logs it once it completes.
// A client supplied X-Request-ID is kept.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(constants.ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
			"duration", time.Since(start),
		}
		if user, ok := CurrentUser(c); ok {
			fields = append(fields, "user_id", user.ID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Errorw("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}

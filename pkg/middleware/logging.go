package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rankchoice/vote/pkg/logger"
)

// RequestLogger logs one line per request through the leveled logger.
// 5xx responses log at error, 4xx at warn, everything else at debug.
func RequestLogger() gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}
		line := "%s %s -> %d (%s) %s"
		args := []interface{}{c.Request.Method, path, status, time.Since(start).Round(time.Microsecond), c.ClientIP()}
		switch {
		case status >= 500:
			log.Errorf(line, args...)
		case status >= 400:
			log.Warnf(line, args...)
		default:
			log.Debugf(line, args...)
		}
	}
}

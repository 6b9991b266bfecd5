package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anastheace/faultandtms/pkg/response"
)

// BodyLimit caps request bodies at maxBytes (1<<20 = 1 MiB).
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		// chunked bodies surface as *http.MaxBytesError when handlers bind
		c.Next()
	}
}

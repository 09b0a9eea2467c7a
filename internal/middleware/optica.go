package middleware

import (
	"net/http"
	"strings"

	"optigest/internal/apierror"

	"github.com/gin-gonic/gin"
)

const (
	// OpticaHeader carries the tenant identifier on every /v1 request.
	OpticaHeader = "X-Optica-Id"
	opticaKey    = "optica_id"
)

// OpticaID enforces the tenant header. The value is opaque to the backend:
// it only ever scopes queries, it is never interpreted.
func OpticaID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(OpticaHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Falta el header X-Optica-Id"))
			return
		}
		c.Set(opticaKey, id)
		c.Next()
	}
}

// GetOpticaID returns the tenant id set by OpticaID. Routes behind the
// middleware can rely on it being non-empty.
func GetOpticaID(c *gin.Context) string {
	return c.GetString(opticaKey)
}

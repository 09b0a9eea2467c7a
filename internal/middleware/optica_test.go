package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func opticaTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ping", OpticaID(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"optica": GetOpticaID(c)})
	})
	return r
}

func TestOpticaID_HeaderRequerido(t *testing.T) {
	r := opticaTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "X-Optica-Id")
}

func TestOpticaID_HeaderVacioRechazado(t *testing.T) {
	r := opticaTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(OpticaHeader, "   ")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpticaID_PropagaTenant(t *testing.T) {
	r := opticaTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(OpticaHeader, "optica-centro")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "optica-centro")
}

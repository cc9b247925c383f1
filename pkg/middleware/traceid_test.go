package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTraceIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.Use(TraceIDMiddleware())
		r.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString("trace_id"))
		})
		return r
	}

	t.Run("honors the caller's trace id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Trace-ID", "upstream-trace-42")

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, "upstream-trace-42", w.Body.String())
		assert.Equal(t, "upstream-trace-42", w.Header().Get("X-Trace-ID"))
	})

	t.Run("generates one when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)

		newRouter().ServeHTTP(w, req)

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get("X-Trace-ID"))
	})
}

package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_LogsRequestWithID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(RequestIDKey, "req-1")
		c.Next()
	})
	r.Use(Middleware(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		From(c).Info("inside")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	for _, entry := range logs.All() {
		if entry.ContextMap()["request_id"] != "req-1" {
			t.Fatalf("entry %q missing request_id: %v", entry.Message, entry.ContextMap())
		}
	}
	if got := logs.All()[1].ContextMap()["status"]; got != int64(http.StatusNoContent) {
		t.Fatalf("status field = %v", got)
	}
}

func TestFrom_OutsideRequest(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if From(c) == nil {
		t.Fatalf("expected a logger")
	}
}

package ports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type MetricsPort interface {
	RecordMetrics(c *gin.Context, start time.Time)
	RecordAPICall(method, path string, status int, start time.Time)
	Handler() http.Handler
	Middleware() gin.HandlerFunc
}

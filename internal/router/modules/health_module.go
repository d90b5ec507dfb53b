package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/response"
)

type HealthModule struct {
	Driver string
	Redis  *redis.Client
}

func NewHealthModule(driver string, rdb *redis.Client) *HealthModule {
	return &HealthModule{Driver: driver, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		response.Success[any](c, http.StatusOK, gin.H{"status": "ok", "store": m.Driver}, "healthy", nil)
	})

	// expvar metrics, rate-limited per IP
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

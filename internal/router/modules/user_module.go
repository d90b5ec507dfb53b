package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// UserModule wires the account endpoints under /users.
// Public: login, logout, register, list, get, search.
// PUT and DELETE on /users/:id require the owner's access token when AuthRequired is set.
type UserModule struct {
	Handler      *handlers.UserHandler
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	AuthRequired bool
	// Allow bypasses rate limits; nil limits everyone
	Allow middleware.AllowFunc
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client, authRequired bool, allow middleware.AllowFunc) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Redis: rdb, AuthRequired: authRequired, Allow: allow}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), m.Allow)   // 10 req/min per IP
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), m.Allow) // 5 req/min per IP

	users := rg.Group("/users")
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/logout", m.Handler.Logout)
	users.POST("/register", registerLimiter, m.Handler.Register)
	users.GET("", m.Handler.GetAll)
	users.GET("/search", m.Handler.Search)
	users.GET("/:id", m.Handler.GetByID)

	write := users.Group("")
	if m.AuthRequired && m.JWT != nil {
		write.Use(middleware.JWTAuth(m.JWT), middleware.RequireOwner("id"))
	}
	{
		write.PUT("/:id", m.Handler.Update)
		write.DELETE("/:id", m.Handler.Delete)
	}
}

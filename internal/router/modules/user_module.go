package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/aryawidjaya/user-accounts/internal/interface/http"
	"github.com/aryawidjaya/user-accounts/internal/interface/middleware"
)

// UserModule wires the user CRUD handlers into routes:
//
//	POST   /api/users
//	GET    /api/users
//	GET    /api/users/search
//	GET    /api/users/:id
//	PUT    /api/users/:id
//	DELETE /api/users/:id
//
// Write endpoints carry a per-IP rate limit. Redis may be nil, in which
// case the limiters are no-ops.
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByIP())
	writeLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIPAndPath())

	users := rg.Group("/users")
	{
		users.POST("", registerLimiter, m.Handler.Register)
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
	}
}

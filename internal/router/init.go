package router

import (
	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/container"
	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/internal/router/modules"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

type UserModuleDeps struct {
	Service *application.AccountService
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()

	service := application.NewAccountService(
		container.GetUserRepo(),
		helpers.NewBcryptHasher(cfg.BcryptCost),
		container.GetPublisher(),
		container.GetUserIndex(),
		container.GetLogger(),
	)

	handler := handlers.NewUserHandler(
		service,
		container.GetJWT(),
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
	)

	return UserModuleDeps{
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, storeDriver string) {
	cfg := container.GetConfig()
	userDeps := buildUserDeps()

	var allow middleware.AllowFunc
	if cfg.Env == "development" {
		allow = middleware.AllowPrivateIP()
	}

	r.Add(modules.NewHealthModule(storeDriver, container.GetRedis()))
	r.Add(modules.NewUserModule(userDeps.Handler, container.GetJWT(), container.GetRedis(), cfg.AuthRequired, allow))
}

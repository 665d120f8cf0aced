package router

import (
	"github.com/monocle-dev/herald/internal/handlers"
	"github.com/monocle-dev/herald/internal/services"
)

func authResource(deps Deps) Resource {
	users := services.NewUserService(deps.DB, deps.Hasher)
	h := handlers.NewAuthHandler(services.NewAuthService(users, deps.Tokens, deps.Hasher))
	return Resource{Path: "/auth", Register: h.Register}
}

func userResource(deps Deps) Resource {
	h := handlers.NewUserHandler(services.NewUserService(deps.DB, deps.Hasher))
	return Resource{Path: "/users", Register: h.Register}
}

func healthResource(deps Deps) Resource {
	h := handlers.NewHealthHandler(services.NewHealthService(deps.DB))
	return Resource{Path: "/healths", Register: h.Register}
}

func notificationResource(deps Deps) Resource {
	var publisher services.Publisher
	var ws handlers.WebSocketServer
	if deps.Hub != nil {
		publisher = deps.Hub
		ws = deps.Hub
	}

	h := handlers.NewNotificationHandler(services.NewNotificationService(deps.DB, publisher), ws)
	return Resource{Path: "/notifications", Register: h.Register}
}

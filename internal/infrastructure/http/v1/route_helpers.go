package v1

import (
	"github.com/gin-gonic/gin"

	"invacc/internal/infrastructure/http/v1/middleware"
)

// route is one protected endpoint and the permission it requires.
type route struct {
	method     string
	path       string
	permission string
	handler    gin.HandlerFunc
}

// registerRoutes wires routes onto group, each behind its permission check.
// An empty permission leaves the route open to any authenticated user.
func registerRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := make([]gin.HandlerFunc, 0, 2)
		if r.permission != "" {
			handlers = append(handlers, middleware.RequirePermission(r.permission))
		}
		handlers = append(handlers, r.handler)
		group.Handle(r.method, r.path, handlers...)
	}
}

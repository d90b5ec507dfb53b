package router

import "github.com/gin-gonic/gin"

// Registry collects group middleware and modules, then mounts them all at once
// under a common prefix.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	if prefix == "" {
		prefix = "/api"
	}
	return &Registry{Engine: engine, API: engine.Group(prefix)}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll applies middleware before routes so every module sees it.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
)

// Route associa método e caminho a um handler; Middlewares rodam na ordem da lista
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []alice.Constructor
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

func WithRoutes(routes ...Route) ConfigRouter {
	return func(r *Router) {
		r.AddRoutes(routes...)
	}
}

func New(configs ...ConfigRouter) Router {
	hr := httprouter.New()
	hr.NotFound = http.HandlerFunc(notFound)
	hr.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)
	// Preflight fica com o middleware de CORS
	hr.HandleOPTIONS = false

	r := &Router{router: hr}
	for _, configure := range configs {
		configure(r)
	}

	return *r
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		r.router.Handler(route.Method, route.Path, alice.New(route.Middlewares...).Then(route.Handler))
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada", r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não permitido", r.Method)
}

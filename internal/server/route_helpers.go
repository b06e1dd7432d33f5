package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/bobmcallan/briefing-portal/internal/handlers"
)

// RouteHandler is a function type for HTTP handlers.
type RouteHandler func(http.ResponseWriter, *http.Request)

// MethodRouter maps HTTP methods to handlers.
type MethodRouter map[string]RouteHandler

// RouteByMethod routes requests based on HTTP method. Unmatched methods get
// a JSON 405 with an Allow header listing the registered methods.
func RouteByMethod(w http.ResponseWriter, r *http.Request, routes MethodRouter) {
	handler, ok := routes[r.Method]
	if !ok {
		allowed := make([]string, 0, len(routes))
		for m := range routes {
			allowed = append(allowed, m)
		}
		sort.Strings(allowed)
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	handler(w, r)
}

// RouteResourceCollection handles standard list + create pattern.
// GET -> list, POST -> create.
func RouteResourceCollection(w http.ResponseWriter, r *http.Request, list, create RouteHandler) {
	routes := make(MethodRouter)
	if list != nil {
		routes["GET"] = list
	}
	if create != nil {
		routes["POST"] = create
	}
	RouteByMethod(w, r, routes)
}

// RouteResourceItem handles standard get + update + delete pattern.
// GET -> get, PUT -> update, DELETE -> delete.
func RouteResourceItem(w http.ResponseWriter, r *http.Request, get, update, del RouteHandler) {
	routes := make(MethodRouter)
	if get != nil {
		routes["GET"] = get
	}
	if update != nil {
		routes["PUT"] = update
	}
	if del != nil {
		routes["DELETE"] = del
	}
	RouteByMethod(w, r, routes)
}

package server

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/plainwire/http1"
	"github.com/gorilla/mux"
)

// A RouteFunc handles a request matched by a Router. The vars map holds the
// values of the variables in the route pattern, and is never nil.
type RouteFunc func(req *http1.Request, vars map[string]string) *http1.Response

// A Router dispatches requests to RouteFuncs by method and path. Patterns use
// the gorilla/mux template syntax, for example "/people/{name}" or
// "/items/{id:[0-9]+}".
//
// A Router is a Handler. A request whose path matches no route gets a 404
// response; one whose path matches only under other methods gets a 405
// response with an Allow header.
//
// A Router is not safe for concurrent registration and dispatch. Register
// all routes before serving.
type Router struct {
	mux     *mux.Router
	funcs   map[*mux.Route]RouteFunc
	methods mapset.Set[http1.Method] // every method with at least one route
}

// NewRouter constructs an empty Router.
func NewRouter() *Router {
	return &Router{
		mux:     mux.NewRouter(),
		funcs:   make(map[*mux.Route]RouteFunc),
		methods: mapset.New[http1.Method](),
	}
}

// Handle registers f to handle requests with the given method whose path
// matches pattern. Routes are matched in order of registration.
func (r *Router) Handle(method http1.Method, pattern string, f RouteFunc) error {
	if f == nil {
		return fmt.Errorf("route %s %s: nil handler", method, pattern)
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("route %s %s: pattern must begin with /", method, pattern)
	}
	route := r.mux.NewRoute().Path(pattern).Methods(method.String())
	if err := route.GetError(); err != nil {
		return fmt.Errorf("route %s %s: %w", method, pattern, err)
	}
	r.funcs[route] = f
	r.methods.Add(method)
	return nil
}

// Len reports the number of registered routes.
func (r *Router) Len() int { return len(r.funcs) }

// ServeRequest implements the Handler interface.
func (r *Router) ServeRequest(req *http1.Request) *http1.Response {
	hreq, err := http.NewRequest(req.Method.String(), req.Path.Full, nil)
	if err != nil {
		return errorResponse(http1.StatusBadRequest, fmt.Sprintf("invalid request target: %v", err))
	}

	var m mux.RouteMatch
	if r.mux.Match(hreq, &m) {
		if f, ok := r.funcs[m.Route]; ok {
			vars := m.Vars
			if vars == nil {
				vars = make(map[string]string)
			}
			if rsp := f(req, vars); rsp != nil {
				return rsp
			}
			return errorResponse(http1.StatusInternalServerError, "handler produced no response")
		}
	}
	if m.MatchErr == mux.ErrMethodMismatch {
		rsp := errorResponse(http1.StatusMethodNotAllowed, "method not allowed")
		rsp.Headers.Add("Allow", strings.Join(r.allowed(hreq), ", "))
		return rsp
	}
	return errorResponse(http1.StatusNotFound, "not found")
}

// allowed returns the names of the methods under which some route matches
// the path of hreq, in lexicographic order.
func (r *Router) allowed(hreq *http.Request) []string {
	names := mapset.New[string]()
	for method := range r.methods {
		probe := hreq.Clone(hreq.Context())
		probe.Method = method.String()
		var m mux.RouteMatch
		if r.mux.Match(probe, &m) {
			names.Add(probe.Method)
		}
	}
	return slices.Sorted(maps.Keys(names))
}

func errorResponse(code http1.StatusCode, msg string) *http1.Response {
	return http1.NewResponse(code, http1.TextPlain, msg+"\n")
}

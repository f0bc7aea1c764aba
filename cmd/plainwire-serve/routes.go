package main

import (
	"fmt"
	"strings"

	"github.com/creachadair/plainwire/ast"
	"github.com/creachadair/plainwire/ast/cursor"
	"github.com/creachadair/plainwire/decode"
	"github.com/creachadair/plainwire/http1"
	"github.com/creachadair/plainwire/server"
)

// newRouter builds a router serving the fixed routes of cfg, followed by the
// built-in endpoints.
func newRouter(cfg *server.Config) (*server.Router, error) {
	r := server.NewRouter()
	if err := cfg.AddRoutes(r); err != nil {
		return nil, err
	}
	builtin := []struct {
		method  http1.Method
		pattern string
		f       server.RouteFunc
	}{
		{http1.MethodPost, "/json", normalize(cfg.MaxJSONDepth)},
		{http1.MethodGet, "/hello/{name}", hello},
		{http1.MethodPost, "/person", summarize(cfg.MaxJSONDepth)},
	}
	for _, b := range builtin {
		if err := r.Handle(b.method, b.pattern, b.f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func badRequest(err error) *http1.Response {
	return http1.NewResponse(http1.StatusBadRequest, http1.TextPlain, err.Error()+"\n")
}

// checkJSON reports an error if req declares a content type other than JSON.
func checkJSON(req *http1.Request) error {
	h, ok := req.Headers.Lookup("Content-Type")
	if !ok || strings.HasPrefix(h.Value(), string(http1.ApplicationJSON)) {
		return nil
	}
	return fmt.Errorf("unsupported content type %q", h.Value())
}

// normalize returns a route that parses the request body and responds with
// its canonical rendering. If the query has a "path" parameter, only the
// value at that dotted path is returned.
func normalize(maxDepth int) server.RouteFunc {
	return func(req *http1.Request, _ map[string]string) *http1.Response {
		if err := checkJSON(req); err != nil {
			return badRequest(err)
		}
		v, err := ast.ParseLimit(req.Body, maxDepth)
		if err != nil {
			return badRequest(err)
		}
		if path := req.Path.Query["path"]; path != "" {
			c := cursor.New(v).Down(cursor.Split(path)...)
			if err := c.Err(); err != nil {
				return http1.NewResponse(http1.StatusNotFound, http1.TextPlain, err.Error()+"\n")
			}
			v = c.Value()
		}
		return http1.NewResponse(http1.StatusOK, http1.ApplicationJSON, v.JSON())
	}
}

// hello responds with a JSON greeting for the name in the path. Strings are
// rendered without escaping, so a name containing a double quote is refused.
func hello(_ *http1.Request, vars map[string]string) *http1.Response {
	name := vars["name"]
	if strings.Contains(name, `"`) {
		return badRequest(fmt.Errorf("name %q contains a double quote", name))
	}
	v := ast.ToValue(map[string]any{
		"greeting": "Hello, " + name,
		"length":   len(name),
	})
	return http1.NewResponse(http1.StatusOK, http1.ApplicationJSON, v.JSON())
}

type person struct {
	name    string
	age     int64
	student bool
	courses []string
	city    string
}

func (p *person) DecodeValue(v ast.Value) error {
	p.name = decode.String(v, "name")
	p.age = decode.Int(v, "age")
	p.student = decode.Bool(v, "is_student")
	p.courses = decode.Strings(v, "courses")
	p.city = decode.String(v, "address", "city")
	return nil
}

// summarize returns a route that decodes a person document and responds
// with a one-line description.
func summarize(maxDepth int) server.RouteFunc {
	return func(req *http1.Request, _ map[string]string) *http1.Response {
		if err := checkJSON(req); err != nil {
			return badRequest(err)
		}
		v, err := ast.ParseLimit(req.Body, maxDepth)
		if err != nil {
			return badRequest(err)
		}
		var p person
		if err := decode.Into(v, &p); err != nil {
			return badRequest(err)
		}
		kind := "not a student"
		if p.student {
			kind = "a student"
		}
		msg := fmt.Sprintf("%s, age %d, %s, lives in %s, takes %d courses\n",
			p.name, p.age, kind, p.city, len(p.courses))
		return http1.NewResponse(http1.StatusOK, http1.TextPlain, msg)
	}
}

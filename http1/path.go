package http1

import "strings"

// A Path is a request target decomposed into its parts.
type Path struct {
	Full string // the request target, unmodified
	Path string // the target with query and fragment removed

	// Query holds the key-value pairs of the query string. It is nil if the
	// target has no "?". A pair without "=" has an empty value. If a key is
	// repeated, the last value wins. Keys and values are not unescaped.
	Query map[string]string

	Fragment    string // the text after "#"
	HasFragment bool   // whether the target has a "#"
}

// ParsePath decomposes a request target. The fragment is separated first, so
// a "#" following a query string ends the query.
func ParsePath(target string) Path {
	p := Path{Full: target}
	rest, frag, ok := strings.Cut(target, "#")
	if ok {
		p.Fragment, p.HasFragment = frag, true
	}
	rest, query, ok := strings.Cut(rest, "?")
	p.Path = rest
	if ok {
		p.Query = parseQuery(query)
	}
	return p
}

func parseQuery(query string) map[string]string {
	m := make(map[string]string)
	for pair := range strings.SplitSeq(query, "&") {
		if pair == "" {
			continue
		}
		key, val, _ := strings.Cut(pair, "=")
		m[key] = val
	}
	return m
}

func (p Path) String() string { return p.Full }

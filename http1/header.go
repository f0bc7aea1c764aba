package http1

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// HeaderKind classifies a header by its name.
type HeaderKind byte

// Constants defining the recognized header kinds. Any header whose name is
// not recognized has kind KindOther.
const (
	KindOther HeaderKind = iota
	KindContentType
	KindContentLength
	KindUserAgent
	KindAccept
	KindHost
	KindAuthorization
	KindCacheControl
	KindConnection
	KindCookie
	KindReferer
)

// headerName gives the canonical name of each recognized kind.
var headerName = [...]string{
	KindOther:         "",
	KindContentType:   "Content-Type",
	KindContentLength: "Content-Length",
	KindUserAgent:     "User-Agent",
	KindAccept:        "Accept",
	KindHost:          "Host",
	KindAuthorization: "Authorization",
	KindCacheControl:  "Cache-Control",
	KindConnection:    "Connection",
	KindCookie:        "Cookie",
	KindReferer:       "Referer",
}

// String returns the canonical header name for k, or "" for KindOther.
func (k HeaderKind) String() string {
	if int(k) >= len(headerName) {
		return ""
	}
	return headerName[k]
}

// KindOf classifies a header name. Names are compared without regard to case.
func KindOf(name string) HeaderKind {
	for k, canon := range headerName {
		if k != 0 && strings.EqualFold(name, canon) {
			return HeaderKind(k)
		}
	}
	return KindOther
}

// A Header is the classified value of a single header.
type Header struct {
	Kind HeaderKind

	Type   ContentType // for KindContentType
	Length uint64      // for KindContentLength
	Text   string      // for all other kinds, the raw value
}

// NewHeader classifies the header with the given name and value. A
// Content-Length whose value is not an unsigned integer has kind KindOther.
func NewHeader(name, value string) Header {
	switch k := KindOf(name); k {
	case KindContentType:
		return TypeHeader(ParseContentType(value))
	case KindContentLength:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Header{Kind: KindOther, Text: value}
		}
		return LengthHeader(n)
	default:
		return Header{Kind: k, Text: value}
	}
}

// TypeHeader returns a Content-Type header value.
func TypeHeader(ct ContentType) Header { return Header{Kind: KindContentType, Type: ct} }

// LengthHeader returns a Content-Length header value.
func LengthHeader(n uint64) Header { return Header{Kind: KindContentLength, Length: n} }

// Value renders h as header text.
func (h Header) Value() string {
	switch h.Kind {
	case KindContentType:
		return h.Type.String()
	case KindContentLength:
		return strconv.FormatUint(h.Length, 10)
	default:
		return h.Text
	}
}

// Headers maps header names, in their original case, to values.
type Headers map[string]Header

// Set adds or replaces the header with the given name.
func (h Headers) Set(name string, v Header) { h[name] = v }

// Add classifies value and stores it under name, replacing any existing
// header with exactly that name.
func (h Headers) Add(name, value string) { h[name] = NewHeader(name, value) }

// Lookup returns the header with the given name, matched without regard to
// case. An exact match is preferred.
func (h Headers) Lookup(name string) (Header, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}
	for key, v := range h {
		if strings.EqualFold(key, name) {
			return v, true
		}
	}
	return Header{}, false
}

// Get returns the rendered value of the named header, or "".
func (h Headers) Get(name string) string {
	v, _ := h.Lookup(name)
	return v.Value()
}

// Names returns the header names of h in lexicographic order.
func (h Headers) Names() []string { return slices.Sorted(maps.Keys(h)) }

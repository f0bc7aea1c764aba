// Package http1 parses and serializes HTTP/1.x messages.
//
// ParseRequest decodes the text of a request into a *Request, and
// SerializeResponse (or Response.String) encodes a *Response as text. The
// reverse directions, SerializeRequest and ParseResponse, are also provided.
//
// Parsing works line by line through three phases: the start line, the
// headers, and the body. The body is everything after the first blank line,
// reassembled with CRLF line terminators. Content-Length is not used to
// delimit the body, and chunked transfer encoding is not supported.
//
// Parse errors have concrete type *RequestError, which unwraps to an
// ErrorKind:
//
//	req, err := http1.ParseRequest(text)
//	if errors.Is(err, http1.InvalidMethod) {
//	   // ...
//	}
package http1

import "strconv"

// Method is a request method.
type Method byte

// Constants defining the recognized request methods.
const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
	MethodDelete
	MethodHead
	MethodOptions
	MethodPatch
	MethodTrace
	MethodConnect
)

var methodStr = [...]string{
	0:             "",
	MethodGet:     "GET",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodHead:    "HEAD",
	MethodOptions: "OPTIONS",
	MethodPatch:   "PATCH",
	MethodTrace:   "TRACE",
	MethodConnect: "CONNECT",
}

func (m Method) String() string {
	if int(m) >= len(methodStr) {
		return ""
	}
	return methodStr[m]
}

// ParseMethod returns the method named by s. Method names are case-sensitive.
// If s does not name a method, the error has kind InvalidMethod.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodStr {
		if m != 0 && name == s {
			return Method(m), nil
		}
	}
	return 0, errorf(InvalidMethod, "%q", s)
}

// Version is an HTTP protocol version.
type Version byte

// Constants defining the recognized protocol versions.
const (
	Version10 Version = iota + 1 // HTTP/1.0
	Version11                    // HTTP/1.1
	Version20                    // HTTP/2.0
)

var versionStr = [...]string{
	0:         "",
	Version10: "HTTP/1.0",
	Version11: "HTTP/1.1",
	Version20: "HTTP/2.0",
}

func (v Version) String() string {
	if int(v) >= len(versionStr) {
		return ""
	}
	return versionStr[v]
}

// ParseVersion returns the version named by s. If s is not one of the
// recognized version strings, the error has kind InvalidVersion.
func ParseVersion(s string) (Version, error) {
	for v, name := range versionStr {
		if v != 0 && name == s {
			return Version(v), nil
		}
	}
	return 0, errorf(InvalidVersion, "%q", s)
}

// StatusCode is a response status code. The value is the numeric code.
type StatusCode int

// Constants defining the recognized status codes.
const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusAccepted            StatusCode = 202
	StatusNoContent           StatusCode = 204
	StatusMovedPermanently    StatusCode = 301
	StatusFound               StatusCode = 302
	StatusNotModified         StatusCode = 304
	StatusBadRequest          StatusCode = 400
	StatusUnauthorized        StatusCode = 401
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusBadGateway          StatusCode = 502
	StatusServiceUnavailable  StatusCode = 503
)

var statusText = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusAccepted:            "Accepted",
	StatusNoContent:           "No Content",
	StatusMovedPermanently:    "Moved Permanently",
	StatusFound:               "Found",
	StatusNotModified:         "Not Modified",
	StatusBadRequest:          "Bad Request",
	StatusUnauthorized:        "Unauthorized",
	StatusForbidden:           "Forbidden",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
	StatusBadGateway:          "Bad Gateway",
	StatusServiceUnavailable:  "Service Unavailable",
}

// Text returns the reason phrase for s, or "" if s is not recognized.
func (s StatusCode) Text() string { return statusText[s] }

// Known reports whether s is a recognized status code.
func (s StatusCode) Known() bool { _, ok := statusText[s]; return ok }

// String returns the code and reason phrase, for example "404 Not Found".
func (s StatusCode) String() string { return strconv.Itoa(int(s)) + " " + s.Text() }

// ParseStatusCode returns the status code denoted by the decimal string s.
// If s is not a recognized code, the error has kind InvalidStatus.
func ParseStatusCode(s string) (StatusCode, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !StatusCode(n).Known() {
		return 0, errorf(InvalidStatus, "%q", s)
	}
	return StatusCode(n), nil
}

// ContentType is a MIME type carried by a Content-Type header. The constants
// below are the recognized types; any other string is carried as-is.
type ContentType string

// Constants defining the recognized content types.
const (
	TextHTML          ContentType = "text/html"
	ApplicationJSON   ContentType = "application/json"
	ApplicationXML    ContentType = "application/xml"
	TextPlain         ContentType = "text/plain"
	MultipartFormData ContentType = "multipart/form-data"
	FormURLEncoded    ContentType = "application/x-www-form-urlencoded"
	EventStream       ContentType = "text/event-stream"
)

// ParseContentType returns the content type denoted by s. Parsing does not
// fail: an unrecognized type is returned unchanged.
func ParseContentType(s string) ContentType { return ContentType(s) }

// Known reports whether c is one of the recognized content types.
func (c ContentType) Known() bool {
	switch c {
	case TextHTML, ApplicationJSON, ApplicationXML, TextPlain,
		MultipartFormData, FormURLEncoded, EventStream:
		return true
	}
	return false
}

func (c ContentType) String() string { return string(c) }

// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package http1

import (
	"strconv"
	"strings"
)

// A Response is an HTTP response.
type Response struct {
	Version Version
	Status  StatusCode
	Headers Headers

	Body    string
	HasBody bool // whether the response has a body section
}

// NewResponse constructs an HTTP/1.1 response with the given status. If ct is
// not empty, the response carries body along with Content-Type and
// Content-Length headers describing it.
func NewResponse(status StatusCode, ct ContentType, body string) *Response {
	rsp := &Response{Version: Version11, Status: status, Headers: make(Headers)}
	if ct != "" {
		rsp.Headers.Set("Content-Type", TypeHeader(ct))
		rsp.SetBody(body)
	}
	return rsp
}

// SetBody sets the body of r and its Content-Length header.
func (r *Response) SetBody(body string) {
	if r.Headers == nil {
		r.Headers = make(Headers)
	}
	r.Body, r.HasBody = body, true
	r.Headers.Set("Content-Length", LengthHeader(uint64(len(body))))
}

// String encodes r as HTTP response text: the status line, one line per
// header, a blank line, and the body (if any) verbatim. The body is not
// checked against any Content-Length header.
func (r *Response) String() string {
	var sb strings.Builder
	sb.WriteString(r.Version.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(r.Status)))
	sb.WriteByte(' ')
	sb.WriteString(r.Status.Text())
	sb.WriteString("\r\n")
	writeMessage(&sb, r.Headers, r.Body, r.HasBody)
	return sb.String()
}

// SerializeResponse encodes r as HTTP response text. It is equivalent to
// r.String().
func SerializeResponse(r *Response) string { return r.String() }

// ParseResponse parses the text of an HTTP response. The status line has the
// form "VERSION CODE REASON"; the reason phrase is not checked. Headers and
// body are handled as for ParseRequest.
//
// Errors have concrete type *RequestError.
func ParseResponse(text string) (*Response, error) {
	rsp := new(Response)
	msg, err := parseMessage(text, func(line string) error {
		vers, rest, ok := strings.Cut(line, " ")
		if !ok {
			return errorf(InvalidRequest, "malformed status line: %q", line)
		}
		v, err := ParseVersion(vers)
		if err != nil {
			return err
		}
		code, _, _ := strings.Cut(strings.TrimLeft(rest, " "), " ")
		status, err := ParseStatusCode(code)
		if err != nil {
			return err
		}
		rsp.Version, rsp.Status = v, status
		return nil
	})
	if err != nil {
		return nil, err
	}
	rsp.Headers = msg.headers
	rsp.Body, rsp.HasBody = msg.body.String(), msg.hasBody
	return rsp, nil
}

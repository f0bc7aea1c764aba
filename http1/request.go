// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package http1

import "strings"

// A Request is a parsed HTTP request.
type Request struct {
	Method  Method
	Path    Path
	Version Version
	Headers Headers

	Body    string
	HasBody bool // whether the message had a body section
}

// ParseRequest parses the text of an HTTP request.
//
// Leading whitespace is discarded. The request line must consist of exactly
// three whitespace-separated fields: a method, a request target, and a
// version. Each following non-empty line is a header, split at its first
// colon. Header names and values are trimmed, and a header repeated with the
// same name replaces the earlier one. After the first empty line, the rest of
// the input is the body, with its lines joined by CRLF.
//
// A header line whose name is empty after trimming, such as ": v", is
// rejected with InvalidHeader even though it contains a colon.
//
// Errors have concrete type *RequestError.
func ParseRequest(text string) (*Request, error) {
	req := new(Request)
	msg, err := parseMessage(text, func(line string) error {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return errorf(InvalidRequest, "request line has %d fields, want 3: %q", len(fields), line)
		}
		m, err := ParseMethod(fields[0])
		if err != nil {
			return err
		}
		path := ParsePath(fields[1])
		v, err := ParseVersion(fields[2])
		if err != nil {
			return err
		}
		req.Method, req.Path, req.Version = m, path, v
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.Headers = msg.headers
	req.Body, req.HasBody = msg.body.String(), msg.hasBody
	return req, nil
}

// ContentLength reports the value of the Content-Length header, if r has a
// valid one.
func (r *Request) ContentLength() (uint64, bool) {
	h, ok := r.Headers.Lookup("Content-Length")
	if !ok || h.Kind != KindContentLength {
		return 0, false
	}
	return h.Length, true
}

// SetBody sets the body of r.
func (r *Request) SetBody(body string) { r.Body, r.HasBody = body, true }

// String encodes r as HTTP request text.
func (r *Request) String() string {
	var sb strings.Builder
	sb.WriteString(r.Method.String())
	sb.WriteByte(' ')
	sb.WriteString(r.Path.Full)
	sb.WriteByte(' ')
	sb.WriteString(r.Version.String())
	sb.WriteString("\r\n")
	writeMessage(&sb, r.Headers, r.Body, r.HasBody)
	return sb.String()
}

// SerializeRequest encodes r as HTTP request text. It is equivalent to
// r.String().
func SerializeRequest(r *Request) string { return r.String() }

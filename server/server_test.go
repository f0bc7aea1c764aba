package server_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creachadair/plainwire/http1"
	"github.com/creachadair/plainwire/server"
	"github.com/google/uuid"
)

// logRecorder collects log messages from a server.
type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *logRecorder) logf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *logRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

func newTestServer(t *testing.T) (*server.Server, *logRecorder) {
	t.Helper()
	r := server.NewRouter()
	must := func(err error) {
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	must(r.Handle(http1.MethodPost, "/echo", func(req *http1.Request, _ map[string]string) *http1.Response {
		return http1.NewResponse(http1.StatusOK, http1.TextPlain, req.Body)
	}))
	must(r.Handle(http1.MethodGet, "/nil", func(*http1.Request, map[string]string) *http1.Response {
		return nil
	}))
	must(r.Handle(http1.MethodGet, "/people/{name}", func(_ *http1.Request, vars map[string]string) *http1.Response {
		return http1.NewResponse(http1.StatusOK, http1.ApplicationJSON, `{"name":"`+vars["name"]+`"}`)
	}))

	rec := new(logRecorder)
	return &server.Server{
		Handler:         r,
		ReadTimeout:     2 * time.Second,
		MaxRequestBytes: 1024,
		BufferSize:      16,
		Logf:            rec.logf,
	}, rec
}

// exchange sends request to s over an in-memory connection and returns the
// complete text of the reply.
func exchange(t *testing.T, s *server.Server, request string) string {
	t.Helper()
	cli, srv := net.Pipe()
	defer cli.Close()

	done := make(chan struct{})
	go func() { defer close(done); s.ServeConn(srv) }()
	go cli.Write([]byte(request)) // fails harmlessly if the server stops reading

	data, err := io.ReadAll(cli)
	<-done
	if err != nil {
		t.Fatalf("Reading response: %v", err)
	}
	return string(data)
}

func TestServeConn(t *testing.T) {
	s, logs := newTestServer(t)

	text := exchange(t, s, "POST /echo HTTP/1.1\r\n"+
		"Host: localhost\r\n"+
		"Content-Length: 11\r\n"+
		"\r\n"+
		"hello world")
	rsp, err := http1.ParseResponse(text)
	if err != nil {
		t.Fatalf("ParseResponse(%q): %v", text, err)
	}
	if rsp.Status != http1.StatusOK || rsp.Body != "hello world" {
		t.Errorf("Response: got %v %q, want 200 %q", rsp.Status, rsp.Body, "hello world")
	}
	id := rsp.Headers.Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-Id %q: %v", id, err)
	}
	if got := rsp.Headers.Get("Connection"); got != "close" {
		t.Errorf("Connection: got %q, want close", got)
	}
	if want := "[req " + id + "] POST /echo -> 200"; !strings.Contains(logs.String(), want) {
		t.Errorf("Log is missing %q:\n%s", want, logs)
	}
}

func TestServeConnStatus(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name    string
		request string
		status  http1.StatusCode
		body    string
	}{
		{"Vars", "GET /people/ann HTTP/1.1\r\n\r\n", http1.StatusOK, `{"name":"ann"}`},
		{"LFOnly", "GET /people/bo HTTP/1.0\n\n", http1.StatusOK, `{"name":"bo"}`},
		{"BodyBeyondLength", "POST /echo HTTP/1.1\r\nContent-Length: 3\r\n\r\nabcdef", http1.StatusOK, "abc"},
		{"NotFound", "GET /missing HTTP/1.1\r\n\r\n", http1.StatusNotFound, "not found"},
		{"Method", "DELETE /echo HTTP/1.1\r\n\r\n", http1.StatusMethodNotAllowed, "method not allowed"},
		{"InvalidMethod", "FETCH / HTTP/1.1\r\n\r\n", http1.StatusBadRequest, "invalid method"},
		{"InvalidHeader", "GET / HTTP/1.1\r\nbogus\r\n\r\n", http1.StatusBadRequest, "invalid header"},
		{"NilResponse", "GET /nil HTTP/1.1\r\n\r\n", http1.StatusInternalServerError, "no response"},
		{"TooLarge", "GET /" + strings.Repeat("x", 2000) + " HTTP/1.1\r\n\r\n", http1.StatusBadRequest, "too large"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := exchange(t, s, tc.request)
			rsp, err := http1.ParseResponse(text)
			if err != nil {
				t.Fatalf("ParseResponse(%q): %v", text, err)
			}
			if rsp.Status != tc.status {
				t.Errorf("Status: got %v, want %v", rsp.Status, tc.status)
			}
			if !strings.Contains(rsp.Body, tc.body) {
				t.Errorf("Body: got %q, want it to contain %q", rsp.Body, tc.body)
			}
		})
	}
}

func TestServeConnTimeout(t *testing.T) {
	s, logs := newTestServer(t)
	s.ReadTimeout = 50 * time.Millisecond

	cli, srv := net.Pipe()
	defer cli.Close()
	done := make(chan struct{})
	go func() { defer close(done); s.ServeConn(srv) }()
	if _, err := cli.Write([]byte("GET / HTTP/1.1\r\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := io.ReadAll(cli)
	<-done
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Got response %q, want none", data)
	}
	if !strings.Contains(logs.String(), "read:") {
		t.Errorf("Log does not record the read failure:\n%s", logs)
	}
}

func TestServe(t *testing.T) {
	s, logs := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Go(func() {
			conn, err := net.Dial("tcp", ln.Addr().String())
			if err != nil {
				t.Errorf("Dial: %v", err)
				return
			}
			defer conn.Close()
			fmt.Fprintf(conn, "GET /people/p%d HTTP/1.1\r\n\r\n", i)
			data, err := io.ReadAll(conn)
			if err != nil {
				t.Errorf("ReadAll: %v", err)
				return
			}
			rsp, err := http1.ParseResponse(string(data))
			if err != nil {
				t.Errorf("ParseResponse: %v", err)
				return
			}
			if want := fmt.Sprintf(`{"name":"p%d"}`, i); rsp.Body != want {
				t.Errorf("Body: got %q, want %q", rsp.Body, want)
			}
		})
	}
	wg.Wait()

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Serve: got %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancellation")
	}
	if !strings.Contains(logs.String(), "[serve] stopped") {
		t.Errorf("Log does not record the stop:\n%s", logs)
	}
}

func TestNewServer(t *testing.T) {
	cfg := server.DefaultConfig()
	h := server.HandlerFunc(func(*http1.Request) *http1.Response {
		return http1.NewResponse(http1.StatusNoContent, "", "")
	})
	s := server.NewServer(cfg, h)
	if s.ReadTimeout != 5*time.Second || s.MaxRequestBytes != 1<<20 || s.BufferSize != 4096 {
		t.Errorf("NewServer: got %+v", s)
	}
	s.Logf = t.Logf
	text := exchange(t, s, "HEAD / HTTP/1.1\r\n\r\n")
	if !strings.HasPrefix(text, "HTTP/1.1 204 No Content\r\n") {
		t.Errorf("Response: got %q", text)
	}
}

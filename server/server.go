// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package server serves HTTP/1.x requests over stream connections using the
// plainwire request parser and response serializer.
//
// Each connection carries exactly one exchange: the server reads a request,
// writes a response, and closes the connection.
package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"
	"time"

	"github.com/creachadair/plainwire/http1"
	"github.com/creachadair/plainwire/logging"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// A Handler produces a response for a request.
type Handler interface {
	ServeRequest(*http1.Request) *http1.Response
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(*http1.Request) *http1.Response

// ServeRequest implements the Handler interface.
func (f HandlerFunc) ServeRequest(req *http1.Request) *http1.Response { return f(req) }

// A Server reads requests from connections and writes the responses of its
// Handler.
type Server struct {
	Handler Handler

	// ReadTimeout bounds the time to read a complete request. Zero means no
	// limit.
	ReadTimeout time.Duration

	// MaxRequestBytes bounds the size of a request. If zero, the limit is
	// 1 MiB.
	MaxRequestBytes int

	// BufferSize is the initial size of the read buffer. If zero, the size is
	// 4096 bytes.
	BufferSize int

	// Logf, if set, receives log messages. If nil, logs go to logging.Logger.
	Logf func(format string, args ...any)
}

// NewServer constructs a Server for h using the settings of cfg.
func NewServer(cfg *Config, h Handler) *Server {
	return &Server{
		Handler:         h,
		ReadTimeout:     cfg.ReadTimeout(),
		MaxRequestBytes: cfg.MaxRequestBytes,
		BufferSize:      cfg.BufferSize,
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	} else {
		logging.Printf(format, args...)
	}
}

func (s *Server) maxRequestBytes() int {
	if s.MaxRequestBytes > 0 {
		return s.MaxRequestBytes
	}
	return 1 << 20
}

func (s *Server) bufferSize() int {
	if s.BufferSize > 0 {
		return min(s.BufferSize, s.maxRequestBytes())
	}
	return min(4096, s.maxRequestBytes())
}

// Serve accepts connections from ln and serves each in its own goroutine,
// until ctx ends or ln fails. When ctx ends, Serve closes ln and waits for
// active connections to finish before returning nil. Otherwise it returns
// the error from ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	s.logf("[serve] listening on %s", ln.Addr())
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logf("[serve] stopped: %v", context.Cause(ctx))
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Go(func() { s.ServeConn(conn) })
	}
}

// ServeConn serves a single exchange on conn and closes it.
func (s *Server) ServeConn(conn net.Conn) {
	defer conn.Close()
	cid, err := gonanoid.Generate(connAlphabet, 10)
	if err != nil {
		cid = "-"
	}
	s.logf("[conn %s] accepted from %s", cid, conn.RemoteAddr())

	start := time.Now()
	if s.ReadTimeout > 0 {
		conn.SetReadDeadline(start.Add(s.ReadTimeout))
	}
	text, err := s.readMessage(conn)
	if err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			s.writeResponse(conn, cid, nil, errorResponse(http1.StatusBadRequest, "request too large"), start)
		} else {
			s.logf("[conn %s] read: %v", cid, err)
		}
		return
	}

	req, err := http1.ParseRequest(text)
	if err != nil {
		s.writeResponse(conn, cid, nil, errorResponse(http1.StatusBadRequest, err.Error()), start)
		return
	}
	rsp := s.Handler.ServeRequest(req)
	if rsp == nil {
		rsp = errorResponse(http1.StatusInternalServerError, "handler produced no response")
	}
	s.writeResponse(conn, cid, req, rsp, start)
}

const connAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// writeResponse stamps rsp with a request ID and writes it to conn. The
// request is nil if it could not be parsed.
func (s *Server) writeResponse(conn net.Conn, cid string, req *http1.Request, rsp *http1.Response, start time.Time) {
	id := uuid.New().String()
	if rsp.Headers == nil {
		rsp.Headers = make(http1.Headers)
	}
	rsp.Headers.Add("X-Request-Id", id)
	rsp.Headers.Add("Connection", "close")

	if _, err := conn.Write([]byte(rsp.String())); err != nil {
		s.logf("[req %s] write error (conn %s): %v", id, cid, err)
		return
	}
	elapsed := time.Since(start)
	if req == nil {
		s.logf("[req %s] invalid request (conn %s) -> %d (%v)", id, cid, rsp.Status, elapsed)
		return
	}
	s.logf("[req %s] %s %s -> %d (%v)", id, req.Method, req.Path.Full, rsp.Status, elapsed)
}

// readMessage reads the text of one request from conn.
func (s *Server) readMessage(conn net.Conn) (string, error) {
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, s.bufferSize()), s.maxRequestBytes())
	sc.Split(splitMessage)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("connection closed before a request was read")
	}
	return sc.Text(), nil
}

var blankCRLF, blankLF = []byte("\r\n\r\n"), []byte("\n\n")

// headerEnd returns the offset just past the blank line ending the header
// block of data, or -1 if data does not contain one.
func headerEnd(data []byte) int {
	end := -1
	if i := bytes.Index(data, blankCRLF); i >= 0 {
		end = i + len(blankCRLF)
	}
	if i := bytes.Index(data, blankLF); i >= 0 && (end < 0 || i+len(blankLF) < end) {
		end = i + len(blankLF)
	}
	return end
}

// splitMessage is a bufio.SplitFunc that frames one request: the header
// block, followed by as many body bytes as its Content-Length declares. If
// the input ends before the message is complete, whatever was read is the
// message.
func splitMessage(data []byte, atEOF bool) (int, []byte, error) {
	end := headerEnd(data)
	if end < 0 {
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	}

	need := 0
	if req, err := http1.ParseRequest(string(data[:end])); err == nil {
		if n, ok := req.ContentLength(); ok {
			need = int(min(n, math.MaxInt32))
		}
	}
	if total := end + need; len(data) >= total {
		return total, data[:total], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

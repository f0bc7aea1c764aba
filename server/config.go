package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creachadair/plainwire/http1"
	"github.com/creachadair/plainwire/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/tailscale/hujson"
)

// Config holds the settings of a server. A config file is JSON, optionally
// with comments and trailing commas.
type Config struct {
	Addr            string  `json:"addr"`
	ReadTimeoutMs   int     `json:"read_timeout_ms"`
	MaxRequestBytes int     `json:"max_request_bytes"`
	BufferSize      int     `json:"buffer_size"`
	MaxJSONDepth    int     `json:"max_json_depth"`
	Routes          []Route `json:"routes"`
}

// A Route describes a fixed response served for a method and path.
type Route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// DefaultConfig returns a config with default settings and no routes.
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		ReadTimeoutMs:   5000,
		MaxRequestBytes: 1 << 20,
		BufferSize:      4096,
		MaxJSONDepth:    64,
	}
}

// ReadTimeout returns the read timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMs) * time.Millisecond
}

// ParseConfig parses the text of a config file. Fields that are missing or
// invalid take their default values, and routes that cannot be served are
// dropped. Each correction is logged.
func ParseConfig(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, err
	}
	cfg.fixup()
	return &cfg, nil
}

// LoadConfig reads the config file at path. If the file cannot be read or
// parsed, it logs the problem and returns the defaults.
func LoadConfig(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Printf("[config] no config found at %s, using defaults: %v", path, err)
		return DefaultConfig()
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		logging.Printf("[config] invalid config (%s), using defaults: %v", path, err)
		return DefaultConfig()
	}
	return cfg
}

func (c *Config) fixup() {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ReadTimeoutMs <= 0 {
		logging.Printf("[config] read_timeout_ms=%d is invalid, falling back to %dms", c.ReadTimeoutMs, def.ReadTimeoutMs)
		c.ReadTimeoutMs = def.ReadTimeoutMs
	}
	if c.MaxRequestBytes <= 0 {
		logging.Printf("[config] max_request_bytes=%d is invalid, falling back to %d", c.MaxRequestBytes, def.MaxRequestBytes)
		c.MaxRequestBytes = def.MaxRequestBytes
	}
	if c.BufferSize <= 0 {
		logging.Printf("[config] buffer_size=%d is invalid, falling back to %d", c.BufferSize, def.BufferSize)
		c.BufferSize = def.BufferSize
	}
	if c.MaxJSONDepth <= 0 {
		logging.Printf("[config] max_json_depth=%d is invalid, falling back to %d", c.MaxJSONDepth, def.MaxJSONDepth)
		c.MaxJSONDepth = def.MaxJSONDepth
	}

	var keep []Route
	for i, rt := range c.Routes {
		if rt.Method == "" {
			rt.Method = "GET"
		}
		if _, err := http1.ParseMethod(rt.Method); err != nil {
			logging.Printf("[config] routes[%d].method=%q is invalid, dropping route", i, rt.Method)
			continue
		}
		if !strings.HasPrefix(rt.Path, "/") {
			logging.Printf("[config] routes[%d].path=%q does not start with '/', fixing", i, rt.Path)
			rt.Path = "/" + rt.Path
		}
		if rt.Status == 0 {
			rt.Status = int(http1.StatusOK)
		} else if !http1.StatusCode(rt.Status).Known() {
			logging.Printf("[config] routes[%d].status=%d is invalid, dropping route", i, rt.Status)
			continue
		}
		keep = append(keep, rt)
	}
	c.Routes = keep
}

// AddRoutes registers the fixed routes of c with r.
func (c *Config) AddRoutes(r *Router) error {
	for _, rt := range c.Routes {
		m, err := http1.ParseMethod(rt.Method)
		if err != nil {
			return err
		}
		if err := r.Handle(m, rt.Path, rt.serve); err != nil {
			return err
		}
	}
	return nil
}

func (rt Route) serve(*http1.Request, map[string]string) *http1.Response {
	rsp := &http1.Response{
		Version: http1.Version11,
		Status:  http1.StatusCode(rt.Status),
		Headers: make(http1.Headers),
	}
	if rt.ContentType != "" {
		rsp.Headers.Set("Content-Type", http1.TypeHeader(http1.ParseContentType(rt.ContentType)))
	}
	if rt.Body != "" || rt.ContentType != "" {
		rsp.SetBody(rt.Body)
	}
	return rsp
}

// WatchConfig watches the config file at path and calls onChange with the
// reloaded config each time the file is written or replaced. The watch runs
// in a separate goroutine until ctx ends.
//
// The directory containing path is watched rather than the file itself, so
// that editors which replace the file by renaming are handled.
func WatchConfig(ctx context.Context, path string, onChange func(*Config)) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch config: %w", err)
	}
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				logging.Printf("[watch] %s changed (%v), reloading", path, ev.Op)
				onChange(LoadConfig(path))

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Printf("[watch] error: %v", err)

			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Program plainwire-serve is a small HTTP/1.x server built on the plainwire
// request parser. It serves fixed routes read from a config file, along with
// a few built-in JSON endpoints:
//
//	POST /json           parse the request body and return it normalized
//	GET  /hello/{name}   return a JSON greeting
//	POST /person         decode a person document and summarize it
//
// If -watch is set, the routes are rebuilt whenever the config file changes.
// Listener settings are read only at startup.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/creachadair/plainwire/http1"
	"github.com/creachadair/plainwire/logging"
	"github.com/creachadair/plainwire/server"
)

var (
	configPath = flag.String("config", "plainwire.json", "Configuration file path")
	listenAddr = flag.String("addr", "", "Listen address (overrides the config)")
	logFile    = flag.String("log", "", "Write logs to this file instead of stderr")
	doWatch    = flag.Bool("watch", true, "Reload routes when the config file changes")
)

func main() {
	flag.Parse()

	lc, err := logging.Init(*logFile)
	if err != nil {
		log.Fatalf("Initializing log: %v", err)
	}
	defer lc.Close()

	cfg := server.LoadConfig(*configPath)
	addr := cfg.Addr
	if *listenAddr != "" {
		addr = *listenAddr
	}

	var current atomic.Pointer[server.Router]
	r, err := newRouter(cfg)
	if err != nil {
		logging.Logger.Fatalf("[config] building routes: %v", err)
	}
	current.Store(r)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *doWatch {
		err := server.WatchConfig(ctx, *configPath, func(c *server.Config) {
			r, err := newRouter(c)
			if err != nil {
				logging.Printf("[config] keeping previous routes: %v", err)
				return
			}
			current.Store(r)
			logging.Printf("[config] reloaded %d routes", r.Len())
		})
		if err != nil {
			logging.Println("Config reload disabled:", err)
		} else {
			logging.Println("Config reload enabled")
		}
	}

	srv := server.NewServer(cfg, server.HandlerFunc(func(req *http1.Request) *http1.Response {
		return current.Load().ServeRequest(req)
	}))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logging.Logger.Fatalf("[serve] listen error: %v", err)
	}
	logging.Printf(" Read timeout: %v", cfg.ReadTimeout())
	logging.Printf(" Max request: %d bytes", cfg.MaxRequestBytes)
	logging.Printf(" Max JSON depth: %d", cfg.MaxJSONDepth)
	logging.Printf(" Routes: %d", r.Len())

	if err := srv.Serve(ctx, ln); err != nil {
		logging.Logger.Fatalf("[serve] %v", err)
	}
}

// Package logging holds the logger shared by the plainwire server and tools.
//
// Messages are tagged with a bracketed component name, for example
// "[serve]" or "[req <id>]". The parsers in this module never log.
package logging

import (
	"io"
	"log"
	"os"
)

// Prefix is the prefix attached to every log line.
const Prefix = "plainwire: "

// Logger is the global logger instance. It writes to stderr until Init or
// SetOutput is called.
var Logger = log.New(os.Stderr, Prefix, log.LstdFlags)

// Init directs the logger to the file at path, creating or truncating it.
// If path is empty, the logger writes to stderr.
func Init(path string) (io.Closer, error) {
	if path == "" {
		SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return f, nil
}

// SetOutput directs the logger to w.
func SetOutput(w io.Writer) { Logger.SetOutput(w) }

// Printf logs a formatted message to Logger.
func Printf(format string, args ...any) { Logger.Printf(format, args...) }

// Println logs its arguments to Logger.
func Println(args ...any) { Logger.Println(args...) }

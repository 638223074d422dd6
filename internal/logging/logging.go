// Package logging builds the application loggers. A TUI owns the terminal,
// so logs default to a rotated file in the data directory; verbose mode
// echoes them to stderr for plain CLI runs and debugging.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the rotated log file kept in the data directory.
const LogFileName = "mountains.log"

// Sink returns the shared rotating writer for dir/mountains.log, plus its
// closer. With verbose set, lines also go to stderr. Component loggers in
// a process should share one sink so rotation happens once.
func Sink(dir string, verbose bool) (io.Writer, io.Closer) {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = file
	if verbose {
		w = io.MultiWriter(file, os.Stderr)
	}
	return w, file
}

// New returns a component logger with the given bracketed prefix writing
// to sink.
func New(sink io.Writer, prefix string) *log.Logger {
	return log.New(sink, prefix, log.LstdFlags)
}

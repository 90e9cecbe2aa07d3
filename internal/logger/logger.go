// SPDX-License-Identifier: EPL-2.0

// Package logger provides leveled logging for the bobwave server.
//
// INFO and DEBUG go to stdout, ERROR to stderr. DEBUG is discarded unless
// the level is "debug". Calls made before Initialize are dropped.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

var (
	// InfoLogger handles informational messages.
	InfoLogger *log.Logger
	// ErrorLogger handles error messages.
	ErrorLogger *log.Logger
	// DebugLogger handles debug messages.
	DebugLogger *log.Logger
)

// Initialize sets up the loggers on stdout and stderr.
func Initialize(level string, development bool) {
	InitializeWriters(os.Stdout, os.Stderr, level, development)
}

// InitializeWriters sets up the loggers on the given writers.
func InitializeWriters(out, errOut io.Writer, level string, development bool) {
	flags := log.Ldate | log.Ltime
	if development {
		flags |= log.Lshortfile
	}

	InfoLogger = log.New(out, "INFO: ", flags)
	ErrorLogger = log.New(errOut, "ERROR: ", flags)

	if strings.EqualFold(level, "debug") {
		DebugLogger = log.New(out, "DEBUG: ", flags)
	} else {
		DebugLogger = log.New(io.Discard, "", 0)
	}
}

// Info logs informational messages.
func Info(message string, args ...any) {
	if InfoLogger != nil {
		_ = InfoLogger.Output(2, sprintf(message, args...))
	}
}

// Error logs error messages.
func Error(message string, args ...any) {
	if ErrorLogger != nil {
		_ = ErrorLogger.Output(2, sprintf(message, args...))
	}
}

// Debug logs debug messages.
func Debug(message string, args ...any) {
	if DebugLogger != nil {
		_ = DebugLogger.Output(2, sprintf(message, args...))
	}
}

// Fatal logs fatal messages and terminates the program.
func Fatal(message string, args ...any) {
	if ErrorLogger != nil {
		_ = ErrorLogger.Output(2, sprintf(message, args...))
	}
	os.Exit(1)
}

// Package shared provides debugging and development utilities for
// roverctl.
//
// This file contains debug functions that provide detailed location
// information for troubleshooting and development. Debug output includes
// file names, line numbers, function names, and call stacks to help
// identify issues during development.
//
// Debug Mode:
// DebugPrint produces output only when DEBUG_MODE is set. DebugError and
// DebugPanic always log; in debug mode they add the caller's file, line and
// function, and DebugPanic then panics.
// Set DEBUG environment variable to "true" to enable debug logging.
//
// These are process-internal diagnostics, distinct from the rover's own
// LogRecord stream (which flows through the Logger module to its
// console/file/stream sinks). Output here is backed by a zap.SugaredLogger
// instead of the standard library log package.
package shared

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	debugOnce sync.Once
	sugar     *zap.SugaredLogger
)

func logger() *zap.SugaredLogger {
	debugOnce.Do(func() {
		var zl *zap.Logger
		var err error
		if DEBUG_MODE {
			zl, err = zap.NewDevelopment()
		} else {
			zl, err = zap.NewProduction()
		}
		if err != nil {
			zl = zap.NewNop()
		}
		sugar = zl.Sugar()
	})
	return sugar
}

// DebugPrint automatically gets file, line, and function info
func DebugPrint(format string, args ...interface{}) {
	if !DEBUG_MODE {
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		logger().Debugf(format, args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	logger().Debugf("[%s:%d %s]: "+format, append([]interface{}{filename, line, funcName}, args...)...)
}

// DebugError prints an error message with file/line info
func DebugError(err error) {
	if err == nil {
		return
	}
	if !DEBUG_MODE {
		logger().Errorw("error", "err", err)
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		logger().Errorw("error", "err", err)
		return
	}

	logger().Errorw("error",
		"file", filepath.Base(file),
		"line", line,
		"func", getShortFuncName(runtime.FuncForPC(pc).Name()),
		"err", err)
}

func DebugPanic(format string, args ...interface{}) {
	if !DEBUG_MODE {
		logger().Errorf("CRITICAL ERROR (would panic in debug): "+format, args...)
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		logger().Panicf("PANIC: "+format, args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	logger().Panicf("PANIC [%s:%d %s]: "+format,
		append([]interface{}{filename, line, funcName}, args...)...)
}

// Sync flushes buffered diagnostic log entries. Call once during shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

// Exit logs a fatal init error and terminates with the exit code required
// by the operator CLI contract: 0 only on graceful shutdown.
func Exit(err error) {
	if err == nil {
		return
	}
	DebugError(err)
	Sync()
	os.Exit(1)
}

func getShortFuncName(fullName string) string {
	if lastSlash := strings.LastIndex(fullName, "/"); lastSlash >= 0 {
		fullName = fullName[lastSlash+1:]
	}
	if lastDot := strings.LastIndex(fullName, "."); lastDot >= 0 {
		return fullName[lastDot+1:]
	}
	return fullName
}

// Package logger provides a small, thread-safe levelled logger.
//
// Every entry carries a timestamp, the level, an optional source (usually a
// worker id such as "worker3") and the message. The default logger writes
// to stderr so that diagnostics never interleave with the results printed
// on stdout.
//
// # Basic Usage
//
//	l := logger.New(os.Stderr, logger.LevelDebug)
//	l.Info("", "launching %d workers", n)
//	l.Error("worker2", "spawn failed: %v", err)
//
// Components that are not given a logger fall back to Default.
//
// # Log Levels
//
// Messages below the configured level are filtered:
//   - LevelDebug: all messages
//   - LevelInfo: Info, Warn, Error
//   - LevelWarn: Warn, Error
//   - LevelError: Error only
//
// # Thread Safety
//
// All logging operations are protected by a mutex and safe for concurrent
// use from worker goroutines.
package logger

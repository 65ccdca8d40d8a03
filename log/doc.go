// Package log provides structured logging for tracerz over the standard
// library's log/slog, adding a Trace level below Debug, a colorized pretty
// text handler, and a functional-option configuration surface shared by the
// CLI flag groups.
//
// A package-level default logger writes to stderr and is reconfigured with
// [Config]; components that accept a [Logger] value treat the zero Logger as
// a discard sink.
package log

// Package cli contains the command line interface for tracerz.
//
// # Usage
//
// Every subcommand reads its grammar from the file named by --grammar
// (or stdin with '-'):
//
//	tracerz -g grammar.yaml gen origin
//	tracerz -g grammar.json rules
//	tracerz -g grammar.yaml step
//
// # Commands
//
//   - gen: expand a start rule and print the flattened output, optionally
//     repeated with --count and seeded with --seed
//   - rules: list the rule names defined by the grammar, optionally
//     fuzzy-filtered
//   - step: drive the expansion one step at a time in an interactive
//     terminal view
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tracerz .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli

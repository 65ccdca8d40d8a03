// Package profile provides optional runtime profiling for the tracerz
// command.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag. When
// built without the tag (the default), all operations are no-ops with zero
// runtime overhead; when built with it, the CLI exposes a profiling mode
// flag and writes profile data to disk for analysis with go tool pprof:
//
//	go build -tags pprof ./...
//	./tracerz --pprof-mode cpu --grammar story.yaml gen origin
//	go tool pprof ./tracerz cpu.pprof
//
// Use [Modes] to retrieve the list of supported modes programmatically.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

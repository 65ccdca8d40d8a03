package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/caranatar/tracerz/grammar"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the output writer of the kong.Context stored in ctx,
// or os.Stdout when running outside a parsed command line.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

type sourceKey struct{}

// WithSource returns a new context.Context carrying the decoded grammar
// source, shared by every subcommand.
func WithSource(ctx context.Context, source *grammar.Value) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// sourceFrom retrieves the grammar source stored by WithSource.
// Returns nil if no source was stored.
func sourceFrom(ctx context.Context) *grammar.Value {
	source, _ := ctx.Value(sourceKey{}).(*grammar.Value)

	return source
}

// LoadSource reads and decodes the grammar file at path. The special path
// "-" reads from stdin.
func LoadSource(path string) (*grammar.Value, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, err
	}

	return grammar.ParseSource(data)
}

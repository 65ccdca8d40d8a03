package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/caranatar/tracerz/cli/cmd"
	"github.com/caranatar/tracerz/pkg"
)

// CLI is the top-level command-line interface for tracerz.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Grammar string           `help:"Grammar source file (YAML or JSON), or '-' for stdin" name:"grammar" short:"g" required:""`
	Version kong.VersionFlag `help:"Print version and exit"                                              short:"V"`

	Gen   cmd.Gen   `cmd:"" default:"withargs" help:"Generate text from a start rule"`
	Rules cmd.Rules `cmd:""                    help:"List grammar rule names"`
	Step  cmd.Step  `cmd:""                    help:"Step the expansion interactively"`
}

// Run executes the tracerz CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		kong.Vars{"version": strings.TrimSpace(pkg.Version)},
		cli.Pprof.vars(),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values.
	cli.Log.start(ctx)

	// Load the grammar once; every subcommand reads it from the context.
	source, err := cmd.LoadSource(cli.Grammar)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSource(ctx, source)

	// pprofConfig.start is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}

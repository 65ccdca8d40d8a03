package cmd

import (
	"context"

	"github.com/caranatar/tracerz/cli/cmd/step"
)

// Step launches the interactive expansion stepper.
type Step struct {
	Start string `arg:"" help:"Start rule name or raw start text" name:"start" optional:"" default:"origin"`
	Seed  uint64 `       help:"Fix the random seed for reproducible output"                 short:"S"`
}

// Run executes the step command.
func (s *Step) Run(ctx context.Context) error {
	gram, err := buildGrammar(ctx, s.Seed)
	if err != nil {
		return err
	}

	return step.Run(ctx, gram, startText(s.Start))
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/caranatar/tracerz/cli"
	"github.com/caranatar/tracerz/log"
	"github.com/caranatar/tracerz/pkg"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"grammar expansion failed",
			slog.String("program", pkg.Name),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

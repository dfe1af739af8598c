package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/concrete-strength/internal/cli"
)

func main() {
	// Keep stdout for the result; diagnostics go to stderr
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := cli.NewPredictCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sosa_resort/internal/adapters/observability"
	"sosa_resort/internal/app"
	"sosa_resort/internal/bootstrap"
	"sosa_resort/internal/cli"
	"sosa_resort/internal/shared"
)

func main() {
	cfg := shared.Load()

	// stdout belongs to command output
	log.Logger = observability.NewLoggerTo(os.Stderr, "dev", cfg.LogFile).Level(zerolog.WarnLevel)

	cli.Execute(func(ctx context.Context) (*cli.Env, func() error, error) {
		deps, err := bootstrap.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		env := &cli.Env{
			Client:   deps.Client,
			Svc:      app.NewServices(deps.Client),
			Cache:    deps.Cache,
			Debounce: cfg.DebounceDelay,
		}
		return env, deps.Close, nil
	})
}

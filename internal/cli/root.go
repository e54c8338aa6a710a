// Package cli implements the skillctl operator commands.
package cli

import (
	"context"
	"os"

	"skill-match/internal/app"
	"skill-match/internal/config"
	"skill-match/internal/logging"

	"github.com/spf13/cobra"
)

// Env supplies configuration and the service container to commands.
// Tests replace Open to run commands against a prepared container.
type Env struct {
	Config config.Config
	Logger logging.Logger
	Open   func(ctx context.Context) (*app.Container, error)
}

func DefaultEnv() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.App.LogLevel)
	env := &Env{Config: cfg, Logger: logger}
	env.Open = func(ctx context.Context) (*app.Container, error) {
		return app.NewContainer(ctx, env.Config, env.Logger)
	}
	return env, nil
}

func NewRootCommand(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:          "skillctl",
		Short:        "Operate the skill-match stores",
		SilenceUsage: true,
		Long: `skillctl applies migrations, seeds the skill directory, registers users
and runs skill searches and user matches against the configured stores.`,
	}

	root.AddCommand(
		newMigrateCommand(env),
		newSeedCommand(env),
		newAddUserCommand(env),
		newQueryCommand(env),
		newSearchCommand(env),
	)
	return root
}

// withContainer opens the container for one command run and closes it
// afterwards.
func withContainer(cmd *cobra.Command, env *Env, fn func(ctx context.Context, c *app.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := env.Open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(ctx, c)
}

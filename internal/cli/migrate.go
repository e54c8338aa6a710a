package cli

import (
	"fmt"

	"skill-match/internal/app"
	"skill-match/internal/config"
	dbpostgres "skill-match/internal/database/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the document schema to both Postgres stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := env.Config.Store
			if cfg.Driver != config.StoreDriverPostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.Driver)
			}

			projects := []struct{ name, dsn string }{
				{"users", cfg.UsersDSN},
				{"skills", cfg.SkillsDSN},
			}
			for _, p := range projects {
				db, err := dbpostgres.Connect(cmd.Context(), p.dsn, dbpostgres.Options{
					MaxConns:       cfg.PoolMaxConns,
					ConnectTimeout: cfg.ConnectTimeout,
				})
				if err != nil {
					return fmt.Errorf("connect %s store: %w", p.name, err)
				}
				err = app.Migrate(cmd.Context(), db)
				_ = db.Close()
				if err != nil {
					return fmt.Errorf("migrate %s store: %w", p.name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: migrations applied\n", p.name)
			}
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"skill-match/internal/app"
	"skill-match/internal/database/seeder"

	"github.com/spf13/cobra"
)

func newSeedCommand(env *Env) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the skill directory from a YAML file or the built-in list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := seeder.DefaultSkills
			if file != "" {
				loaded, err := seeder.LoadSkillsFile(file)
				if err != nil {
					return err
				}
				items = loaded
			}

			return withContainer(cmd, env, func(ctx context.Context, c *app.Container) error {
				r := seeder.Runner{Seeders: []seeder.Seeder{seeder.SkillsSeeder{Items: items}}}
				if err := r.Run(ctx, c.Stores); err != nil {
					return err
				}
				if err := c.Directory.Invalidate(ctx); err != nil {
					return fmt.Errorf("invalidate skill directory cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d skills\n", len(items))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a top-level skills list")
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"skill-match/internal/app"

	"github.com/spf13/cobra"
)

func newSearchCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "search [prefix]",
		Short: "Search the skill directory by name prefix",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := strings.Join(args, " ")
			return withContainer(cmd, env, func(ctx context.Context, c *app.Container) error {
				items, err := c.Directory.Search(ctx, prefix)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No skills found")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME")
				for _, it := range items {
					fmt.Fprintf(w, "%s\t%s\n", it.ID, it.Name)
				}
				return w.Flush()
			})
		},
	}
}

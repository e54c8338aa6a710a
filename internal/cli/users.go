package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"skill-match/internal/app"
	"skill-match/internal/domain/matching"
	"skill-match/internal/usecase"

	"github.com/spf13/cobra"
)

func newAddUserCommand(env *Env) *cobra.Command {
	var (
		name   string
		skills []string
	)

	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Register a user with a set of skill ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, env, func(ctx context.Context, c *app.Container) error {
				u, err := c.Registration.Register(ctx, usecase.RegisterUserInput{Name: name, Skills: skills})
				if err != nil {
					return errors.New(usecase.MsgAddUserFailed)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, usecase.MsgUserAdded)
				fmt.Fprintf(out, "id=%s skill_set_key=%s\n", u.ID, u.SkillSetKey)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Skill id (repeatable or comma-separated)")
	return cmd
}

func newQueryCommand(env *Env) *cobra.Command {
	var (
		skills []string
		policy string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List users holding every given skill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.MatchInput{SkillIDs: skills}
			if strings.TrimSpace(policy) != "" {
				p, err := matching.ParsePolicy(policy)
				if err != nil {
					return err
				}
				in.Policy = p
			}

			return withContainer(cmd, env, func(ctx context.Context, c *app.Container) error {
				res, err := c.Matching.Match(ctx, in)
				switch {
				case errors.Is(err, usecase.ErrNoSkillsSelected):
					return errors.New(usecase.MsgNoSkillsSelected)
				case errors.Is(err, usecase.ErrNoUsersFound):
					fmt.Fprintln(cmd.OutOrStdout(), usecase.MsgNoUsersFound)
					return nil
				case err != nil:
					return errors.New(usecase.MsgQueryFailed)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSKILLS")
				for _, u := range res.Users {
					fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, strings.Join(u.SkillNames, ", "))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Required skill id (repeatable or comma-separated)")
	cmd.Flags().StringVar(&policy, "policy", "", "Matching policy: union_then_filter or intersection_count")
	return cmd
}

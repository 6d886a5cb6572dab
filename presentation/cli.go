// Package presentation exposes every herd operation as a CLI
// subcommand. It is a thin caller: commands are built from arguments
// and dispatched through the application coordinator; results and
// error kinds are printed, never interpreted.
package presentation

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"herdly-go/application"
	"herdly-go/core/command"
	"herdly-go/domain/herd"
)

// NewRootCmd builds the herdly command tree on top of a coordinator.
func NewRootCmd(coord *application.Coordinator) *cobra.Command {
	root := &cobra.Command{
		Use:           "herdly",
		Short:         "Manage named herds of animals",
		Long:          "herdly groups externally-owned animals into named herds and keeps multi-herd operations (move, merge, split) atomic.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCreateCmd(coord),
		newAddCmd(coord),
		newRemoveCmd(coord),
		newMoveCmd(coord),
		newMergeCmd(coord),
		newSplitCmd(coord),
		newMembersCmd(coord),
		newListCmd(coord),
	)

	return root
}

func newCreateCmd(coord *application.Coordinator) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:     "create <herd>",
		Short:   "Create a new, empty herd",
		Example: `  herdly create north --description "north pasture"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, coord, &command.CreateHerd{
				Name:        args[0],
				Description: description,
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional herd description")

	return cmd
}

func newAddCmd(coord *application.Coordinator) *cobra.Command {
	return &cobra.Command{
		Use:     "add <herd> <animal>",
		Short:   "Add an animal to a herd",
		Example: `  herdly add north a1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, coord, &command.AddMember{
				Herd:   args[0],
				Animal: args[1],
			})
		},
	}
}

func newRemoveCmd(coord *application.Coordinator) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <herd> <animal>",
		Short:   "Remove an animal from a herd",
		Example: `  herdly remove north a1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, coord, &command.RemoveMember{
				Herd:   args[0],
				Animal: args[1],
			})
		},
	}
}

func newMoveCmd(coord *application.Coordinator) *cobra.Command {
	return &cobra.Command{
		Use:     "move <source> <target> <animal>",
		Short:   "Move an animal between herds atomically",
		Long:    "Move an animal out of the source herd and into the target herd as one atomic step. The animal may already be in the target; the move still succeeds without duplicating it.",
		Example: `  herdly move north south a1`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, coord, &command.MoveMember{
				Source: args[0],
				Target: args[1],
				Animal: args[2],
			})
		},
	}
}

func newMergeCmd(coord *application.Coordinator) *cobra.Command {
	return &cobra.Command{
		Use:     "merge <keep> <archive>",
		Short:   "Merge one herd into another",
		Long:    "Fold every member of the archive herd into the keep herd, then archive the losing herd. Archival is terminal: the herd keeps its name forever but accepts no further changes.",
		Example: `  herdly merge north old-north`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, coord, &command.MergeHerds{
				Keep:    args[0],
				Archive: args[1],
			})
		},
	}
}

func newSplitCmd(coord *application.Coordinator) *cobra.Command {
	return &cobra.Command{
		Use:     "split <source> <target> <animal>...",
		Short:   "Split animals out of a herd into another",
		Long:    "Move the listed animals from the source herd into the target herd as one atomic step, creating the target if it does not exist yet. Every listed animal must currently be in the source, or nothing happens.",
		Example: `  herdly split north quarantine a1 a2 a3`,
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, coord, &command.SplitMembers{
				Source:  args[0],
				Target:  args[1],
				Animals: args[2:],
			})
		},
	}
}

func newMembersCmd(coord *application.Coordinator) *cobra.Command {
	return &cobra.Command{
		Use:     "members <herd>",
		Short:   "Show the current members of a herd",
		Example: `  herdly members north`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := coord.ViewComposition(cmd.Context(), args[0])
			if err != nil {
				return cliError(err)
			}
			for _, m := range members {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}

func newListCmd(coord *application.Coordinator) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all herds, active and archived",
		Example: `  herdly list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := coord.ListHerds(cmd.Context())
			if err != nil {
				return cliError(err)
			}
			for _, s := range summaries {
				state := "active"
				if s.Archived {
					state = "archived"
				}
				line := fmt.Sprintf("%s\t%s\t%d", s.Name, state, s.MemberCount)
				if s.Description != "" {
					line += "\t" + s.Description
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func dispatch(cmd *cobra.Command, coord *application.Coordinator, c command.Command) error {
	if err := coord.Dispatch(cmd.Context(), c); err != nil {
		return cliError(err)
	}
	return nil
}

// cliError renders the closed error kind ahead of the message so
// scripts can branch on the first token of stderr.
func cliError(err error) error {
	var he *herd.Error
	if errors.As(err, &he) {
		return fmt.Errorf("%s: %s", he.Kind, he.Message)
	}
	return fmt.Errorf("%s: %s", herd.KindDatabaseError, err)
}

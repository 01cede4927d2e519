package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information, set at build time using ldflags
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type opener func(ctx context.Context, verbose bool) (*app, error)

// cli carries state shared by every subcommand of one root
type cli struct {
	open    opener
	app     *app
	jsonOut bool
	verbose bool
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "fambalance",
		Short: "Family wellness tracker: moods, missions, journal and weekly reports",
		Long: `FamBalance keeps a family's daily moods, harmony missions, shared journal,
connection moments and weekly wellbeing reports.

Storage and limits are configured through FAMBALANCE_* environment variables
(or a .env file).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || c.app != nil {
				return nil
			}
			a, err := c.open(cmd.Context(), c.verbose)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			err := c.app.close()
			c.app = nil
			return err
		},
	}

	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Print results as JSON")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log service activity to stderr")

	root.AddCommand(
		newRegisterCmd(c),
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newProfileCmd(c),
		newFamilyCmd(c),
		newMoodCmd(c),
		newMissionsCmd(c),
		newJournalCmd(c),
		newConnectionCmd(c),
		newReportCmd(c),
		newVersionCmd(),
	)
	return root
}

// render prints v as JSON when --json is set and through text otherwise
func (c *cli) render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if c.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "fambalance version %s\n", Version)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
		},
	}
}

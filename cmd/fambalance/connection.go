package main

import (
	"fmt"
	"io"

	"fambalance/internal/models"

	"github.com/spf13/cobra"
)

func newConnectionCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connection",
		Short: "Daily family connection moments",
	}
	cmd.AddCommand(newConnectionTodayCmd(c), newConnectionAttendCmd(c), newConnectionHistoryCmd(c))
	return cmd
}

func printMoment(w io.Writer, m *models.ConnectionMoment) {
	fmt.Fprintf(w, "%s  %s\n", m.Date, m.Suggestion)
	fmt.Fprintf(w, "  %d attended, %d connection points  (id %s)\n", m.AttendedCount(), m.ConnectionPointsEarned, m.ID)
}

func newConnectionTodayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's connection moment, creating it if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			moment, err := c.app.connection.GetOrCreateToday(ctx, family.ID)
			if err != nil {
				return err
			}
			return c.render(cmd, moment, func(w io.Writer) {
				printMoment(w, moment)
			})
		},
	}
}

func newConnectionAttendCmd(c *cli) *cobra.Command {
	var (
		attended bool
		userID   string
	)
	cmd := &cobra.Command{
		Use:   "attend MOMENT_ID",
		Short: "Record whether a member took part in a connection moment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, _, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			if userID == "" {
				userID = user.ID
			}
			moment, err := c.app.connection.RecordAttendance(ctx, args[0], userID, attended)
			if err != nil {
				return err
			}
			return c.render(cmd, moment, func(w io.Writer) {
				printMoment(w, moment)
			})
		},
	}
	cmd.Flags().BoolVar(&attended, "attended", true, "Whether the member took part")
	cmd.Flags().StringVar(&userID, "user", "", "Member id (default: logged-in user)")
	return cmd
}

func newConnectionHistoryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the family's past connection moments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			moments, err := c.app.connection.History(ctx, family.ID)
			if err != nil {
				return err
			}
			return c.render(cmd, moments, func(w io.Writer) {
				for i := range moments {
					printMoment(w, &moments[i])
				}
			})
		},
	}
}

package main

import (
	"fmt"
	"io"

	"fambalance/internal/models"

	"github.com/spf13/cobra"
)

func newMissionsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "missions",
		Aliases: []string{"mission"},
		Short:   "Daily harmony missions",
	}
	cmd.AddCommand(
		newMissionsListCmd(c),
		newMissionsCompleteCmd(c),
		newMissionsDoneCmd(c),
		newMissionsCatalogCmd(c),
	)
	return cmd
}

func printMissions(w io.Writer, missions []models.Mission) {
	if len(missions) == 0 {
		fmt.Fprintln(w, "No missions available")
		return
	}
	for _, m := range missions {
		premium := ""
		if m.IsPremium {
			premium = " [premium]"
		}
		fmt.Fprintf(w, "  %-4s %-12s %3d pts  %s%s\n", m.ID, m.Type, m.Points, m.Description, premium)
	}
}

func newMissionsListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the missions available today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			missions, err := c.app.mission.Available(ctx, user.ID, family.ID)
			if err != nil {
				return err
			}
			return c.render(cmd, missions, func(w io.Writer) {
				printMissions(w, missions)
			})
		},
	}
}

func newMissionsCompleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "complete MISSION_ID",
		Short: "Complete a mission and earn its harmony points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, _, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			um, err := c.app.mission.Complete(ctx, user.ID, args[0])
			if err != nil {
				return err
			}
			return c.render(cmd, um, func(w io.Writer) {
				fmt.Fprintf(w, "Mission %s completed: +%d harmony points\n", um.MissionID, um.HarmonyPointsEarned)
			})
		},
	}
}

func newMissionsDoneCmd(c *cli) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "done",
		Short: "List the missions completed on a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, _, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			done, err := c.app.mission.CompletedToday(ctx, user.ID, date)
			if err != nil {
				return err
			}
			return c.render(cmd, done, func(w io.Writer) {
				for _, um := range done {
					desc := um.MissionID
					if m, ok := c.app.catalog.Mission(um.MissionID); ok {
						desc = m.Description
					}
					fmt.Fprintf(w, "  %s  +%d  %s\n", um.Date, um.HarmonyPointsEarned, desc)
				}
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	return cmd
}

func newMissionsCatalogCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the full mission catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			missions := c.app.mission.Catalog()
			return c.render(cmd, missions, func(w io.Writer) {
				printMissions(w, missions)
			})
		},
	}
}

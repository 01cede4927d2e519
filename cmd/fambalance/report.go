package main

import (
	"context"
	"fmt"
	"io"

	"fambalance/internal/models"

	"github.com/spf13/cobra"
)

func newReportCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Weekly wellbeing reports",
	}
	cmd.AddCommand(newReportWeeklyCmd(c), newReportLastCmd(c), newReportShowCmd(c), newReportAICmd(c))
	return cmd
}

func (c *cli) printReport(ctx context.Context, w io.Writer, familyID string, r *models.Report) {
	names := map[string]string{}
	if members, err := c.app.auth.GetFamilyMembers(ctx, familyID); err == nil {
		for _, m := range members {
			names[m.ID] = m.Name
		}
	}

	fmt.Fprintf(w, "Report %s  %s .. %s\n", r.ID, r.StartDate, r.EndDate)
	fmt.Fprintln(w, "Family:")
	for _, mc := range r.FamilyMoodSummary {
		fmt.Fprintf(w, "  %-16s %d\n", mc.Emotion, mc.Count)
	}
	for _, ms := range r.IndividualMoodSummary {
		fmt.Fprintf(w, "%s:", names[ms.UserID])
		for _, mc := range ms.MoodData {
			fmt.Fprintf(w, " %s%d", mc.Emotion.Emoji(), mc.Count)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Recommendations:")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
}

func newReportWeeklyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Generate this week's report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			report, err := c.app.report.GenerateWeekly(ctx, family.ID)
			if err != nil {
				return err
			}
			return c.render(cmd, report, func(w io.Writer) {
				c.printReport(ctx, w, family.ID, report)
			})
		},
	}
}

func newReportLastCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the most recent report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			report, err := c.app.report.GetLast(ctx, family.ID)
			if err != nil {
				return err
			}
			return c.render(cmd, report, func(w io.Writer) {
				if report == nil {
					fmt.Fprintln(w, "No reports yet")
					return
				}
				c.printReport(ctx, w, family.ID, report)
			})
		},
	}
}

func newReportShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show REPORT_ID",
		Short: "Show a report by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			report, err := c.app.report.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			return c.render(cmd, report, func(w io.Writer) {
				c.printReport(ctx, w, report.FamilyID, report)
			})
		},
	}
}

func newReportAICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ai [REPORT_ID]",
		Short: "Ask for AI recommendations on a report (default: the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}

			var report *models.Report
			if len(args) == 1 {
				report, err = c.app.report.GetByID(ctx, args[0])
			} else {
				report, err = c.app.report.GetLast(ctx, family.ID)
			}
			if err != nil {
				return err
			}
			if report == nil {
				return fmt.Errorf("no report yet, run 'fambalance report weekly' first")
			}

			members, err := c.app.auth.GetFamilyMembers(ctx, family.ID)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(members))
			for _, m := range members {
				names = append(names, m.Name)
			}

			recs := c.app.report.AIRecommendations(ctx, report, family.Name, names)
			return c.render(cmd, recs, func(w io.Writer) {
				for _, rec := range recs {
					fmt.Fprintf(w, "- %s\n", rec)
				}
			})
		},
	}
}

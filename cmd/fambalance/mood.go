package main

import (
	"fmt"
	"io"
	"strings"

	"fambalance/internal/models"
	"fambalance/internal/validation"

	"github.com/spf13/cobra"
)

// parseEmotion accepts a stored value, a label or an english key
func parseEmotion(s string) (models.Emotion, error) {
	e, ok := models.ParseEmotion(s)
	if !ok {
		return "", validation.ValidationError{
			Field:   "emotion",
			Message: fmt.Sprintf("unknown emotion %q (try one of %s)", s, emotionNames()),
		}
	}
	return e, nil
}

func emotionNames() string {
	names := make([]string, 0, 5)
	for _, e := range models.AllEmotions() {
		names = append(names, strings.ToLower(e.Label()))
	}
	return strings.Join(names, ", ")
}

func newMoodCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Record and view daily moods",
	}
	cmd.AddCommand(newMoodSetCmd(c), newMoodTodayCmd(c), newMoodFamilyCmd(c))
	return cmd
}

func newMoodSetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set EMOTION",
		Short: "Record today's mood for the logged-in user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emotion, err := parseEmotion(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			user, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			mood, err := c.app.mood.Save(ctx, user.ID, family.ID, emotion)
			if err != nil {
				return err
			}
			return c.render(cmd, mood, func(w io.Writer) {
				fmt.Fprintf(w, "%s feels %s today\n", user.Name, mood.Emotion)
			})
		},
	}
}

func newMoodTodayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the logged-in user's mood for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, _, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			mood, err := c.app.mood.GetToday(ctx, user.ID)
			if err != nil {
				return err
			}
			return c.render(cmd, mood, func(w io.Writer) {
				if mood == nil {
					fmt.Fprintln(w, "No mood recorded today")
					return
				}
				fmt.Fprintln(w, mood.Emotion)
			})
		},
	}
}

func newMoodFamilyCmd(c *cli) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "family",
		Short: "Show every member's mood for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			moods, err := c.app.mood.GetFamilyDay(ctx, family.ID, date)
			if err != nil {
				return err
			}
			members, err := c.app.auth.GetFamilyMembers(ctx, family.ID)
			if err != nil {
				return err
			}

			return c.render(cmd, moods, func(w io.Writer) {
				byUser := make(map[string]models.Emotion, len(moods))
				for _, m := range moods {
					byUser[m.UserID] = m.Emotion
				}
				for _, m := range members {
					emotion, ok := byUser[m.ID]
					if !ok {
						fmt.Fprintf(w, "  %s %-16s -\n", m.Avatar, m.Name)
						continue
					}
					fmt.Fprintf(w, "  %s %-16s %s\n", m.Avatar, m.Name, emotion)
				}
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	return cmd
}

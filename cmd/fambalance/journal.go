package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newJournalCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Shared family journal",
	}
	cmd.AddCommand(newJournalAddCmd(c), newJournalListCmd(c), newJournalReactCmd(c))
	return cmd
}

func newJournalAddCmd(c *cli) *cobra.Command {
	var emotion string
	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Post a journal entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseEmotion(emotion)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			user, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			entry, err := c.app.journal.AddEntry(ctx, user.ID, family.ID, strings.Join(args, " "), e)
			if err != nil {
				return err
			}
			return c.render(cmd, entry, func(w io.Writer) {
				fmt.Fprintf(w, "Posted entry %s\n", entry.ID)
			})
		},
	}
	cmd.Flags().StringVarP(&emotion, "emotion", "e", "", "Emotion of the entry (required)")
	_ = cmd.MarkFlagRequired("emotion")
	return cmd
}

func newJournalListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the family journal, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			entries, err := c.app.journal.ListFamily(ctx, family.ID)
			if err != nil {
				return err
			}
			members, err := c.app.auth.GetFamilyMembers(ctx, family.ID)
			if err != nil {
				return err
			}

			return c.render(cmd, entries, func(w io.Writer) {
				names := make(map[string]string, len(members))
				for _, m := range members {
					names[m.ID] = m.Name
				}
				for _, e := range entries {
					fmt.Fprintf(w, "%s  %s  %s\n  %s\n", e.Date, names[e.UserID], e.Emotion, e.Text)
					if len(e.Reactions) > 0 {
						var sb strings.Builder
						for _, emoji := range c.app.catalog.ReactionEmojis {
							if n := e.ReactionCount(emoji); n > 0 {
								fmt.Fprintf(&sb, " %s%d", emoji, n)
							}
						}
						fmt.Fprintf(w, "  reactions:%s\n", sb.String())
					}
					fmt.Fprintf(w, "  id %s\n", e.ID)
				}
			})
		},
	}
}

func newJournalReactCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "react ENTRY_ID EMOJI",
		Short: "Toggle a reaction on a journal entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, _, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			if !c.app.catalog.IsReactionEmoji(args[1]) {
				c.app.log.Warn().Str("emoji", args[1]).Msg("reaction is not one of the offered emojis")
			}
			entry, err := c.app.journal.ToggleReaction(ctx, args[0], user.ID, args[1])
			if err != nil {
				return err
			}
			return c.render(cmd, entry, func(w io.Writer) {
				state := "removed"
				if entry.HasReaction(user.ID, args[1]) {
					state = "added"
				}
				fmt.Fprintf(w, "Reaction %s %s\n", args[1], state)
			})
		},
	}
}

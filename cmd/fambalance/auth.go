package main

import (
	"fmt"
	"io"
	"time"

	"fambalance/internal/models"
	"fambalance/internal/validation"

	"github.com/spf13/cobra"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func newLoginCmd(c *cli) *cobra.Command {
	var familyLogin bool
	cmd := &cobra.Command{
		Use:   "login NAME PASSWORD",
		Short: "Log in as a member, or as the family administrator with --family",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.auth.Login(cmd.Context(), args[0], args[1], familyLogin)
			if err != nil {
				return err
			}
			return c.render(cmd, user, func(w io.Writer) {
				fmt.Fprintf(w, "Logged in as %s %s (%s)\n", user.Avatar, user.Name, user.Role)
			})
		},
	}
	cmd.Flags().BoolVar(&familyLogin, "family", false, "NAME is the family name and PASSWORD the family password")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

type sessionView struct {
	User   *models.User   `json:"user"`
	Family *models.Family `json:"family"`
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and family",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, family, err := c.app.session(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(cmd, sessionView{User: user, Family: family}, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s (%s) in %s\n", user.Avatar, user.Name, user.Role, family.Name)
				fmt.Fprintf(w, "Harmony points: %d, connection points: %d\n", user.HarmonyPoints, user.ConnectionPoints)
			})
		},
	}
}

func newProfileCmd(c *cli) *cobra.Command {
	var p profileFlags
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the logged-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, _, err := c.app.session(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				user.Name = p.name
			}
			if flags.Changed("birth-date") {
				user.BirthDate = p.birthDate
			}
			if flags.Changed("gender") {
				user.Gender = models.Gender(p.gender)
			}
			if flags.Changed("avatar") {
				user.Avatar = p.avatar
			}

			err = validation.ValidateProfile(models.Profile{
				Name:      user.Name,
				BirthDate: user.BirthDate,
				Gender:    user.Gender,
				Avatar:    user.Avatar,
			})
			if err != nil {
				return err
			}

			if err := c.app.auth.UpdateProfile(ctx, user); err != nil {
				return err
			}
			return c.render(cmd, user, func(w io.Writer) {
				fmt.Fprintf(w, "Updated %s %s\n", user.Avatar, user.Name)
			})
		},
	}
	p.bind(cmd, "")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"strings"

	"fambalance/internal/models"
	"fambalance/internal/service"

	"github.com/spf13/cobra"
)

// profileFlags binds the member profile fields to a command
type profileFlags struct {
	name      string
	birthDate string
	gender    string
	avatar    string
}

func (p *profileFlags) bind(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringVar(&p.name, prefix+"name", "", "Member name")
	cmd.Flags().StringVar(&p.birthDate, prefix+"birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.gender, prefix+"gender", string(models.GenderOther), "Feminino, Masculino or Outro")
	cmd.Flags().StringVar(&p.avatar, prefix+"avatar", "", "Avatar emoji (defaults to the first catalog avatar)")
}

func (p *profileFlags) profile() models.Profile {
	return models.Profile{
		Name:      p.name,
		BirthDate: p.birthDate,
		Gender:    models.Gender(p.gender),
		Avatar:    p.avatar,
	}
}

func newRegisterCmd(c *cli) *cobra.Command {
	var (
		familyName string
		email      string
		password   string
		admin      profileFlags
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new family and its administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := c.app.auth.RegisterFamily(ctx, service.RegisterFamilyInput{
				FamilyName:     familyName,
				AdminEmail:     email,
				FamilyPassword: password,
				Admin:          admin.profile(),
			})
			if err != nil {
				return err
			}
			family, err := c.app.auth.GetFamily(ctx, res.FamilyID)
			if err != nil {
				return err
			}

			return c.render(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Registered %s (family %s, admin %s)\n", family.Name, res.FamilyID, res.AdminID)
				fmt.Fprintf(w, "Invite code: %s\n", family.InviteCode)
				if family.TrialEndsAt != nil {
					fmt.Fprintf(w, "Premium trial until %s\n", models.FormatDate(*family.TrialEndsAt))
				}
			})
		},
	}
	cmd.Flags().StringVar(&familyName, "family", "", "Family name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Administrator email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Family password (required)")
	admin.bind(cmd, "")
	_ = cmd.MarkFlagRequired("family")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth-date")
	return cmd
}

func newFamilyCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "family",
		Short: "Manage the logged-in family",
	}
	cmd.AddCommand(
		newFamilyShowCmd(c),
		newFamilyAddMemberCmd(c),
		newFamilyJoinCmd(c),
		newFamilyUpdateCmd(c),
		newFamilyPremiumCmd(c),
		newFamilyBirthdaysCmd(c),
		newFamilyResetPasswordCmd(c),
	)
	return cmd
}

type familyView struct {
	Family        *models.Family `json:"family"`
	Members       []models.User  `json:"members"`
	Premium       bool           `json:"effectivePremium"`
	TrialDaysLeft int            `json:"trialDaysLeft"`
}

func newFamilyShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the family, its members and premium status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			members, err := c.app.auth.GetFamilyMembers(ctx, family.ID)
			if err != nil {
				return err
			}

			now := nowUTC()
			view := familyView{
				Family:        family,
				Members:       members,
				Premium:       c.app.auth.IsEffectivelyPremium(family),
				TrialDaysLeft: family.TrialDaysRemaining(now),
			}
			return c.render(cmd, view, func(w io.Writer) {
				fmt.Fprintf(w, "%s  (invite code %s)\n", family.Name, family.InviteCode)
				switch {
				case family.IsPremium:
					fmt.Fprintln(w, "Plan: premium")
				case view.TrialDaysLeft > 0:
					fmt.Fprintf(w, "Plan: premium trial, %d day(s) left\n", view.TrialDaysLeft)
				default:
					fmt.Fprintln(w, "Plan: free")
				}
				for _, m := range members {
					fmt.Fprintf(w, "  %s %-16s %-6s age %-3d harmony %-4d connection %d\n",
						m.Avatar, m.Name, m.Role, m.Age(now), m.HarmonyPoints, m.ConnectionPoints)
				}
			})
		},
	}
}

func newFamilyAddMemberCmd(c *cli) *cobra.Command {
	var (
		member   profileFlags
		password string
	)
	cmd := &cobra.Command{
		Use:   "add-member",
		Short: "Add a member to the logged-in family",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			user, err := c.app.auth.AddMember(ctx, family.ID, member.profile(), password)
			if err != nil {
				return err
			}
			return c.render(cmd, user, func(w io.Writer) {
				fmt.Fprintf(w, "Added %s %s (%s)\n", user.Avatar, user.Name, user.ID)
			})
		},
	}
	member.bind(cmd, "")
	cmd.Flags().StringVar(&password, "password", "", "Individual password; empty means family login only")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth-date")
	return cmd
}

func newFamilyJoinCmd(c *cli) *cobra.Command {
	var (
		code     string
		member   profileFlags
		password string
	)
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a family with its invite code",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.auth.JoinByInviteCode(cmd.Context(), code, member.profile(), password)
			if err != nil {
				return err
			}
			return c.render(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Joined family %s as %s\n", res.FamilyID, res.MemberID)
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Invite code (required)")
	member.bind(cmd, "")
	cmd.Flags().StringVar(&password, "password", "", "Individual password")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth-date")
	return cmd
}

func newFamilyUpdateCmd(c *cli) *cobra.Command {
	var name, password string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename the family or change its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				family.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("password") {
				family.FamilyPassword = password
			}
			if err := c.app.auth.UpdateFamily(ctx, family); err != nil {
				return err
			}
			return c.render(cmd, family, func(w io.Writer) {
				fmt.Fprintf(w, "Updated %s\n", family.Name)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New family name")
	cmd.Flags().StringVar(&password, "password", "", "New family password")
	return cmd
}

func newFamilyPremiumCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "premium on|off",
		Short:     "Set or clear the paid premium flag",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			family, err = c.app.auth.SetPremium(ctx, family.ID, args[0] == "on")
			if err != nil {
				return err
			}
			return c.render(cmd, family, func(w io.Writer) {
				fmt.Fprintf(w, "Premium: %v\n", family.IsPremium)
			})
		},
	}
}

func newFamilyBirthdaysCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "birthdays",
		Short: "List upcoming birthdays",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, family, err := c.app.session(ctx)
			if err != nil {
				return err
			}
			birthdays, err := c.app.auth.FamilyBirthdays(ctx, family.ID)
			if err != nil {
				return err
			}
			return c.render(cmd, birthdays, func(w io.Writer) {
				if len(birthdays) == 0 {
					fmt.Fprintln(w, "No birthdays coming up")
					return
				}
				for _, b := range birthdays {
					when := fmt.Sprintf("in %d day(s)", b.DaysUntil)
					if b.DaysUntil == 0 {
						when = "today"
					}
					fmt.Fprintf(w, "%s %s turns %d on %s (%s)\n",
						b.User.Avatar, b.User.Name, b.TurningAge, models.FormatDate(b.NextBirthday), when)
				}
			})
		},
	}
}

func newFamilyResetPasswordCmd(c *cli) *cobra.Command {
	var familyName, email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Send a password reset notice to the family administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.auth.RequestPasswordReset(cmd.Context(), familyName, email); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password reset notice sent")
			return nil
		},
	}
	cmd.Flags().StringVar(&familyName, "family", "", "Family name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Administrator email (required)")
	_ = cmd.MarkFlagRequired("family")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

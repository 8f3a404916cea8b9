package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func newLoginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := open(ctx, a)
			if err != nil {
				return err
			}
			defer rt.close()

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if email == "" {
				if email, err = p.line("Email: "); err != nil {
					return err
				}
			}
			password, err := p.password("Password: ")
			if err != nil {
				return err
			}

			res, err := rt.sf.Session.Login(ctx, domain.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", displayName(res.User), res.User.Role.Normalize())
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (does not log in)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := open(ctx, a)
			if err != nil {
				return err
			}
			defer rt.close()

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if email == "" {
				if email, err = p.line("Email: "); err != nil {
					return err
				}
			}
			if name == "" {
				if name, err = p.line("Full name: "); err != nil {
					return err
				}
			}
			password, err := p.password("Password: ")
			if err != nil {
				return err
			}
			confirm, err := p.password("Repeat password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			user, err := rt.sf.Session.Register(ctx, domain.Profile{Email: email, Password: password, FullName: name})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %d created for %s. Run `storefront login` to sign in.\n", user.ID, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "full name")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := open(ctx, a)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.sf.Session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer rt.close()

			s := rt.sf.Session.Current()
			if !s.Authenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> id=%d role=%s\n", displayName(*s.User), s.User.Email, s.User.ID, s.Role)
			return nil
		},
	}
}

func displayName(u domain.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

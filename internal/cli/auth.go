package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/notesapp/notes-manager/internal/client/session"
)

func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Create an account on the server and sign in with it.

Name and email can be given as flags; anything missing is prompted for.
The password is always prompted for and never echoed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			if name, err = p.valueOr(name, "Name"); err != nil {
				return WrapExitError(ExitCommandError, "register", err)
			}
			if email, err = p.valueOr(email, "Email"); err != nil {
				return WrapExitError(ExitCommandError, "register", err)
			}
			password, err := p.password("Password")
			if err != nil {
				return WrapExitError(ExitCommandError, "register", err)
			}

			res, err := a.client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return apiFailure("register", err)
			}
			if err := a.signIn(res); err != nil {
				return err
			}

			a.out.Status("Registered and signed in as %s.", res.Name)
			u := res.User()
			return a.out.Success(u, func(w io.Writer) error { return writeUser(w, &u) })
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			if email, err = p.valueOr(email, "Email"); err != nil {
				return WrapExitError(ExitCommandError, "login", err)
			}
			password, err := p.password("Password")
			if err != nil {
				return WrapExitError(ExitCommandError, "login", err)
			}

			res, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return apiFailure("login", err)
			}
			if err := a.signIn(res); err != nil {
				return err
			}

			a.out.Status("Signed in as %s.", res.Name)
			u := res.User()
			return a.out.Success(u, func(w io.Writer) error { return writeUser(w, &u) })
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if err := a.session.Apply(session.LoggedOut{}); err != nil {
				return WrapExitError(ExitFailure, "logout", err)
			}
			a.out.Status("Signed out.")
			return nil
		},
	}
}

func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if a.session.State() == session.Anonymous {
				return errNotLoggedIn
			}
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				if a.session.State() == session.Loading {
					return a.restoreFailed(err)
				}
				return a.fail("whoami", err)
			}
			if a.session.State() == session.Loading {
				if err := a.session.Apply(session.Restored{User: sessionUser(me.ID, me.Name, me.Email)}); err != nil {
					return WrapExitError(ExitFailure, "restore session", err)
				}
			}

			return a.out.Success(me, func(w io.Writer) error { return writeUser(w, me) })
		},
	}
}

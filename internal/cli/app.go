package cli

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/notesapp/notes-manager/internal/client/api"
	"github.com/notesapp/notes-manager/internal/client/session"
	"github.com/notesapp/notes-manager/pkg/logger"
)

// app is the per-invocation wiring shared by every command.
type app struct {
	client  *api.Client
	session *session.Session
	out     *OutputFormatter
	log     zerolog.Logger
}

func newApp(cmd *cobra.Command, opts *RootOptions) (*app, error) {
	log := zerolog.Nop()
	if opts.Verbose {
		log = logger.New(logger.Options{
			Level:   "debug",
			Pretty:  true,
			Service: "notes-cli",
			Output:  cmd.ErrOrStderr(),
		})
	}

	path := opts.TokenFile
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, WrapExitError(ExitFailure, "session", err)
		}
		path = p
	}

	sess, err := session.New(session.FileStore{Path: path})
	if err != nil {
		return nil, WrapExitError(ExitFailure, "session", err)
	}
	log.Debug().Str("path", path).Stringer("state", sess.State()).Msg("session loaded")

	return &app{
		client:  api.New(opts.APIURL, api.WithToken(sess.Token()), api.WithLogger(log)),
		session: sess,
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
		log: log,
	}, nil
}

var errNotLoggedIn = NewExitError(ExitAuth, "not logged in; run `notes login` first")

// requireLogin resolves a persisted token into an authenticated session.
func (a *app) requireLogin(ctx context.Context) (*session.User, error) {
	switch a.session.State() {
	case session.Authenticated:
		return a.session.User(), nil
	case session.Anonymous:
		return nil, errNotLoggedIn
	}

	me, err := a.client.Me(ctx)
	if err != nil {
		return nil, a.restoreFailed(err)
	}
	if err := a.session.Apply(session.Restored{User: sessionUser(me.ID, me.Name, me.Email)}); err != nil {
		return nil, WrapExitError(ExitFailure, "restore session", err)
	}
	return a.session.User(), nil
}

// signIn records a successful register or login.
func (a *app) signIn(res *api.Auth) error {
	if err := a.session.Apply(session.LoggedIn{User: sessionUser(res.ID, res.Name, res.Email), Token: res.Token}); err != nil {
		return WrapExitError(ExitFailure, "save session", err)
	}
	a.client.SetToken(res.Token)
	return nil
}

// fail converts an API error from an authenticated call into an ExitError.
// A rejected token ends the session.
func (a *app) fail(action string, err error) error {
	if api.IsUnauthorized(err) && a.session.State() != session.Anonymous {
		if clearErr := a.session.Apply(session.AuthFailed{}); clearErr != nil {
			a.log.Warn().Err(clearErr).Msg("clear session")
		}
		return NewExitError(ExitAuth, "session expired; run `notes login` again")
	}
	return apiFailure(action, err)
}

// restoreFailed ends the session after any failed current-user check, not
// only a rejected token.
func (a *app) restoreFailed(err error) error {
	if clearErr := a.session.Apply(session.AuthFailed{}); clearErr != nil {
		a.log.Warn().Err(clearErr).Msg("clear session")
	}
	if api.IsUnauthorized(err) {
		return NewExitError(ExitAuth, "session expired; run `notes login` again")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return NewExitError(ExitFailure, "restore session: "+apiErr.Message+"; signed out")
	}
	return WrapExitError(ExitFailure, "restore session: cannot reach server; signed out", err)
}

func apiFailure(action string, err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return WrapExitError(ExitFailure, action+": cannot reach server", err)
	}
	return NewExitError(ExitFailure, action+": "+apiErr.Message)
}

// refreshList refetches every note and renders it, so the user sees the
// server's view after a change.
func (a *app) refreshList(ctx context.Context) error {
	list, err := a.client.ListNotes(ctx)
	if err != nil {
		return a.fail("list notes", err)
	}
	return a.out.Success(list, func(w io.Writer) error { return writeNoteTable(w, list) })
}

func sessionUser(id, name, email string) session.User {
	return session.User{ID: id, Name: name, Email: email}
}

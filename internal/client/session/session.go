// Package session tracks whether the CLI user is signed in.
//
// A session starts in Loading when a token was persisted and in Anonymous
// otherwise. Apply is the only way to move between states.
package session

import (
	"errors"
	"fmt"
)

type State int

const (
	Loading State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInvalidTransition is returned by Apply for an event the current state
// does not accept.
var ErrInvalidTransition = errors.New("invalid session transition")

type User struct {
	ID    string
	Name  string
	Email string
}

// Event is one of Restored, LoggedIn, AuthFailed or LoggedOut.
type Event interface {
	event()
}

// Restored reports that the persisted token resolved to User.
type Restored struct{ User User }

// LoggedIn reports a successful login or registration.
type LoggedIn struct {
	User  User
	Token string
}

// AuthFailed reports that the server rejected the token.
type AuthFailed struct{}

// LoggedOut reports an explicit logout.
type LoggedOut struct{}

func (Restored) event()   {}
func (LoggedIn) event()   {}
func (AuthFailed) event() {}
func (LoggedOut) event()  {}

// TokenStore persists the bearer token between invocations.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type Session struct {
	store TokenStore
	state State
	user  *User
	token string
}

// New loads the persisted token, if any, and returns the initial session.
func New(store TokenStore) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	s := &Session{store: store, state: Anonymous, token: token}
	if token != "" {
		s.state = Loading
	}
	return s, nil
}

func (s *Session) State() State  { return s.state }
func (s *Session) Token() string { return s.token }

// User returns the signed-in user, or nil unless the state is Authenticated.
func (s *Session) User() *User {
	if s.state != Authenticated {
		return nil
	}
	u := *s.user
	return &u
}

// Apply performs one transition. AuthFailed and LoggedOut always clear the
// persisted token.
func (s *Session) Apply(ev Event) error {
	switch ev := ev.(type) {
	case Restored:
		if s.state != Loading {
			return fmt.Errorf("%w: restored while %s", ErrInvalidTransition, s.state)
		}
		s.authenticate(ev.User)
		return nil

	case LoggedIn:
		if ev.Token == "" {
			return fmt.Errorf("%w: login without token", ErrInvalidTransition)
		}
		if err := s.store.Save(ev.Token); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		s.token = ev.Token
		s.authenticate(ev.User)
		return nil

	case AuthFailed, LoggedOut:
		s.state = Anonymous
		s.user = nil
		s.token = ""
		if err := s.store.Clear(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
}

func (s *Session) authenticate(u User) {
	s.state = Authenticated
	s.user = &u
}

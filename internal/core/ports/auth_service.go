package ports

import (
	"context"

	"github.com/notesapp/notes-manager/internal/core/domain"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	IssueToken(userID string) (string, error)
	// Authenticate resolves a bearer token to the user it was issued for.
	// Any token problem yields domain.ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

package handler

import (
	"time"

	"github.com/notesapp/notes-manager/internal/core/ports"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest carries no validation tags. Blank fields fail as invalid
// credentials.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toAuthResponse(res *ports.AuthResult) authResponse {
	return authResponse{
		ID:    res.User.ID,
		Name:  res.User.Username,
		Email: res.User.Email,
		Token: res.Token,
	}
}

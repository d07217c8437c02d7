package api

import "time"

// User is the public profile returned by the server.
type User struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Auth is the response of register and login.
type Auth struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// User returns the profile part of the response.
func (a *Auth) User() User {
	return User{ID: a.ID, Name: a.Name, Email: a.Email}
}

type Note struct {
	ID          string     `json:"id" yaml:"id"`
	OwnerID     string     `json:"owner_id" yaml:"owner_id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Date        *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
}

// NoteInput is the body of a create request. Date is YYYY-MM-DD or empty.
type NoteInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Date        string   `json:"date,omitempty"`
}

// NotePatch is the body of an update request. Only non-nil fields are sent;
// a non-nil empty Date clears the stored date.
type NotePatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Date        *string   `json:"date,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Tags == nil && p.Date == nil
}

package users

import (
	"context"
	"net/mail"
	"strings"

	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/listing"
	"github.com/jrsteele09/quote-admin/resource"
)

// Path is the remote API collection for dashboard users.
const Path = "users"

// RoleType represents what a dashboard user may do
type RoleType string

const (
	RoleAdmin RoleType = "admin" // Can manage users as well as quotes, parts and rows
	RoleUser  RoleType = "user"  // Can manage quotes, parts and rows
)

func (r RoleType) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID        string   `json:"id,omitempty"`        // Unique identifier assigned by the API
	Email     string   `json:"email"`               // Login email address
	FirstName string   `json:"firstName,omitempty"` // First name of the user
	LastName  string   `json:"lastName,omitempty"`  // Last name of the user
	Role      RoleType `json:"role,omitempty"`      // admin or user
	Active    bool     `json:"active"`              // Inactive users cannot sign in
	Password  string   `json:"password,omitempty"`  // Only sent when creating or resetting
}

// FullName falls back to the email when no name is set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Validate checks a user before it is sent to the API.
func (u User) Validate() error {
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "invalid email %q", u.Email)
	}
	if u.Role != "" && !u.Role.Valid() {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "unknown role %q", u.Role)
	}
	return nil
}

// Fields lists what the users table can sort and search on.
var Fields = listing.Fields[User]{
	"email":     func(u User) any { return u.Email },
	"firstName": func(u User) any { return u.FirstName },
	"lastName":  func(u User) any { return u.LastName },
	"name":      func(u User) any { return u.FullName() },
	"role":      func(u User) any { return string(u.Role) },
	"active":    func(u User) any { return u.Active },
}

type Repo = resource.Repo[User]

func NewRepo(client resource.Doer) Repo {
	return resource.NewCollection[User](client, Path)
}

// WithoutPassword is the form of u that is safe to hand to the browser.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// ListActive returns only the users that can sign in.
func ListActive(ctx context.Context, repo Repo) ([]User, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]User, 0, len(all))
	for _, u := range all {
		if u.Active {
			active = append(active, u)
		}
	}
	return active, nil
}

package identity

import (
	"regexp"
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an authenticated identity in the marketplace.
// A user owns at most one store profile; the profile side holds the reference.
type User struct {
	shared.BaseEntity
	Email     string `gorm:"type:varchar(254);not null;uniqueIndex"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a validated email
func NewUser(email, firstName, lastName string) (*User, error) {
	user := &User{
		BaseEntity: shared.NewBaseEntity(),
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	return user, nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = email
	u.Touch()
	return nil
}

// SetName sets the user's first and last name
func (u *User) SetName(firstName, lastName string) error {
	if len(firstName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "First name cannot exceed 100 characters")
	}
	if len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Last name cannot exceed 100 characters")
	}
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Touch()
	return nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

package catalog

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is the owner of the catalog. It only personalises reports.
type User struct {
	Name  string
	Email string
}

// NewUser validates the owner's name and email.
func NewUser(name, email string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, newError(ErrValidation, "name cannot be empty")
	}
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return User{}, newError(ErrValidation, "invalid email format")
	}
	return User{Name: name, Email: email}, nil
}

func (u User) String() string {
	return "User: " + u.Name + " (" + u.Email + ")"
}

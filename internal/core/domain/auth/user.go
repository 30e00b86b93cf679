package auth

import (
	"errors"
)

// User is an identity known to the service. ID is the subject issued by the
// identity provider.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("id is required")
	}
	if u.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

package models

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySubject = errors.New("token subject is empty")

// Token is a session token of the task service. The subject claim carries
// the user id; SignedString is what travels in the Authorization header.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
}

// GetUserID parses the subject claim.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("read token subject: %w", err)
	}
	if sub == "" {
		return 0, ErrEmptySubject
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject %q is not a user id: %w", sub, err)
	}
	return userID, nil
}

func (t *Token) String() string {
	return t.SignedString
}

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyOwner is returned when a token carries no subject.
var ErrEmptyOwner = errors.New("token subject is empty")

// Token wraps a JWT used to authenticate against the sync server.
//
// The "sub" claim names the owner of the remote states; every remote state
// is scoped to exactly one owner.
type Token struct {
	// Token is the underlying JWT. Only the compact form leaves the process.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Owner is a cached copy of the "sub" claim.
	Owner string `json:"-"`
}

// GetOwner returns the token's subject.
func (t *Token) GetOwner() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", ErrEmptyOwner
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// Package auth issues and verifies the bearer tokens that authenticate API
// calls, and owns password hashing for stored accounts.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/doctrans/dtrs/model"
)

const defaultTokenLifetime = 24 * time.Hour

// Claims is the JWT payload carried by every issued token.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Authenticator signs and verifies session tokens with a shared HMAC key.
type Authenticator struct {
	signingKey []byte
	lifetime   time.Duration
}

// NewAuthenticator creates an Authenticator around the given signing key.
func NewAuthenticator(signingKey []byte) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
		lifetime:   defaultTokenLifetime,
	}
}

// IssueToken mints a signed bearer token for the given user.
func (a *Authenticator) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Admin: user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return token, nil
}

// Verify parses and validates a bearer token, returning the Session it
// represents.
func (a *Authenticator) Verify(token string) (*model.Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.signingKey, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse session token")
	}
	if !parsed.Valid {
		return nil, errors.New("session token is not valid")
	}

	return &model.Session{
		Token:  token,
		UserID: claims.Subject,
		Admin:  claims.Admin,
	}, nil
}

// HashPassword produces a bcrypt hash suitable for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

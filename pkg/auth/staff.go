package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const isStaffKey contextKey = "is_staff"

// WithStaff stores the staff flag in the context.
func WithStaff(ctx context.Context, isStaff bool) context.Context {
	return context.WithValue(ctx, isStaffKey, isStaff)
}

// IsStaffFromContext reports whether the request belongs to a signed-in staff member.
// Returns false when not set.
func IsStaffFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isStaffKey).(bool)
	return v
}

// ErrInvalidCredentials is returned by Login for an unknown user or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// StaffAccount is a configured staff login.
type StaffAccount struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Authenticator checks staff credentials and issues session tokens.
type Authenticator struct {
	accounts map[string]string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthenticator creates an Authenticator for the given accounts.
func NewAuthenticator(accounts []StaffAccount, secret []byte, ttl time.Duration) *Authenticator {
	m := make(map[string]string, len(accounts))
	for _, a := range accounts {
		m[strings.ToLower(strings.TrimSpace(a.Username))] = a.PasswordHash
	}
	return &Authenticator{accounts: m, secret: secret, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued sessions.
func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

// Login verifies username and password and returns a signed session token.
func (a *Authenticator) Login(username, password string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, ok := a.accounts[username]
	if !ok || password == "" {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return CreateSessionToken(username, a.secret, a.ttl, a.now())
}

// HashPassword returns the bcrypt hash stored in staff account configuration.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

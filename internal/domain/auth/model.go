// Package auth provides authentication and role-based access logic.
package auth

import (
	"time"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
)

// Role grants a user one access level. Admins and managers may mutate
// inventory and expenses, employees read.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanMutate reports whether the role may change inventory or expenses.
func (r Role) CanMutate() bool {
	return r == RoleAdmin || r == RoleManager
}

// User is an account that can sign in to the dashboard.
type User struct {
	ID           id.ID
	Username     string
	Name         string
	PasswordHash string
	Role         Role
	Active       bool

	FailedLogins int
	LockedUntil  *time.Time
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates an active user with the given credentials hash.
func NewUser(username, name, passwordHash string, role Role) *User {
	now := time.Now()
	return &User{
		ID:           id.New(),
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanLogin checks account state before password verification.
func (u *User) CanLogin() error {
	if !u.Active {
		return apperror.NewUnauthorized("account is disabled")
	}
	if u.LockedUntil != nil && time.Now().Before(*u.LockedUntil) {
		return apperror.NewUnauthorized("account is temporarily locked")
	}
	return nil
}

// RecordFailedLogin increments the failure counter and locks the
// account once the limit is reached.
func (u *User) RecordFailedLogin(maxAttempts int, lockFor time.Duration) {
	u.FailedLogins++
	if u.FailedLogins >= maxAttempts {
		until := time.Now().Add(lockFor)
		u.LockedUntil = &until
		u.FailedLogins = 0
	}
	u.UpdatedAt = time.Now()
}

// RecordLogin resets failure tracking after a successful login.
func (u *User) RecordLogin() {
	now := time.Now()
	u.FailedLogins = 0
	u.LockedUntil = nil
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Credentials is a login request.
type Credentials struct {
	Username string
	Password string
}

// Token is an issued access token with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

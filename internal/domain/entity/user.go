// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the access level of a user.
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleMember UserRole = "MEMBER"
)

// IsValid checks if the role is supported.
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleMember
}

// User represents a person who records ledger entries.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User. An empty role defaults to member.
func NewUser(name, email, passwordHash string, role UserRole) *User {
	now := time.Now().UTC()
	if role == "" {
		role = UserRoleMember
	}

	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

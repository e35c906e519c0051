// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

/*
Package users implements staff account management for the admin panel.

It defines the User entity and the business rules around account lifecycle:
who may create or delete accounts of which role, password resets, and the
live account checks backing the authentication middleware.

# Architecture

This layer is the "Truth" of the system for identity data. Role rules are
enforced here, in the service, so every transport (HTTP today) gets the
same answers.
*/
package users

import (
	"time"

	"github.com/foureyedgems/admin-api/internal/platform/sec"
)

// # Domain Entities

// User represents a staff member with access to the admin panel.
type User struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role   `json:"role"`
	IsActive     bool       `json:"isActive"`
	Phone        string     `json:"phone,omitempty"`
	Department   string     `json:"department,omitempty"`
	AvatarURL    string     `json:"avatarUrl,omitempty"`
	LastLoginAt  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FullName returns the display name used in audit descriptions.
func (user *User) FullName() string {
	return user.FirstName + " " + user.LastName
}

// Filter narrows account listings.
type Filter struct {
	Search     string // matches first name, last name, or email
	Role       string
	IsActive   *bool
	Department string
}

// # Field Identifiers

// Field names for validation in the users domain.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldDepartment = "department"
	FieldPhone      = "phone"
	FieldAvatarURL  = "avatarUrl"
)

// MinPasswordLength applies to created accounts and resets alike.
const MinPasswordLength = 8

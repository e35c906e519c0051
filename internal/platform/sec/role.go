// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed. Authorization decisions are made against explicit
// allow-lists per route, not against a numeric hierarchy.
type Role string

const (
	// Full system access, including managing other admins
	RoleSuperAdmin Role = "super_admin"

	// Can manage users, settings, and all business records
	RoleAdmin Role = "admin"

	// Default role for regular back-office staff
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

// In reports whether the role is present in the given allow-list.
//
// An empty allow-list matches nothing; callers expressing "any authenticated
// user" must skip the role check entirely rather than pass an empty list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Roles returns all valid role values, useful for validation messages.
func Roles() []string {
	return []string{string(RoleSuperAdmin), string(RoleAdmin), string(RoleStaff)}
}

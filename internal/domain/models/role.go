package models

import "strings"

// Role is the already-authenticated role of the caller.
type Role string

const (
	RoleClerk   Role = "Clerk"
	RoleManager Role = "Manager"
)

// ParseRole normalizes a role token. Unknown tokens yield an empty Role.
func ParseRole(value string) Role {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "clerk":
		return RoleClerk
	case "manager":
		return RoleManager
	default:
		return ""
	}
}

// Require returns an UnauthorizedError unless r is one of allowed.
func (r Role) Require(action string, allowed ...Role) error {
	for _, a := range allowed {
		if r == a {
			return nil
		}
	}
	return &UnauthorizedError{Role: r, Action: action}
}

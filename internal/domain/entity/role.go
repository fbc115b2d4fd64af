// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the side of the marketplace an account belongs to.
type Role string

const (
	// RoleIdeaSubmitter indicates an account that pitches startup ideas.
	RoleIdeaSubmitter Role = "IDEA_SUBMITTER"
	// RoleCapitalProvider indicates an account that invests in ideas.
	RoleCapitalProvider Role = "CAPITAL_PROVIDER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleIdeaSubmitter, RoleCapitalProvider:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

package domain

import "strings"

// UserGroup is the permission group of an SW360 user.
type UserGroup string

// User groups.
const (
	GroupUser           UserGroup = "USER"
	GroupClearingAdmin  UserGroup = "CLEARING_ADMIN"
	GroupClearingExpert UserGroup = "CLEARING_EXPERT"
	GroupECCAdmin       UserGroup = "ECC_ADMIN"
	GroupSecurityAdmin  UserGroup = "SECURITY_ADMIN"
	GroupSW360Admin     UserGroup = "SW360_ADMIN"
	GroupAdmin          UserGroup = "ADMIN"
)

// User is the requesting user as seen by visibility rules.
type User struct {
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Group      UserGroup `json:"userGroup"`
}

// BusinessUnit derives the business unit from the department:
// the first three space separated tokens.
func (u User) BusinessUnit() string {
	return BusinessUnitOf(u.Department)
}

// IsAdmin reports whether the user's group may see every business unit's projects.
func (u User) IsAdmin() bool {
	switch u.Group {
	case GroupClearingAdmin, GroupAdmin, GroupSW360Admin:
		return true
	default:
		return false
	}
}

// BusinessUnitOf returns the business unit part of a department string.
func BusinessUnitOf(department string) string {
	parts := strings.Fields(department)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, " ")
}

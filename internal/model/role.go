package model

import (
	"fmt"
	"slices"
	"strings"
)

// Role selects visitor behavior: dialog tree and completion effects.
type Role int32

const (
	// RolePatron brings a found item and offers it to the desk
	RolePatron Role = iota
	// RoleSearcher claims to have lost something; may come back for a second talk
	RoleSearcher
	// RoleOfficer checks contraband and adjusts reputation
	RoleOfficer
)

// roleOrder is the fixed walk order for weighted draws.
var roleOrder = [...]Role{RolePatron, RoleSearcher, RoleOfficer}

// Roles returns all roles in fixed order. The slice is a copy.
func Roles() []Role {
	return slices.Clone(roleOrder[:])
}

// String returns lowercase role name (matches config keys).
func (r Role) String() string {
	switch r {
	case RolePatron:
		return "patron"
	case RoleSearcher:
		return "searcher"
	case RoleOfficer:
		return "officer"
	default:
		return "unknown"
	}
}

// ParseRole parses config role name.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patron":
		return RolePatron, nil
	case "searcher":
		return RoleSearcher, nil
	case "officer":
		return RoleOfficer, nil
	default:
		return 0, fmt.Errorf("unknown visitor role %q", s)
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a member's place in the household. Raw values are persisted,
// so they must stay stable.
type Role string

const (
	RoleParent      Role = "Parent"
	RoleGrandparent Role = "Grandparent"
	RoleNanny       Role = "Nanny"
	RoleSibling     Role = "Sibling"
	RoleOther       Role = "Other"
)

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleParent, RoleGrandparent, RoleNanny, RoleSibling, RoleOther}
}

type Member struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Emoji     string    `json:"emoji"`
	ColorSeed int       `json:"color_seed"`
	JoinedAt  time.Time `json:"joined_at"`
	Archived  bool      `json:"archived"`
}

// NewMember creates an unarchived member with a fresh id.
func NewMember(name string, role Role, emoji string, colorSeed int, joinedAt time.Time) Member {
	return Member{
		ID:        uuid.New(),
		Name:      name,
		Role:      role,
		Emoji:     emoji,
		ColorSeed: colorSeed,
		JoinedAt:  joinedAt,
	}
}

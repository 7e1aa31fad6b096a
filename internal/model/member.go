package model

import "time"

// MemberID uniquely identifies a movie night member across the system
type MemberID string

// Role determines what a member is allowed to do
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Permission names a capability checked before privileged actions
type Permission string

// PermissionManageMovies guards movie CRUD and cursor changes
const PermissionManageMovies Permission = "movie:manage"

// Grants reports whether the role carries a permission
func (r Role) Grants(perm Permission) bool {
	switch perm {
	case PermissionManageMovies:
		return r == RoleAdmin
	default:
		return false
	}
}

// Member represents a participant in the movie night group.
// Slot is the member's position in the canonical rotation order;
// it is assigned by the roster, not stored.
type Member struct {
	ID          MemberID
	DisplayName string
	AvatarURL   string
	Role        Role
	Slot        int
	CreatedAt   time.Time
}

// Credentials holds authentication data for a member.
// Stored separately so password hashes never travel with member records.
type Credentials struct {
	MemberID     MemberID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

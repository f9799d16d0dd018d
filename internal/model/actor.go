package model

import "strings"

// Role is the platform-wide role an authenticated actor holds.
type Role string

const (
	RoleUser        Role = "user"
	RoleStaff       Role = "staff"
	RoleCoordinator Role = "coordinator"
	RoleAdmin       Role = "admin"
	RoleSuperAdmin  Role = "super-admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleCoordinator, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsOrganizerClass reports whether the role helps run events for an
// organization. Super-admin is a platform-level oversight role and is
// deliberately not organizer-class.
func (r Role) IsOrganizerClass() bool {
	return r == RoleStaff || r == RoleCoordinator || r == RoleAdmin
}

// OrgID is a canonical organization identifier. All organization references
// (raw ids, populated references, claims) are normalized down to this type at
// the boundary so authorization comparisons are always same-typed.
type OrgID string

// NewOrgID normalizes a raw organization reference into its canonical form.
func NewOrgID(raw string) OrgID {
	return OrgID(strings.ToLower(strings.TrimSpace(raw)))
}

// Matches reports whether two organization references resolve to the same
// organization. An empty reference never matches anything, including another
// empty reference: comparisons fail closed.
func (o OrgID) Matches(other OrgID) bool {
	return o != "" && o == other
}

// Actor is the identity of the current request, supplied by the
// authentication middleware. The service layer treats it as opaque input.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	OrgID OrgID  `json:"organization_id"`
}

// Organization is the minimal organization record the core needs: enough to
// address notifications. Organization management itself lives elsewhere.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

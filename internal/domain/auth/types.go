// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Role represents an application authorization role.
// Kept in string form for easy persistence and cookies.
// The set is closed: adding a role is a code change, not a runtime operation.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSuperHR     Role = "super_hr"
	RoleHRManager   Role = "hr_manager"
	RoleRecruiter   Role = "recruiter"
	RoleInterviewer Role = "interviewer"
	RoleManager     Role = "manager"
	RoleTeamLead    Role = "team_lead"
	RoleEmployee    Role = "employee"
	RoleIntern      Role = "intern"
	RoleGuest       Role = "guest"
	RoleFinance     Role = "finance"
	RoleITAdmin     Role = "it_admin"
	RoleSupport     Role = "support"
	RoleAuditor     Role = "auditor"
)

// AllRoles enumerates every role the application knows about, in catalog order.
// Two historical role lists disagreed on the last four entries; the longer
// enumeration is authoritative and the extra roles simply carry no access yet.
func AllRoles() []Role {
	return []Role{
		RoleAdmin, RoleSuperHR, RoleHRManager, RoleRecruiter, RoleInterviewer,
		RoleManager, RoleTeamLead, RoleEmployee, RoleIntern, RoleGuest,
		RoleFinance, RoleITAdmin, RoleSupport, RoleAuditor,
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	for _, known := range AllRoles() {
		if r == known {
			return true
		}
	}
	return false
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., samAccountName or sub)
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

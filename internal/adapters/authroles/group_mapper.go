package authroles

import (
	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

// GroupRoleMapper maps IdP directory groups to catalog roles via a static
// group → role table. When a user belongs to groups that map to several
// roles, the role earliest in catalog order wins (catalog order runs from
// most to least privileged). Users with no mapped group become guests,
// which grants nothing.
type GroupRoleMapper struct {
	// Groups maps a directory group name (e.g. an AD group DN) to a role.
	Groups map[string]domainauth.Role
}

// Map resolves the user's groups to a single application role.
func (m GroupRoleMapper) Map(groups []string) domainauth.Role {
	matched := make(map[domainauth.Role]bool, 2)
	for _, g := range groups {
		if role, ok := m.Groups[g]; ok && role.Valid() {
			matched[role] = true
		}
	}
	for _, role := range domainauth.AllRoles() {
		if matched[role] {
			return role
		}
	}
	return domainauth.RoleGuest
}

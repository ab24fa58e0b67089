// Package access holds the route-authorization policy: the role catalog
// (which application areas each role may enter and where it lands after
// login) and the per-request routing decision. It is pure decision logic
// with no HTTP or storage concerns.
package access

import (
	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

// Well-known application paths referenced by the policy.
const (
	RootPath      = "/"
	LoginPath     = "/login"
	SignupPath    = "/signup"
	ForbiddenPath = "/forbidden"
)

// Rule associates a role with the path prefixes it may enter and the home
// path it lands on after login or when visiting the application root.
type Rule struct {
	Prefixes []string
	Home     string
}

// Catalog is the immutable role → rule table. It is static configuration:
// adding a role or area is a data change here, not new conditionals in
// route handling.
type Catalog struct {
	rules map[domainauth.Role]Rule
}

// NewCatalog builds a catalog from the given rule table. The table is
// copied so later mutation of the argument cannot affect the catalog.
func NewCatalog(rules map[domainauth.Role]Rule) *Catalog {
	copied := make(map[domainauth.Role]Rule, len(rules))
	for role, rule := range rules {
		copied[role] = Rule{
			Prefixes: append([]string(nil), rule.Prefixes...),
			Home:     rule.Home,
		}
	}
	return &Catalog{rules: copied}
}

// PrefixesFor returns the path prefixes the role may enter. It never
// returns nil: unknown roles and roles with no granted areas get an empty
// slice, so they can reach only explicitly public routes.
func (c *Catalog) PrefixesFor(role domainauth.Role) []string {
	rule, ok := c.rules[role]
	if !ok || len(rule.Prefixes) == 0 {
		return []string{}
	}
	return append([]string(nil), rule.Prefixes...)
}

// HomePathFor returns the role's landing path. Roles with no granted areas
// (and unknown roles) fall back to the login path.
func (c *Catalog) HomePathFor(role domainauth.Role) string {
	rule, ok := c.rules[role]
	if !ok || rule.Home == "" {
		return LoginPath
	}
	return rule.Home
}

// DefaultCatalog returns the production role catalog.
//
// Guest, finance, it_admin, support and auditor exist in the closed role
// set but have no application areas wired yet; they carry empty prefix
// sets and land on the login page. That is deliberate fail-closed
// behavior, not an omission.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[domainauth.Role]Rule{
		domainauth.RoleAdmin: {
			Prefixes: []string{
				"/admin", "/employees", "/recruitment", "/leaves", "/expenses",
				"/onboarding", "/performance", "/feed", "/reports", "/settings",
			},
			Home: "/admin/dashboard",
		},
		domainauth.RoleSuperHR: {
			Prefixes: []string{
				"/super-hr", "/employees", "/recruitment", "/leaves", "/expenses",
				"/onboarding", "/performance", "/feed", "/reports",
			},
			Home: "/super-hr/dashboard",
		},
		domainauth.RoleHRManager: {
			Prefixes: []string{
				"/hr", "/employees", "/recruitment", "/leaves", "/expenses",
				"/onboarding", "/performance", "/feed",
			},
			Home: "/hr/dashboard",
		},
		domainauth.RoleRecruiter: {
			Prefixes: []string{"/recruiter", "/recruitment", "/feed"},
			Home:     "/recruiter/dashboard",
		},
		domainauth.RoleInterviewer: {
			Prefixes: []string{"/interviewer", "/recruitment/interviews", "/feed"},
			Home:     "/interviewer/dashboard",
		},
		domainauth.RoleManager: {
			Prefixes: []string{"/manager", "/employees", "/leaves", "/expenses", "/performance", "/feed"},
			Home:     "/manager/dashboard",
		},
		domainauth.RoleTeamLead: {
			Prefixes: []string{"/team-lead", "/leaves", "/performance", "/feed"},
			Home:     "/team-lead/dashboard",
		},
		domainauth.RoleEmployee: {
			Prefixes: []string{"/employee", "/leaves", "/expenses", "/feed"},
			Home:     "/employee/dashboard",
		},
		domainauth.RoleIntern: {
			Prefixes: []string{"/intern", "/leaves", "/feed"},
			Home:     "/intern/dashboard",
		},
		domainauth.RoleGuest:   {},
		domainauth.RoleFinance: {},
		domainauth.RoleITAdmin: {},
		domainauth.RoleSupport: {},
		domainauth.RoleAuditor: {},
	})
}

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

func sessionWithRole(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{ID: "sess-1", UserID: "u-1", Role: role}
}

func TestEvaluate_Scenarios(t *testing.T) {
	policy := NewPolicy(DefaultCatalog())

	tests := []struct {
		name       string
		path       string
		sess       *domainauth.Session
		wantKind   DecisionKind
		wantTarget string
	}{
		{
			name:       "no identity on protected path redirects to login",
			path:       "/leaves",
			sess:       nil,
			wantKind:   RedirectLogin,
			wantTarget: LoginPath,
		},
		{
			name:       "employee at root lands on employee dashboard",
			path:       "/",
			sess:       sessionWithRole(domainauth.RoleEmployee),
			wantKind:   RedirectHome,
			wantTarget: "/employee/dashboard",
		},
		{
			name:       "employee cannot enter admin area",
			path:       "/admin/roles",
			sess:       sessionWithRole(domainauth.RoleEmployee),
			wantKind:   RedirectForbidden,
			wantTarget: ForbiddenPath,
		},
		{
			name:     "admin may enter admin area",
			path:     "/admin/roles",
			sess:     sessionWithRole(domainauth.RoleAdmin),
			wantKind: Allow,
		},
		{
			name:       "authenticated intern on login page goes home",
			path:       "/login",
			sess:       sessionWithRole(domainauth.RoleIntern),
			wantKind:   RedirectHome,
			wantTarget: "/intern/dashboard",
		},
		{
			name:     "registration is public for anonymous visitors",
			path:     "/register",
			sess:     nil,
			wantKind: Allow,
		},
		{
			name:       "anonymous root goes to login like any protected path",
			path:       "/",
			sess:       nil,
			wantKind:   RedirectLogin,
			wantTarget: LoginPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.Evaluate(tt.path, tt.sess)
			assert.Equal(t, tt.wantKind, d.Kind)
			if tt.wantTarget != "" {
				assert.Equal(t, tt.wantTarget, d.Target)
			}
		})
	}
}

func TestEvaluate_PublicPathsAllowEveryone(t *testing.T) {
	policy := NewPolicy(DefaultCatalog())
	publicPaths := []string{"/register", "/careers/openings", "/healthz", "/forgot-password", "/assessments/take/42"}

	for _, path := range publicPaths {
		assert.Equal(t, Allow, policy.Evaluate(path, nil).Kind, "anonymous on %s", path)
		// Public routes stay reachable even for roles with no granted prefixes.
		for _, role := range domainauth.AllRoles() {
			d := policy.Evaluate(path, sessionWithRole(role))
			assert.Equal(t, Allow, d.Kind, "role %s on %s", role, path)
		}
	}
}

func TestEvaluate_GrantedPrefixesAllow(t *testing.T) {
	catalog := DefaultCatalog()
	policy := NewPolicy(catalog)

	for _, role := range domainauth.AllRoles() {
		for _, prefix := range catalog.PrefixesFor(role) {
			d := policy.Evaluate(prefix+"/anything", sessionWithRole(role))
			assert.Equal(t, Allow, d.Kind, "role %s under own prefix %s", role, prefix)
		}
	}
}

func TestEvaluate_ZeroPrefixRolesAreForbiddenEverywhereProtected(t *testing.T) {
	policy := NewPolicy(DefaultCatalog())
	noAccess := []domainauth.Role{
		domainauth.RoleGuest, domainauth.RoleFinance, domainauth.RoleITAdmin,
		domainauth.RoleSupport, domainauth.RoleAuditor,
	}

	for _, role := range noAccess {
		for _, path := range []string{"/leaves", "/employees/42", "/admin"} {
			d := policy.Evaluate(path, sessionWithRole(role))
			assert.Equal(t, RedirectForbidden, d.Kind, "role %s on %s", role, path)
		}
	}
}

func TestEvaluate_UnauthenticatedProtectedAlwaysLogin(t *testing.T) {
	policy := NewPolicy(DefaultCatalog())

	for _, path := range []string{"/", "/admin", "/employee/dashboard", "/leaves/new", "/feed"} {
		d := policy.Evaluate(path, nil)
		assert.Equal(t, RedirectLogin, d.Kind, "path %s", path)
	}
}

func TestEvaluate_RootRedirectsToRoleHome(t *testing.T) {
	catalog := DefaultCatalog()
	policy := NewPolicy(catalog)

	for _, role := range domainauth.AllRoles() {
		d := policy.Evaluate("/", sessionWithRole(role))
		assert.Equal(t, RedirectHome, d.Kind, "role %s", role)
		assert.Equal(t, catalog.HomePathFor(role), d.Target, "role %s", role)
	}
}

func TestEvaluate_NoLoginRedirectLoopForGuestRoles(t *testing.T) {
	policy := NewPolicy(DefaultCatalog())

	// A guest's home is the login path; sending them "home" from the login
	// page would bounce forever, so the login page stays reachable.
	d := policy.Evaluate(LoginPath, sessionWithRole(domainauth.RoleGuest))
	assert.Equal(t, Allow, d.Kind)
}

func TestEvaluate_PrefixMatchingIsSegmentBounded(t *testing.T) {
	policy := NewPolicy(DefaultCatalog())
	admin := sessionWithRole(domainauth.RoleAdmin)

	assert.Equal(t, Allow, policy.Evaluate("/admin", admin).Kind)
	assert.Equal(t, Allow, policy.Evaluate("/admin/roles", admin).Kind)
	assert.Equal(t, RedirectForbidden, policy.Evaluate("/administration", admin).Kind)
	assert.Equal(t, RedirectForbidden, policy.Evaluate("/administration-portal", admin).Kind)
}

func TestEvaluate_Idempotent(t *testing.T) {
	policy := NewPolicy(DefaultCatalog())
	sess := sessionWithRole(domainauth.RoleManager)

	first := policy.Evaluate("/performance/reviews", sess)
	second := policy.Evaluate("/performance/reviews", sess)
	assert.Equal(t, first, second)
}

func TestEvaluate_PanicFailsClosed(t *testing.T) {
	// A nil catalog makes every lookup panic; evaluation must still resolve
	// to a login redirect rather than crash request handling.
	policy := &Policy{catalog: nil, public: defaultPublicPrefixes(), authOnly: []string{LoginPath}}

	d := policy.Evaluate("/leaves", sessionWithRole(domainauth.RoleEmployee))
	assert.Equal(t, RedirectLogin, d.Kind)
}

func TestHasPathPrefix(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		want   bool
	}{
		{"/admin", "/admin", true},
		{"/admin/", "/admin", true},
		{"/admin/roles", "/admin", true},
		{"/administration", "/admin", false},
		{"/admin-portal", "/admin", false},
		{"/leaves", "/leave", false},
		{"/anything", "/", true},
		{"/x", "", false},
		{"/recruitment/interviews/7", "/recruitment/interviews", true},
		{"/recruitment/interviewers", "/recruitment/interviews", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPathPrefix(tt.path, tt.prefix), "HasPathPrefix(%q, %q)", tt.path, tt.prefix)
	}
}

func TestDecisionKind_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "redirect_login", RedirectLogin.String())
	assert.Equal(t, "redirect_home", RedirectHome.String())
	assert.Equal(t, "redirect_forbidden", RedirectForbidden.String())
	assert.Equal(t, "unknown", DecisionKind(99).String())
}

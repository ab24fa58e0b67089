package access

import (
	"strings"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

// DecisionKind enumerates the terminal outcomes of evaluating a request
// against the access policy. Exactly one is produced per request.
type DecisionKind int

const (
	// Allow passes the request through unchanged.
	Allow DecisionKind = iota
	// RedirectLogin sends an unauthenticated visitor to the login page.
	RedirectLogin
	// RedirectHome sends an authenticated visitor to their role's home path.
	RedirectHome
	// RedirectForbidden sends an authenticated but unauthorized visitor to
	// the forbidden page. Distinct from RedirectLogin so users can tell
	// "you're signed in but can't see this" from "please sign in".
	RedirectForbidden
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case RedirectForbidden:
		return "redirect_forbidden"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one policy evaluation. Target is set for the
// redirect kinds and names the destination path.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// Policy evaluates request paths against the role catalog and the public
// route list. It is read-only after construction and safe for concurrent
// use; decisions are computed fresh per request and never cached, since
// authentication state can change between requests.
type Policy struct {
	catalog  *Catalog
	public   []string
	authOnly []string
}

// defaultPublicPrefixes lists routes reachable without authentication:
// the auth pages themselves, self-service registration, the public careers
// and candidate test-taking flows, health checks, and static assets.
func defaultPublicPrefixes() []string {
	return []string{
		LoginPath, SignupPath, "/register", "/forgot-password",
		"/careers", "/assessments/take",
		"/auth", "/healthz", "/static", ForbiddenPath,
	}
}

// NewPolicy creates a policy over the given catalog with the default
// public route list.
func NewPolicy(catalog *Catalog) *Policy {
	return &Policy{
		catalog:  catalog,
		public:   defaultPublicPrefixes(),
		authOnly: []string{LoginPath, SignupPath},
	}
}

// Evaluate decides how to route a request for path on behalf of sess
// (nil means no authenticated identity). Public classification happens
// first, so public routes stay reachable even for roles with no granted
// prefixes. A panic during evaluation resolves to RedirectLogin rather
// than propagating; worst case is an overly restrictive redirect.
func (p *Policy) Evaluate(path string, sess *domainauth.Session) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = Decision{Kind: RedirectLogin, Target: LoginPath}
		}
	}()

	if sess == nil {
		// The root is not public: an anonymous visit anywhere outside the
		// public set, the landing page included, goes to login.
		if p.isPublic(path) {
			return Decision{Kind: Allow}
		}
		return Decision{Kind: RedirectLogin, Target: LoginPath}
	}

	home := p.catalog.HomePathFor(sess.Role)

	// Every authenticated visit to the application root lands on the
	// role's own dashboard rather than a generic page.
	if path == RootPath {
		return Decision{Kind: RedirectHome, Target: home}
	}

	// An authenticated user should never see the login form again. Roles
	// whose home is the login path (no granted areas) are exempt, or the
	// two redirects would chase each other.
	if p.isAuthOnly(path) && home != LoginPath {
		return Decision{Kind: RedirectHome, Target: home}
	}

	if p.isPublic(path) {
		return Decision{Kind: Allow}
	}

	for _, prefix := range p.catalog.PrefixesFor(sess.Role) {
		if HasPathPrefix(path, prefix) {
			return Decision{Kind: Allow}
		}
	}
	return Decision{Kind: RedirectForbidden, Target: ForbiddenPath}
}

func (p *Policy) isPublic(path string) bool {
	for _, prefix := range p.public {
		if HasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (p *Policy) isAuthOnly(path string) bool {
	for _, prefix := range p.authOnly {
		if HasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// HasPathPrefix reports whether path falls under prefix at a path-segment
// boundary: "/admin" matches "/admin" and "/admin/roles" but not
// "/administration". A bare "/" prefix matches everything.
func HasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if prefix == RootPath {
		return strings.HasPrefix(path, RootPath)
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/' || rest[0] == '?'
}

package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peopledesk/peopledesk/internal/domain/access"
	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

const defaultResolveTimeout = 2 * time.Second

// AccessControlOptions groups dependencies for the AccessControl middleware.
type AccessControlOptions struct {
	Auth         AuthServiceInterface
	Policy       *access.Policy
	CookieDomain string
	Logger       *slog.Logger

	// ResolveTimeout bounds session resolution per request (default 2s).
	ResolveTimeout time.Duration
}

// AccessControl returns the middleware that guards every route: it resolves
// the session from the session_id cookie, evaluates the access policy for
// the request path, and acts on the decision. Browser requests are
// redirected; API requests get JSON errors. Allowed requests continue with
// the session in context.
func AccessControl(opts AccessControlOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.ResolveTimeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := resolveSession(w, r, opts, timeout)

			decision := opts.Policy.Evaluate(policyPath(r.URL.Path), session)
			switch decision.Kind {
			case access.Allow:
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
			case access.RedirectLogin:
				respondLogin(w, r)
			case access.RedirectHome:
				respondHome(w, r, decision.Target)
			case access.RedirectForbidden:
				respondForbidden(w, r, decision.Target)
			default:
				logger.Error("unknown access decision", slog.String("kind", decision.Kind.String()))
				respondLogin(w, r)
			}
		})
	}
}

// resolveSession loads and validates the session from the request cookie.
// Every failure mode resolves to nil: a request that cannot prove a session
// carries none. When the auth service renews the session, the refreshed
// cookie is re-attached so the browser's copy keeps pace.
func resolveSession(
	w http.ResponseWriter,
	r *http.Request,
	opts AccessControlOptions,
	timeout time.Duration,
) *domainauth.Session {
	// Auth may be absent entirely (disabled in config); a cookie presented
	// to an authless deployment proves nothing.
	if opts.Auth == nil {
		return nil
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	session, renewed, err := opts.Auth.ResolveSession(ctx, cookie.Value)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			clearSessionCookie(w, r, opts.CookieDomain)
		}
		return nil
	}
	if renewed {
		writeSessionCookie(w, r, opts.CookieDomain, *session)
	}
	return session
}

// policyPath maps the request path to the policy's area space. The JSON API
// mirrors the page areas under /api, so the prefix is stripped before
// evaluation (/api/employees is guarded like /employees).
func policyPath(path string) string {
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		trimmed := strings.TrimPrefix(path, "/api")
		if trimmed == "" {
			return access.RootPath
		}
		return trimmed
	}
	return path
}

func respondLogin(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		redirectToLogin(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

// respondHome handles the go-to-your-dashboard decision. It fires on the
// root and the auth-only pages; those are browser navigations, so an
// API-shaped request asking for one gets a JSON error rather than a 303.
func respondHome(w http.ResponseWriter, r *http.Request, target string) {
	if IsBrowserRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "browser_navigation_only",
		Err:     errors.New("path is only served to browser navigations"),
	})
}

func respondForbidden(w http.ResponseWriter, r *http.Request, target string) {
	if IsBrowserRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "insufficient_permissions",
		Err:     errors.New("insufficient permissions"),
	})
}

// redirectToLogin redirects browser requests to the login page with the
// current URL as redirect_uri so the flow can resume where it started.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectPath := r.URL.Path
	if r.URL.RawQuery != "" {
		redirectPath += "?" + r.URL.RawQuery
	}
	if redirectPath == "" {
		redirectPath = access.RootPath
	}

	u := url.URL{Path: access.LoginPath}
	q := url.Values{}
	q.Set("redirect_uri", redirectPath)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

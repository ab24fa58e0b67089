package httpx

import (
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/peopledesk/peopledesk/internal/domain/access"
	"github.com/peopledesk/peopledesk/internal/service"
	"github.com/peopledesk/peopledesk/internal/util"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Employees *service.EmployeeService
	Leaves    *service.LeaveService
	Auth      AuthServiceInterface
	Policy    *access.Policy

	// Renderer and StaticFS back the server-rendered page surface. Both are
	// optional; without them page routes fall back to bare placeholders.
	Renderer *TemplateRenderer
	StaticFS fs.FS

	CookieDomain string
	Logger       *slog.Logger

	// ResolveTimeout bounds per-request session resolution (optional).
	ResolveTimeout time.Duration
}

// NewRouter creates and configures the HTTP router. Every route, including
// the public ones, passes through the access-control middleware; the policy
// itself decides what is public.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.Auth != nil {
		authHandlers := &AuthHandlers{
			Svc:          services.Auth,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}
		registerAuthRoutes(mux, authHandlers)
	}

	if services.Employees != nil {
		registerEmployeeRoutes(mux, &EmployeeHandlers{Svc: services.Employees})
	}
	if services.Leaves != nil {
		registerLeaveRoutes(mux, &LeaveHandlers{Svc: services.Leaves})
	}

	if services.StaticFS != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(services.StaticFS)))
	}

	// Page areas are pure policy surface: the middleware decides access and
	// the page layer responds for whatever it lets through.
	pages := &pageHandlers{renderer: services.Renderer}
	mux.Handle("GET /forbidden", http.HandlerFunc(pages.forbidden))
	mux.Handle("GET /login", http.HandlerFunc(pages.login))
	mux.Handle("/", http.HandlerFunc(pages.page))

	handler := AccessControl(AccessControlOptions{
		Auth:           services.Auth,
		Policy:         services.Policy,
		CookieDomain:   services.CookieDomain,
		Logger:         services.Logger,
		ResolveTimeout: services.ResolveTimeout,
	})(mux)

	return BrowserDetection()(handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("GET /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("GET /auth/callback", http.HandlerFunc(h.Callback))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
}

func registerEmployeeRoutes(mux *http.ServeMux, h *EmployeeHandlers) {
	mux.Handle("POST /api/employees", http.HandlerFunc(h.Create))
	mux.Handle("GET /api/employees", http.HandlerFunc(h.List))
	mux.Handle("GET /api/employees/{id}", http.HandlerFunc(h.GetByID))
	mux.Handle("PATCH /api/employees/{id}", http.HandlerFunc(h.Update))
	mux.Handle("DELETE /api/employees/{id}", http.HandlerFunc(h.Delete))
}

func registerLeaveRoutes(mux *http.ServeMux, h *LeaveHandlers) {
	mux.Handle("POST /api/leaves", http.HandlerFunc(h.Create))
	mux.Handle("GET /api/leaves", http.HandlerFunc(h.List))
	mux.Handle("GET /api/leaves/{id}", http.HandlerFunc(h.GetByID))
	mux.Handle("POST /api/leaves/{id}/approve", http.HandlerFunc(h.Approve))
	mux.Handle("POST /api/leaves/{id}/reject", http.HandlerFunc(h.Reject))
	mux.Handle("POST /api/leaves/{id}/cancel", http.HandlerFunc(h.Cancel))
}

// pageHandlers serves the server-rendered page surface for routes the access
// policy allowed through. Without a renderer it degrades to bare placeholders
// so the policy surface stays testable on its own.
type pageHandlers struct {
	renderer *TemplateRenderer
}

func (p *pageHandlers) page(w http.ResponseWriter, r *http.Request) {
	if p.renderer == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!doctype html><title>PeopleDesk</title><h1>%s</h1>", html.EscapeString(r.URL.Path))
		return
	}
	p.renderer.Render(w, http.StatusOK, "page", PageData{
		Title: util.TitleFromPath(r.URL.Path),
		Path:  r.URL.Path,
		User:  GetSessionFromContext(r.Context()),
	})
}

func (p *pageHandlers) login(w http.ResponseWriter, r *http.Request) {
	if p.renderer == nil {
		p.page(w, r)
		return
	}
	loginURL := "/auth/login"
	if redirect := r.URL.Query().Get("redirect_uri"); redirect != "" {
		loginURL += "?redirect_uri=" + url.QueryEscape(redirect)
	}
	p.renderer.Render(w, http.StatusOK, "login", PageData{
		Title:    "Sign in",
		Path:     r.URL.Path,
		LoginURL: loginURL,
	})
}

func (p *pageHandlers) forbidden(w http.ResponseWriter, r *http.Request) {
	if p.renderer == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "<!doctype html><title>Access denied</title><h1>Access denied</h1>")
		return
	}
	p.renderer.Render(w, http.StatusForbidden, "forbidden", PageData{
		Title: "Access denied",
		Path:  r.URL.Path,
		User:  GetSessionFromContext(r.Context()),
	})
}

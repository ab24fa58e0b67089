package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/util"
)

// TemplateRenderer renders HTML templates for page responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// PageData carries the fields the page templates consume.
type PageData struct {
	Title    string
	Path     string
	User     *auth.Session
	LoginURL string
}

// NewTemplateRenderer parses the page templates from the provided filesystem.
func NewTemplateRenderer(templateFS fs.FS, logger *slog.Logger) (*TemplateRenderer, error) {
	if templateFS == nil {
		return nil, errors.New("templateFS is required")
	}

	t, err := template.New("root").Funcs(template.FuncMap{
		"formatDate": util.FormatDate,
	}).ParseFS(templateFS, "*.tmpl", "pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &TemplateRenderer{t: t, logger: logger}, nil
}

// Render executes the named template into a buffer first so a template error
// never leaves a half-written response body.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data PageData) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		if r.logger != nil {
			r.logger.Error("template render failed",
				slog.String("template", name),
				slog.Any("error", err),
			)
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

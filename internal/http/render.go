package httpx

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/splax/hostrix/internal/forms"
	"github.com/splax/hostrix/internal/pages"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("base").Funcs(template.FuncMap{
		"actionRoute": pages.ActionRoute,
		"actionLabel": pages.ActionLabel,
		"slotField":   forms.SlotField,
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// render executes a page into a buffer first so a template failure never
// leaves a half-written page behind.
func (r *Router) render(w http.ResponseWriter, req *http.Request, status int, tpl string, data map[string]any) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tpl, data); err != nil {
		r.logger.Error("template render failed", "template", tpl, "path", req.URL.Path, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (r *Router) renderError(w http.ResponseWriter, req *http.Request, status int, message string) {
	r.logger.Warn("dashboard error", "status", status, "message", message, "path", req.URL.Path)
	r.render(w, req, status, "error", map[string]any{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

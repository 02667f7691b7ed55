package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/pkg/pagination"
	"go-hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile = "templates/layout.html"
	ErrorPage  = "error"
)

// Page is what every template receives. Handler data lives under .Data.
type Page struct {
	Identity entity.Identity
	Flashes  []session.Flash
	Path     string
	Search   string
	Data     any
}

type Renderer struct {
	pages    map[string]*template.Template
	sessions *session.Manager
	log      *logrus.Logger
}

// NewRenderer parses every page template together with the shared layout.
func NewRenderer(sessions *session.Manager, log *logrus.Logger) (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages:    pages,
		sessions: sessions,
		log:      log,
	}, nil
}

// Render pops the session flashes into the page, persists the session and writes
// the page with status.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := v.pages[name]
	if !ok {
		v.log.Errorf("Unknown template %q", name)
		response.Plain(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	page := Page{
		Path:   r.URL.Path,
		Search: r.FormValue("search"),
		Data:   data,
	}
	s := session.FromContext(r.Context())
	if s != nil {
		page.Identity = s.Identity
		page.Flashes = s.PopFlashes()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		v.log.Errorf("Failed to render %s: %+v", name, err)
		response.Plain(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !v.saveSession(w, r, s) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		v.log.Debugf("Failed to write response: %v", err)
	}
}

// Error renders the shared error page.
func (v *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	v.Render(w, r, status, ErrorPage, map[string]any{
		"Status":  status,
		"Message": message,
	})
}

// Redirect persists the session, so pending flashes survive, and sends a 303.
func (v *Renderer) Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if !v.saveSession(w, r, session.FromContext(r.Context())) {
		return
	}
	response.Redirect(w, r, target)
}

func (v *Renderer) saveSession(w http.ResponseWriter, r *http.Request, s *session.Session) bool {
	if s == nil {
		return true
	}
	if err := v.sessions.Save(r.Context(), w, s); err != nil {
		v.log.Errorf("Failed to save session: %+v", err)
		response.Plain(w, http.StatusInternalServerError, "Internal server error")
		return false
	}
	return true
}

// pager carries a page window plus the list URL so links keep the search term.
type pager struct {
	pagination.Nav
	path   string
	search string
}

func (p pager) URL(page int) string {
	q := url.Values{}
	if p.search != "" {
		q.Set("search", p.search)
	}
	q.Set("page", strconv.Itoa(page))
	return p.path + "?" + q.Encode()
}

var funcs = template.FuncMap{
	"pager": func(path, search string, nav pagination.Nav) pager {
		return pager{Nav: nav, path: path, search: search}
	},
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
}

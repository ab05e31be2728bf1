package httpx

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splax/hostrix/internal/catalog"
	"github.com/splax/hostrix/internal/domain"
	"github.com/splax/hostrix/internal/forms"
	"github.com/splax/hostrix/internal/pages"
)

// ProjectCatalog supplies the projects listed on the dashboard.
type ProjectCatalog interface {
	List() []domain.Project
	Get(id string) (domain.Project, error)
}

// Options tunes the router.
type Options struct {
	FormRateLimit  int
	FormRateWindow time.Duration
}

// Router maps dashboard paths to page handlers.
type Router struct {
	mux       *mux.Router
	logger    *slog.Logger
	projects  ProjectCatalog
	templates *template.Template
	limiter   RateLimiter
	opts      Options

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
	formSubmissions    *prometheus.CounterVec
}

const (
	rateWindowDefault = time.Minute
	rateLimitForms    = 30
)

// Route is one entry of the route table.
type Route struct {
	Name    string
	Path    string
	Methods []string
}

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, projects ProjectCatalog, limiter RateLimiter, opts Options) (*Router, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if opts.FormRateLimit == 0 {
		opts.FormRateLimit = rateLimitForms
	}
	if opts.FormRateWindow <= 0 {
		opts.FormRateWindow = rateWindowDefault
	}
	r := &Router{
		mux:       mux.NewRouter(),
		logger:    logger,
		projects:  projects,
		templates: templates,
		limiter:   limiter,
		opts:      opts,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r, nil
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	r.mux.Use(r.audit, r.instrument)

	r.mux.HandleFunc("/", r.handleLanding).Methods(http.MethodGet).Name("landing")
	r.mux.HandleFunc("/signin", r.handleSignin).Methods(http.MethodGet, http.MethodPost).Name("signin")
	r.mux.HandleFunc("/signup", r.handleSignup).Methods(http.MethodGet, http.MethodPost).Name("signup")
	r.mux.HandleFunc("/verify", r.handleVerify).Methods(http.MethodGet, http.MethodPost).Name("verify")
	r.mux.HandleFunc("/dashboard", r.handleDashboard).Methods(http.MethodGet).Name("dashboard")
	r.mux.HandleFunc("/project/new", r.handleProjectNew).Methods(http.MethodGet, http.MethodPost).Name("project_new")
	r.mux.HandleFunc("/project/{id}", r.handleProjectDetail).Methods(http.MethodGet).Name("project")
	r.mux.HandleFunc("/deploy/{projectName}", r.handleDeploy).Methods(http.MethodGet, http.MethodPost).Name("deploy")
	r.mux.HandleFunc("/healthz", r.handleHealthz).Methods(http.MethodGet).Name("healthz")
	r.mux.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")

	r.mux.NotFoundHandler = r.audit(r.instrument(http.HandlerFunc(r.handleNotFound)))
	r.mux.MethodNotAllowedHandler = r.audit(r.instrument(http.HandlerFunc(r.handleMethodNotAllowed)))
}

// Routes lists the registered paths in match order.
func (r *Router) Routes() []Route {
	var routes []Route
	_ = r.mux.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := route.GetMethods()
		routes = append(routes, Route{Name: route.GetName(), Path: path, Methods: methods})
		return nil
	})
	return routes
}

func (r *Router) handleLanding(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, http.StatusOK, "landing", map[string]any{
		"Title":      "Deploy with confidence",
		"HideChrome": true,
	})
}

func (r *Router) handleSignin(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodGet {
		r.render(w, req, http.StatusOK, "signin", map[string]any{
			"Title":      "Sign in",
			"HideChrome": true,
			"Form":       forms.LoginForm{},
		})
		return
	}
	r.withRateLimit("signin", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			r.renderError(w, req, http.StatusBadRequest, "invalid form payload")
			return
		}
		form := forms.LoginFromValues(req.PostForm)
		r.recordFormSubmission("signin")
		http.Redirect(w, req, form.Submit(), http.StatusSeeOther)
	})(w, req)
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodGet {
		r.render(w, req, http.StatusOK, "signup", map[string]any{
			"Title":      "Create account",
			"HideChrome": true,
			"Form":       forms.SignupForm{},
		})
		return
	}
	r.withRateLimit("signup", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			r.renderError(w, req, http.StatusBadRequest, "invalid form payload")
			return
		}
		form := forms.SignupFromValues(req.PostForm)
		r.recordFormSubmission("signup")
		http.Redirect(w, req, form.Submit(), http.StatusSeeOther)
	})(w, req)
}

func (r *Router) handleVerify(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodGet {
		r.renderVerify(w, req, forms.NewOTP())
		return
	}
	r.withRateLimit("verify", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			r.renderError(w, req, http.StatusBadRequest, "invalid form payload")
			return
		}
		otp := forms.OTPFromValues(req.PostForm)
		event := strings.TrimSpace(req.PostFormValue("event"))
		if event == "" || event == "submit" {
			r.recordFormSubmission("verify")
			http.Redirect(w, req, otp.Submit(), http.StatusSeeOther)
			return
		}
		slot, err := strconv.Atoi(strings.TrimSpace(req.PostFormValue("slot")))
		if err != nil {
			r.renderError(w, req, http.StatusBadRequest, "slot must be a number")
			return
		}
		switch event {
		case "input":
			err = otp.Input(slot, req.PostFormValue("value"))
		case "backspace":
			err = otp.Backspace(slot)
		default:
			r.renderError(w, req, http.StatusBadRequest, "unknown verification event")
			return
		}
		if err != nil {
			r.renderError(w, req, http.StatusBadRequest, err.Error())
			return
		}
		r.renderVerify(w, req, otp)
	})(w, req)
}

func (r *Router) renderVerify(w http.ResponseWriter, req *http.Request, otp *forms.OTP) {
	r.render(w, req, http.StatusOK, "verify", map[string]any{
		"Title":      "Verify account",
		"HideChrome": true,
		"IsVerify":   true,
		"OTP":        otp,
	})
}

func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) {
	dashboard, err := pages.DashboardFromQuery(r.projects.List(), req.URL.Query())
	if err != nil {
		r.renderError(w, req, http.StatusBadRequest, err.Error())
		return
	}
	r.render(w, req, http.StatusOK, "dashboard", map[string]any{
		"Title":     "Projects",
		"Dashboard": dashboard,
		"Filters":   domain.TypeFilters(),
	})
}

func (r *Router) handleProjectNew(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodGet {
		r.render(w, req, http.StatusOK, "project_new", map[string]any{
			"Title": "New project",
			"Form":  pages.NewProject{Type: domain.TypeStatic},
			"Types": domain.ProjectTypes(),
		})
		return
	}
	r.withRateLimit("project_new", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			r.renderError(w, req, http.StatusBadRequest, "invalid form payload")
			return
		}
		project, err := pages.NewProjectFromValues(req.PostForm)
		if err != nil {
			r.renderError(w, req, http.StatusBadRequest, err.Error())
			return
		}
		r.recordFormSubmission("project_new")
		http.Redirect(w, req, project.Submit(), http.StatusSeeOther)
	})(w, req)
}

func (r *Router) handleProjectDetail(w http.ResponseWriter, req *http.Request) {
	project, err := r.projects.Get(mux.Vars(req)["id"])
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			r.handleNotFound(w, req)
			return
		}
		r.logger.Error("project lookup failed", "error", err)
		r.renderError(w, req, http.StatusInternalServerError, "failed to load project")
		return
	}
	r.render(w, req, http.StatusOK, "project", map[string]any{
		"Title":  project.Name,
		"Detail": pages.ProjectDetail{Project: project},
	})
}

func (r *Router) handleDeploy(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["projectName"]
	if req.Method == http.MethodGet {
		r.renderDeploy(w, req, pages.NewDeployConfig(name))
		return
	}
	r.withRateLimit("deploy", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			r.renderError(w, req, http.StatusBadRequest, "invalid form payload")
			return
		}
		cfg := pages.DeployConfigFromValues(name, req.PostForm)
		action := strings.TrimSpace(req.URL.Query().Get("action"))
		if action == "" {
			action = strings.TrimSpace(req.PostFormValue("action"))
		}
		switch action {
		case "", "deploy":
			target := cfg.Submit()
			r.recordFormSubmission("deploy")
			r.logger.Info("deployment requested", "project", cfg.ProjectName, "env_vars", len(cfg.EnvVars))
			http.Redirect(w, req, target, http.StatusSeeOther)
			return
		case "cancel":
			http.Redirect(w, req, cfg.Cancel(), http.StatusSeeOther)
			return
		case "add_env":
			cfg.AddEnvVar()
		case "remove_env":
			id := req.URL.Query().Get("env")
			if id == "" {
				id = req.PostFormValue("env")
			}
			if err := cfg.RemoveEnvVar(id); err != nil {
				r.renderError(w, req, http.StatusBadRequest, err.Error())
				return
			}
		case "update":
		default:
			r.renderError(w, req, http.StatusBadRequest, "unknown deploy action")
			return
		}
		r.renderDeploy(w, req, cfg)
	})(w, req)
}

func (r *Router) renderDeploy(w http.ResponseWriter, req *http.Request, cfg *pages.DeployConfig) {
	r.render(w, req, http.StatusOK, "deploy", map[string]any{
		"Title":   "Deploy " + cfg.ProjectName,
		"Deploy":  cfg,
		"Summary": cfg.Summary(),
		"Action":  "/deploy/" + url.PathEscape(cfg.ProjectName),
	})
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"components": map[string]any{
			"catalog": map[string]any{
				"status":   "up",
				"projects": len(r.projects.List()),
			},
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (r *Router) handleNotFound(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, http.StatusNotFound, "not_found", map[string]any{
		"Title": "Not found",
		"Path":  req.URL.Path,
	})
}

func (r *Router) handleMethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	r.renderError(w, req, http.StatusMethodNotAllowed, "method not allowed")
}

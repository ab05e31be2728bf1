package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splax/hostrix/internal/catalog"
)

func newTestRouter(t *testing.T, opts Options) *Router {
	t.Helper()
	projects, err := catalog.Default(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.FormRateLimit == 0 {
		opts.FormRateLimit = -1
	}
	router, err := NewRouter(log, projects, nil, opts)
	require.NoError(t, err)
	t.Cleanup(router.Close)
	return router
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func post(t *testing.T, router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestStaticPagesRender(t *testing.T) {
	router := newTestRouter(t, Options{})
	cases := map[string]string{
		"/":            "Ship your projects with Hostrix",
		"/signin":      "Welcome Back",
		"/signup":      "Create Account",
		"/verify":      "Verify Your Account",
		"/dashboard":   "Project Overview",
		"/project/new": "New Project",
	}
	for path, want := range cases {
		rr := get(t, router, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Body.String(), want, path)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"), path)
	}
}

func TestAuthFormsRedirect(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := post(t, router, "/signin", url.Values{"username": {"johndoe"}, "password": {"x"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))

	rr = post(t, router, "/signin", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code, "submission succeeds without input")

	rr = post(t, router, "/signup", url.Values{"email": {"a@example.com"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/verify", rr.Header().Get("Location"))
}

func TestDashboardSearch(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := get(t, router, "/dashboard?type=all&q=blog")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Blog CMS")
	assert.NotContains(t, body, "Portfolio Website")
	assert.NotContains(t, body, "E-commerce API")
	assert.Contains(t, body, "1 active deployments")
	assert.Contains(t, body, `href="/deploy/3"`)
}

func TestDashboardActionLinks(t *testing.T) {
	router := newTestRouter(t, Options{})
	body := get(t, router, "/dashboard").Body.String()
	assert.Contains(t, body, "3 active deployments")
	assert.Contains(t, body, `href="/project/1"`)
	assert.Contains(t, body, `href="/deploy/2"`)
	assert.Contains(t, body, "Manage")
}

func TestDashboardRejectsUnknownType(t *testing.T) {
	router := newTestRouter(t, Options{})
	rr := get(t, router, "/dashboard?type=edge")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeployPage(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := get(t, router, "/deploy/my-app")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Deploy my-app")
	assert.Contains(t, rr.Body.String(), "Deployment Summary")
	assert.Contains(t, rr.Body.String(), "npm run build")

	for _, form := range []url.Values{
		{},
		{"env_id": {"a"}, "env_key": {"K"}, "env_value": {"v"}, "build_command": {"make"}},
	} {
		rr = post(t, router, "/deploy/my-app?action=deploy", form)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	}

	rr = post(t, router, "/deploy/my-app", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))

	rr = post(t, router, "/deploy/my-app?action=cancel", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestDeployKeepsRawProjectSegment(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := get(t, router, "/deploy/%20x")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<h1>Deploy  x</h1>")
	assert.Contains(t, rr.Body.String(), `action="/deploy/%20x"`)
}

func TestDeployEnvVarActions(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := post(t, router, "/deploy/my-app?action=add_env", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="env_id"`)

	form := url.Values{
		"env_id":    {"first", "second"},
		"env_key":   {"API_KEY", "DB_URL"},
		"env_value": {"abcd", "xy"},
	}
	rr = post(t, router, "/deploy/my-app?action=update", form)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "API_KEY: ****")
	assert.Contains(t, rr.Body.String(), "DB_URL: **")

	rr = post(t, router, "/deploy/my-app?action=remove_env&env=first", form)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "API_KEY")
	assert.Contains(t, rr.Body.String(), "DB_URL: **")

	rr = post(t, router, "/deploy/my-app?action=remove_env&env=missing", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, router, "/deploy/my-app?action=explode", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeployNotificationEmail(t *testing.T) {
	router := newTestRouter(t, Options{})
	form := url.Values{"notification_email": {"ops@example.com"}}

	rr := post(t, router, "/deploy/my-app?action=update", form)
	assert.NotContains(t, rr.Body.String(), "Notify Email:")

	form.Set("notify", "on")
	rr = post(t, router, "/deploy/my-app?action=update", form)
	assert.Contains(t, rr.Body.String(), "Notify Email:")
	assert.Contains(t, rr.Body.String(), "ops@example.com")
}

func TestVerifyEvents(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := post(t, router, "/verify", url.Values{"event": {"input"}, "slot": {"0"}, "value": {"5"}})
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `name="focus" value="1"`)
	assert.Contains(t, body, `name="otp0" data-slot="0" type="text" inputmode="numeric" pattern="[0-9]*" maxlength="1" value="5"`)

	rr = post(t, router, "/verify", url.Values{"event": {"input"}, "slot": {"2"}, "value": {"x"}, "focus": {"2"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="focus" value="2"`)

	rr = post(t, router, "/verify", url.Values{"event": {"backspace"}, "slot": {"3"}, "focus": {"3"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="focus" value="2"`)

	rr = post(t, router, "/verify", url.Values{"event": {"input"}, "slot": {"6"}, "value": {"1"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, router, "/verify", url.Values{"event": {"input"}, "slot": {"first"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, router, "/verify", url.Values{"event": {"submit"}, "otp0": {"1"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestProjectRoutes(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := get(t, router, "/project/1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Portfolio Website")
	assert.Contains(t, rr.Body.String(), `href="/deploy/1"`)

	rr = get(t, router, "/project/99")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found")

	rr = post(t, router, "/project/new", url.Values{"name": {"my-app"}, "type": {"hybrid"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/deploy/my-app", rr.Header().Get("Location"))

	rr = post(t, router, "/project/new", url.Values{"name": {"my-app"}, "type": {"edge"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnmatchedRouteRendersNotFound(t *testing.T) {
	router := newTestRouter(t, Options{})
	rr := get(t, router, "/settings/billing")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found")
	assert.Contains(t, rr.Body.String(), "/settings/billing")
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, Options{})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/signin", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = post(t, router, "/dashboard", url.Values{})
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormRateLimit(t *testing.T) {
	router := newTestRouter(t, Options{FormRateLimit: 2, FormRateWindow: time.Minute})

	for i := 0; i < 2; i++ {
		rr := post(t, router, "/signin", url.Values{})
		require.Equal(t, http.StatusSeeOther, rr.Code)
	}
	rr := post(t, router, "/signin", url.Values{})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	rr = post(t, router, "/signup", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code, "budgets are per form")

	rr = get(t, router, "/signin")
	assert.Equal(t, http.StatusOK, rr.Code, "page views are not limited")
}

func TestFormRateLimitIgnoresForwardedFor(t *testing.T) {
	router := newTestRouter(t, Options{FormRateLimit: 2, FormRateWindow: time.Minute})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", "10.0.0."+strconv.Itoa(i))
		req.RemoteAddr = "192.0.2.7:4000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{
		http.StatusSeeOther,
		http.StatusSeeOther,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestUnmatchedRequestsAreCounted(t *testing.T) {
	router := newTestRouter(t, Options{})
	notFound := router.requestTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	notAllowed := router.requestTotal.WithLabelValues(http.MethodPost, "unmatched", "405")
	beforeNotFound := testutil.ToFloat64(notFound)
	beforeNotAllowed := testutil.ToFloat64(notAllowed)

	assert.Equal(t, http.StatusNotFound, get(t, router, "/no/such/page").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, post(t, router, "/dashboard", url.Values{}).Code)

	assert.Equal(t, beforeNotFound+1, testutil.ToFloat64(notFound))
	assert.Equal(t, beforeNotAllowed+1, testutil.ToFloat64(notAllowed))
}

func TestHealthzAndMetrics(t *testing.T) {
	router := newTestRouter(t, Options{})

	rr := get(t, router, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])

	get(t, router, "/dashboard")
	rr = get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hostrix_dashboard_http_requests_total")
}

func TestRoutesTable(t *testing.T) {
	router := newTestRouter(t, Options{})
	var paths []string
	for _, route := range router.Routes() {
		paths = append(paths, route.Path)
	}
	for _, want := range []string{"/", "/signin", "/signup", "/verify", "/dashboard", "/project/new", "/deploy/{projectName}"} {
		assert.Contains(t, paths, want)
	}
}

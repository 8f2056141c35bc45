package banner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waldirborbajr/versioncheck/banner"
	"github.com/waldirborbajr/versioncheck/updater"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandlerShowsUpdate(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.1.0","html_url":"https://example.com/r/v1.1.0"}`)
	checker := &updater.Checker{URL: srv.URL, Client: srv.Client(), Timeout: time.Second}
	h := banner.NewHandler(checker, "1.0.0")

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<span id="app-update">1.0.0 =&gt; 1.1.0</span>`)
	assert.Contains(t, body, `<a id="update-link" class="nav-link" href="https://example.com/r/v1.1.0">`)
	assert.Contains(t, body, `style="display: block"`)
	assert.NotContains(t, body, banner.HiddenClass)
}

func TestHandlerHidesOnFetchFailure(t *testing.T) {
	srv := releaseServer(t, http.StatusBadGateway, `upstream down`)
	checker := &updater.Checker{URL: srv.URL, Client: srv.Client(), Timeout: time.Second}
	h := banner.NewHandler(checker, "1.0.0")

	rec := get(t, h, "/update-banner")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `class="nav-link visually-hidden"`)
	assert.Contains(t, body, `style="display: none"`)
	assert.Contains(t, body, `<span id="app-update"></span>`)
}

func TestHandlerResultJSON(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v2.0.0"}`)
	checker := &updater.Checker{URL: srv.URL, Client: srv.Client(), Timeout: time.Second}
	h := banner.NewHandler(checker, "1.9.9")

	rec := get(t, h, "/api/v1/update-check")
	require.Equal(t, http.StatusOK, rec.Code)

	var res updater.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.UpdateAvailable)
	assert.Equal(t, "1.9.9", res.CurrentVersion)
	assert.Equal(t, "2.0.0", res.LatestVersion)
}

func TestHandlerRejectsOtherMethods(t *testing.T) {
	h := banner.NewHandler(stubChecker{}, "1.0.0")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/update-check", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = get(t, h, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerChecksOncePerRequest(t *testing.T) {
	stub := &countingChecker{}
	h := banner.NewHandler(stub, "1.0.0")

	get(t, h, "/")
	get(t, h, "/")
	assert.Equal(t, 2, stub.calls)
}

func TestRenderWithoutElements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, banner.Render(&buf, &banner.Page{}, ""))
	assert.NotContains(t, buf.String(), banner.ButtonID)
	assert.NotContains(t, buf.String(), banner.LinkID)
}

type stubChecker struct{}

func (stubChecker) Check(_ context.Context, current string) updater.Result {
	return updater.Result{CurrentVersion: current}
}

type countingChecker struct{ calls int }

func (c *countingChecker) Check(_ context.Context, current string) updater.Result {
	c.calls++
	return updater.Result{CurrentVersion: current}
}

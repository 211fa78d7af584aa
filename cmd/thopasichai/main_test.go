package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/events"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/metrics"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/router"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/presentation/api"
)

func TestSetup(t *testing.T) {
	r, is := setupTest(t, nil)
	server := httptest.NewServer(r)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/health", "")

	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestThatReadingAboveSeededThresholdTurnsMotorOn(t *testing.T) {
	r, is := setupTest(t, nil)
	server := httptest.NewServer(r)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/data/receive", `{"nodeid":"field-01","value":65}`)
	is.Equal(resp.StatusCode, http.StatusCreated)
	is.True(strings.Contains(body, `"new_state":"ON"`))

	resp, body = testRequest(is, server, http.MethodGet, "/api/motorsinfo", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `{"field-01":"ON"}`)

	resp, body = testRequest(is, server, http.MethodGet, "/metrics", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `thopasichai_motor_on{nodeid="field-01"} 1`))
}

func TestThatUnknownNodeIsAutoProvisioned(t *testing.T) {
	r, is := setupTest(t, nil)
	server := httptest.NewServer(r)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/data/receive", `{"nodeid":"field-42","value":65}`)
	is.Equal(resp.StatusCode, http.StatusCreated)
	is.True(strings.Contains(body, `"sensor_created":true`))

	resp, _ = testRequest(is, server, http.MethodGet, "/api/sensors/field-42", "")
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestThatShippedPoliciesProtectOperatorRoutes(t *testing.T) {
	is := is.New(t)

	policies, err := openPolicies(filepath.Join("..", "..", "assets", "config", "authz.rego"))
	is.NoErr(err)
	is.True(policies != nil)

	r, _ := setupTest(t, policies)
	server := httptest.NewServer(r)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/mode/set", `{"mode":"MANUAL"}`)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)

	resp, _ = testRequest(is, server, http.MethodGet, "/api/mode", "")
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestThatMissingOptionalFilesAreAccepted(t *testing.T) {
	is := is.New(t)

	policies, err := openPolicies(filepath.Join(t.TempDir(), "nosuchfile.rego"))
	is.NoErr(err)
	is.True(policies == nil)

	notifier, err := newNotifier(filepath.Join(t.TempDir(), "nosuchfile.yaml"))
	is.NoErr(err)
	is.True(notifier != nil)
}

func setupTest(t *testing.T, policies io.Reader) (*chi.Mux, *is.I) {
	is := is.New(t)
	ctx := context.Background()

	t.Setenv("POSTGRES_HOST", "")

	flags := defaultFlags()
	flags[seedFile] = filepath.Join(t.TempDir(), "sensors.csv")
	is.NoErr(os.WriteFile(flags[seedFile], []byte(seedMock), 0o600))

	repo, err := newRepository(ctx, flags)
	is.NoErr(err)
	is.NoErr(seed(ctx, repo, flags[seedFile]))

	m := metrics.New()

	svc := irrigation.New(repo, events.NewFanOut(m), irrigation.Config{Location: time.UTC})

	r, err := api.RegisterHandlers(ctx, router.New("testService"), svc, api.Config{
		Policies: policies,
		Metrics:  m.Handler(),
	})
	is.NoErr(err)

	return r, is
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body string) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	respBody, _ := io.ReadAll(resp.Body)
	defer resp.Body.Close()

	return resp, string(respBody)
}

const seedMock string = `nodeid;name;motor;threshold
field-01;North field;Pump 1;40
field-02;South field;;`

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/vmhl-standings/internal/config"
	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/metrics"
	"github.com/preston-bernstein/vmhl-standings/internal/testutil"
)

// Smoke test to ensure main honors SKIP_CONSOLE_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_CONSOLE_RUN", "1")
	main()
}

func TestRunListsRemoteStandings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s request", r.Method)
		}
		_ = json.NewEncoder(w).Encode([]teams.Team{{ID: 1, Name: "Ice Wolves", Points: 12, Position: 1}})
	}))
	defer srv.Close()

	logger, logs := testutil.NewBufferLogger()
	var out bytes.Buffer
	cfg := config.Config{Console: config.ConsoleConfig{
		RemoteBaseURL: srv.URL,
		AdminSecret:   "vmhl2000",
		AdminPassword: "vmhl2000",
		Timeout:       time.Second,
	}}
	if err := run(context.Background(), cfg, strings.NewReader("quit\n"), &out, logger); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Ice Wolves") {
		t.Fatalf("expected team in output, got:\n%s", out.String())
	}
	for _, want := range []string{"console starting", "loading standings"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("expected %q in logs, got:\n%s", want, logs.String())
		}
	}
}

func TestRunRecordsRemoteCallsOnTelemetryRecorder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	rec := metrics.NewRecorder()
	shutdowns := 0
	orig := metricsSetup
	metricsSetup = func(_ context.Context, tc metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		if !tc.Enabled || tc.OtlpEndpoint != "collector:4318" {
			t.Errorf("unexpected telemetry config %+v", tc)
		}
		return rec, http.NotFoundHandler(), func(context.Context) error { shutdowns++; return nil }, nil
	}
	defer func() { metricsSetup = orig }()

	cfg := config.Config{
		Console: config.ConsoleConfig{RemoteBaseURL: srv.URL, AdminPassword: "vmhl2000", Timeout: time.Second},
		Metrics: config.MetricsConfig{Enabled: true, OtlpEndpoint: "collector:4318"},
	}
	if err := run(context.Background(), cfg, strings.NewReader("refresh\nquit\n"), &bytes.Buffer{}, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := rec.RemoteCalls("list"); got != 2 {
		t.Fatalf("expected two list calls recorded, got %d", got)
	}
	if shutdowns != 1 {
		t.Fatalf("expected meter provider shutdown once, got %d", shutdowns)
	}
}

func TestTelemetryFallsBackWhenSetupFails(t *testing.T) {
	orig := metricsSetup
	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("exporter unavailable")
	}
	defer func() { metricsSetup = orig }()

	logger, buf := testutil.NewBufferLogger()
	rec, closeMetrics := telemetry(context.Background(), config.Config{Metrics: config.MetricsConfig{Enabled: true}}, logger)
	defer closeMetrics()

	if rec == nil {
		t.Fatalf("expected fallback recorder")
	}
	if !strings.Contains(buf.String(), "metrics setup failed") {
		t.Fatalf("expected setup failure to be logged, got %s", buf.String())
	}
}

func TestRunRejectsEmptyPassword(t *testing.T) {
	cfg := config.Config{Console: config.ConsoleConfig{RemoteBaseURL: "http://localhost:1"}}
	if err := run(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, nil); err == nil {
		t.Fatalf("expected error for empty admin password")
	}
}

/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/config"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/launcher"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/store"
)

type stubSessions struct{}

func (stubSessions) ListSessions(ctx context.Context, studioID string) ([]models.ActiveSession, error) {
	return nil, nil
}

func (stubSessions) CreateSession(ctx context.Context, req models.LaunchRequest) (string, error) {
	return "session-1", nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{HTTPBind: "127.0.0.1", HTTPPort: 0}
	scheduler := launcher.New(store.NewMemory(), stubSessions{}, config.SessionLookupAbort, zerolog.Nop())
	return New(cfg, scheduler, zerolog.Nop())
}

func TestHealthzReportsOK(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestInvokeRunsOneInvocation(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/invoke", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var summary launcher.Summary
	if err := json.NewDecoder(rr.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.InvocationID == "" {
		t.Fatal("expected an invocation id in the summary")
	}
	if summary.Matched != 0 || summary.Launched != 0 {
		t.Fatalf("empty store should match nothing, got %+v", summary)
	}
}

func TestInvokeRejectsGet(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/invoke", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/cosmolaser/content-gap/internal/analyzer"
	"github.com/cosmolaser/content-gap/internal/gap"
	"github.com/cosmolaser/content-gap/internal/model"
	"github.com/cosmolaser/content-gap/internal/report"
	"github.com/cosmolaser/content-gap/internal/settings"
)

type fakeRunner struct {
	mu     sync.Mutex
	got    []*settings.Settings
	err    error
	active int
	max    int
}

func (f *fakeRunner) Run(_ context.Context, s *settings.Settings) (*analyzer.Result, error) {
	f.mu.Lock()
	f.got = append(f.got, s.Clone())
	f.active++
	if f.active > f.max {
		f.max = f.active
	}
	f.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.active--
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &analyzer.Result{
		RunID:        "run-1",
		TargetDomain: s.TargetDomain,
		Target:       model.DomainKeywords{Domain: s.TargetDomain, Keywords: []model.Keyword{}},
		Ranked: []gap.Gap{{
			Competitor: s.Competitors[0],
			Keyword:    model.Keyword{Keyword: "laser hårfjerning", SearchVolume: 600},
			Score:      4.2,
			Tier:       gap.TierHigh,
		}},
	}, nil
}

func newTestServer(t *testing.T) (*Server, *fakeRunner, *settings.Store) {
	t.Helper()
	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	s := &settings.Settings{
		TargetDomain:      "cosmolaser.dk",
		Competitors:       []string{"a.dk"},
		TreatmentKeywords: []string{"botox"},
		FilterKeywords:    true,
	}
	runner := &fakeRunner{}
	return New(settings.NewEditor(s, store), runner), runner, store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestGetSettings(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/api/settings", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var got settings.Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "cosmolaser.dk", got.TargetDomain)
	assert.Equal(t, []string{"a.dk"}, got.Competitors)
	assert.True(t, got.FilterKeywords)
}

func TestPostSettings(t *testing.T) {
	srv, _, store := newTestServer(t)
	body := `{"competitors":["x.dk","y.dk"],"treatment_keywords":["filler"],"filter_keywords":false}`
	rr := do(t, srv.Handler(), http.MethodPost, "/api/settings", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Success  bool              `json:"success"`
		Settings settings.Settings `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "cosmolaser.dk", resp.Settings.TargetDomain)
	assert.NotEmpty(t, resp.Settings.LastUpdated)

	saved, found, err := store.Load(settings.Settings{})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"x.dk", "y.dk"}, saved.Competitors)
	assert.Equal(t, []string{"filler"}, saved.TreatmentKeywords)
	assert.False(t, saved.FilterKeywords)
}

func TestPostSettings_InvalidBody(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodPost, "/api/settings", "not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestAnalyze_CurrentSettings(t *testing.T) {
	srv, runner, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodPost, "/api/analyze", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "cosmolaser.dk", resp["target_domain"])
	gaps, ok := resp["content_gaps"].([]any)
	require.True(t, ok)
	require.Len(t, gaps, 1)
	first := gaps[0].(map[string]any)
	assert.Equal(t, 4.2, first["priority_score"])
	assert.Equal(t, "HIGH", first["priority_level"])

	require.Len(t, runner.got, 1)
	assert.Equal(t, []string{"a.dk"}, runner.got[0].Competitors)
}

func TestAnalyze_PostedSettings(t *testing.T) {
	srv, runner, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodPost, "/api/analyze", `{"target_domain":"b.dk","competitors":["c.dk"]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, runner.got, 1)
	assert.Equal(t, "b.dk", runner.got[0].TargetDomain)
	assert.Equal(t, []string{"c.dk"}, runner.got[0].Competitors)
	// Unposted fields fall back to the current settings.
	assert.Equal(t, []string{"botox"}, runner.got[0].TreatmentKeywords)

	// Posted settings are not persisted.
	rr = do(t, srv.Handler(), http.MethodGet, "/api/settings", "")
	assert.Contains(t, rr.Body.String(), `"target_domain":"cosmolaser.dk"`)
}

func TestAnalyze_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "no competitors", body: `{"competitors":[]}`, code: http.StatusBadRequest},
		{name: "blank target", body: `{"target_domain":" "}`, code: http.StatusBadRequest},
		{name: "bad json", body: `{`, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, runner, _ := newTestServer(t)
			rr := do(t, srv.Handler(), http.MethodPost, "/api/analyze", tt.body)
			assert.Equal(t, tt.code, rr.Code)
			assert.Empty(t, runner.got)
		})
	}
}

func TestAnalyze_RunnerError(t *testing.T) {
	srv, runner, _ := newTestServer(t)
	runner.err = errors.New("analyzer: run cancelled")

	rr := do(t, srv.Handler(), http.MethodPost, "/api/analyze", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"analyzer: run cancelled"}`, rr.Body.String())
}

func TestAnalyze_Serialized(t *testing.T) {
	srv, runner, _ := newTestServer(t)
	h := srv.Handler()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
			h.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	assert.Len(t, runner.got, 4)
	assert.Equal(t, 1, runner.max)
}

func TestExport(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodPost, "/api/export", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="content_gap_analysis.xlsx"`, rr.Header().Get("Content-Disposition"))

	f, err := xlsx.OpenBinary(rr.Body.Bytes())
	require.NoError(t, err)
	sheet, ok := f.Sheet[report.SheetGaps]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "laser hårfjerning", sheet.Rows[1].Cells[1].String())
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_GracefulShutdown(t *testing.T) {
	srv, _, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(ctx, port) }()

	var ready bool
	for i := 0; i < 50; i++ {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err == nil {
			resp.Body.Close()
			ready = resp.StatusCode == http.StatusOK
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ready, "server did not become ready in time")

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

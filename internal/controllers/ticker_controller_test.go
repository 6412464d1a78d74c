package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/RealZimboGuy/epochtick/internal/domain"
	"github.com/RealZimboGuy/epochtick/internal/engine"
)

// MockTickerControl implements engine.TickerControl for testing
type MockTickerControl struct {
	StatusFunc   func() engine.Status
	StopFunc     func()
	RestartFunc  func() error
	ListRunsFunc func(limit int) ([]*domain.EpochRun, error)
}

func (m *MockTickerControl) Status() engine.Status {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return engine.Status{}
}
func (m *MockTickerControl) Stop() {
	if m.StopFunc != nil {
		m.StopFunc()
	}
}
func (m *MockTickerControl) Restart() error {
	if m.RestartFunc != nil {
		return m.RestartFunc()
	}
	return nil
}
func (m *MockTickerControl) ListRuns(limit int) ([]*domain.EpochRun, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(limit)
	}
	return nil, nil
}

func newMux(c *TickerController) *http.ServeMux {
	mux := http.NewServeMux()
	c.RegisterRoutes(mux)
	return mux
}

func TestTickerController_GetStatus(t *testing.T) {
	mock := &MockTickerControl{
		StatusFunc: func() engine.Status {
			return engine.Status{Running: true, EngineCount: 3, Interval: "10ms", Ticks: 42}
		},
	}
	mux := newMux(NewTickerController(mock, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/ticker", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var st engine.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !st.Running || st.EngineCount != 3 || st.Ticks != 42 {
		t.Errorf("Unexpected status %+v", st)
	}
}

func TestTickerController_Stop(t *testing.T) {
	stopped := false
	mock := &MockTickerControl{
		StopFunc: func() { stopped = true },
		StatusFunc: func() engine.Status {
			return engine.Status{Running: !stopped}
		},
	}
	mux := newMux(NewTickerController(mock, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/ticker/stop", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !stopped {
		t.Error("Expected Stop to be called")
	}
	var st engine.Status
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if st.Running {
		t.Error("Expected stopped status in response")
	}
}

func TestTickerController_StopRequiresPost(t *testing.T) {
	mock := &MockTickerControl{
		StopFunc: func() { t.Error("Stop must not be called for GET") },
	}
	mux := newMux(NewTickerController(mock, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/ticker/stop", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestTickerController_Start(t *testing.T) {
	tests := []struct {
		name       string
		restartErr error
		wantStatus int
	}{
		{"started", nil, http.StatusOK},
		{"already running", engine.ErrAlreadyRunning, http.StatusConflict},
		{"never started", engine.ErrNoHandles, http.StatusBadRequest},
		{"other failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTickerControl{
				RestartFunc: func() error { return tt.restartErr },
			}
			mux := newMux(NewTickerController(mock, ""))

			req := httptest.NewRequest(http.MethodPost, "/api/ticker/start", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestTickerController_GetRuns(t *testing.T) {
	var gotLimit int
	mock := &MockTickerControl{
		ListRunsFunc: func(limit int) ([]*domain.EpochRun, error) {
			gotLimit = limit
			return []*domain.EpochRun{
				{ID: 1, Name: "host/run-1", EngineCount: 2},
			}, nil
		},
	}
	mux := newMux(NewTickerController(mock, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotLimit != defaultRunsLimit {
		t.Errorf("Expected limit %d, got %d", defaultRunsLimit, gotLimit)
	}
	var runs []domain.EpochRun
	if err := json.NewDecoder(w.Body).Decode(&runs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(runs) != 1 || runs[0].Name != "host/run-1" {
		t.Errorf("Unexpected runs %+v", runs)
	}
}

func TestTickerController_GetRunsLimit(t *testing.T) {
	var gotLimit int
	mock := &MockTickerControl{
		ListRunsFunc: func(limit int) ([]*domain.EpochRun, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	mux := newMux(NewTickerController(mock, ""))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs?limit=5", nil))
	if w.Code != http.StatusOK || gotLimit != 5 {
		t.Errorf("Expected 200 with limit 5, got %d with limit %d", w.Code, gotLimit)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs?limit=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad limit, got %d", w.Code)
	}
}

func TestTickerController_GetRunsError(t *testing.T) {
	mock := &MockTickerControl{
		ListRunsFunc: func(limit int) ([]*domain.EpochRun, error) {
			return nil, errors.New("db down")
		},
	}
	mux := newMux(NewTickerController(mock, ""))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestTickerController_RequiresApiKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash key: %v", err)
	}
	stopped := false
	mock := &MockTickerControl{StopFunc: func() { stopped = true }}
	mux := newMux(NewTickerController(mock, string(hash)))

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusUnauthorized},
		{"valid key", "s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/ticker/stop", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
	if !stopped {
		t.Error("Expected Stop to be called with a valid key")
	}
}

package common

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RealZimboGuy/epochtick/internal/config"
	"github.com/RealZimboGuy/epochtick/internal/domain"
	"github.com/RealZimboGuy/epochtick/internal/engine"
	"github.com/RealZimboGuy/epochtick/internal/util"
	"github.com/RealZimboGuy/epochtick/pkg/epochtick"
)

var portBase int32 = 9098

func NextPort() int {
	return int(atomic.AddInt32(&portBase, 1))
}

// StartDaemon serves the epochtick daemon on port until the test ends.
func StartDaemon(t *testing.T, port int) {
	t.Helper()
	os.Setenv(config.SERVER_WEB_PORT, strconv.Itoa(port))
	os.Setenv(config.ENGINE_COUNT, "3")
	os.Setenv(config.TICK_INTERVAL, "2ms")
	os.Setenv(config.HEARTBEAT_INTERVAL, "50ms")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- epochtick.Serve(ctx, nil) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})

	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(fmt.Sprintf("http://localhost:%d/api/ticker", port))
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("daemon did not come up on port %d", port)
}

func call[T any](t *testing.T, method string, port int, path string, wantStatus int) T {
	t.Helper()
	req, err := http.NewRequest(method, fmt.Sprintf("http://localhost:%d%s", port, path), nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	if resp.StatusCode != wantStatus {
		resp.Body.Close()
		t.Fatalf("%s %s: expected %d, got %d", method, path, wantStatus, resp.StatusCode)
	}
	out, err := util.DecodeJSONBodyResponse[T](resp)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return out
}

// RunTickerLifecycle drives a running daemon through stop and restart and
// checks the run history it leaves behind.
func RunTickerLifecycle(t *testing.T, port int) {
	st := call[engine.Status](t, http.MethodGet, port, "/api/ticker", http.StatusOK)
	if !st.Running || st.EngineCount != 3 || st.RunID == 0 {
		t.Fatalf("Unexpected initial status %+v", st)
	}
	firstRun := st.RunID

	// let at least one heartbeat land
	time.Sleep(200 * time.Millisecond)
	runs := call[[]domain.EpochRun](t, http.MethodGet, port, "/api/runs", http.StatusOK)
	if len(runs) == 0 || runs[0].ID != firstRun {
		t.Fatalf("Expected run %d to be listed, got %+v", firstRun, runs)
	}
	if runs[0].Ticks == 0 || !runs[0].LastActive.After(runs[0].Started) {
		t.Errorf("Expected heartbeat to record ticks and last_active, got %+v", runs[0])
	}

	st = call[engine.Status](t, http.MethodPost, port, "/api/ticker/stop", http.StatusOK)
	if st.Running {
		t.Fatal("Expected ticker to be stopped")
	}
	// stopping an idle ticker is a no-op
	if st = call[engine.Status](t, http.MethodPost, port, "/api/ticker/stop", http.StatusOK); st.Running {
		t.Fatal("Expected ticker to stay stopped")
	}

	st = call[engine.Status](t, http.MethodPost, port, "/api/ticker/start", http.StatusOK)
	if !st.Running || st.RunID == firstRun {
		t.Fatalf("Expected a new run after restart, got %+v", st)
	}
	conflict := call[map[string]string](t, http.MethodPost, port, "/api/ticker/start", http.StatusConflict)
	if conflict["error"] != engine.ErrAlreadyRunning.Error() {
		t.Errorf("Expected already running error, got %v", conflict)
	}

	runs = call[[]domain.EpochRun](t, http.MethodGet, port, "/api/runs?limit=10", http.StatusOK)
	var stopped *domain.EpochRun
	for i := range runs {
		if runs[i].ID == firstRun {
			stopped = &runs[i]
		}
	}
	if stopped == nil {
		t.Fatalf("Run %d missing from history %+v", firstRun, runs)
	}
	if !stopped.Stopped.Valid {
		t.Errorf("Expected run %d to be marked stopped", firstRun)
	}
	if len(runs) < 2 {
		t.Errorf("Expected both runs in history, got %d", len(runs))
	}
}

// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/worldcams/internal/api"
	"github.com/tomtom215/worldcams/internal/catalog"
	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/proxycache"
	"github.com/tomtom215/worldcams/internal/windy"
)

var _ suture.Service = (*HTTPServerService)(nil)

// listenerServer serves on a pre-bound listener so tests know the port.
type listenerServer struct {
	*http.Server
	ln net.Listener
}

func (s listenerServer) ListenAndServe() error {
	return s.Serve(s.ln)
}

func newListenerServer(t *testing.T, handler http.Handler) (listenerServer, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := listenerServer{
		Server: &http.Server{Handler: handler, ReadHeaderTimeout: time.Second},
		ln:     ln,
	}
	return srv, "http://" + ln.Addr().String()
}

// worldcamsRouter builds the production router over an empty static catalog
// and a keyless Windy client.
func worldcamsRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	loader, err := catalog.NewLoader(config.CatalogConfig{
		Mode:         catalog.ModeStatic,
		CuratedPath:  filepath.Join(dir, "cameras.json"),
		SnapshotPath: filepath.Join(dir, "windy-webcams.json"),
	}, nil)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	client := windy.NewClient(config.WindyConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	mw := api.DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	return api.NewRouter(api.NewHandler(loader, client, proxycache.NewMemory(8)), mw).Setup()
}

func get(t *testing.T, url string) int {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func startService(t *testing.T, svc *HTTPServerService) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	return cancel, errCh
}

func waitServe(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return")
		return nil
	}
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -5 * time.Second} {
		svc := NewHTTPServerService(&http.Server{}, ":3857", timeout)
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("timeout %v: got %v, want 10s", timeout, svc.shutdownTimeout)
		}
	}
	if got := NewHTTPServerService(&http.Server{}, ":3857", time.Second).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

func TestHTTPServerService_ServesRouterUntilCanceled(t *testing.T) {
	srv, base := newListenerServer(t, worldcamsRouter(t))
	cancel, errCh := startService(t, NewHTTPServerService(srv, base, time.Second))

	if code := get(t, base+"/health/live"); code != http.StatusOK {
		t.Errorf("/health/live = %d, want 200", code)
	}
	if code := get(t, base+"/health/ready"); code != http.StatusOK {
		t.Errorf("/health/ready = %d, want 200 for a static catalog", code)
	}
	if code := get(t, base+"/api/windy?north=1&south=0"); code != http.StatusInternalServerError {
		t.Errorf("/api/windy without a key = %d, want 500", code)
	}

	cancel()
	if err := waitServe(t, errCh); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if _, err := http.Get(base + "/health/live"); err == nil { //nolint:bodyclose,noctx
		t.Error("listener should be closed after shutdown")
	}
}

func TestHTTPServerService_DrainsInFlightRequest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/cameras", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	})

	srv, base := newListenerServer(t, mux)
	cancel, errCh := startService(t, NewHTTPServerService(srv, base, 2*time.Second))

	codeCh := make(chan int, 1)
	go func() {
		resp, err := http.Get(base + "/api/v1/cameras") //nolint:noctx
		if err != nil {
			codeCh <- 0
			return
		}
		resp.Body.Close()
		codeCh <- resp.StatusCode
	}()

	<-entered
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(release)

	if code := <-codeCh; code != http.StatusOK {
		t.Errorf("in-flight request = %d, want 200", code)
	}
	if err := waitServe(t, errCh); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestHTTPServerService_ShutdownTimeout(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	mux := http.NewServeMux()
	mux.HandleFunc("/stuck", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
	})

	srv, base := newListenerServer(t, mux)
	cancel, errCh := startService(t, NewHTTPServerService(srv, base, 50*time.Millisecond))

	go func() {
		if resp, err := http.Get(base + "/stuck"); err == nil { //nolint:noctx
			resp.Body.Close()
		}
	}()
	<-entered
	cancel()

	if err := waitServe(t, errCh); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want a shutdown deadline error", err)
	}
}

func TestHTTPServerService_PortInUse(t *testing.T) {
	held, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer held.Close()

	srv := &http.Server{Addr: held.Addr().String(), ReadHeaderTimeout: time.Second}
	err = NewHTTPServerService(srv, srv.Addr, time.Second).Serve(context.Background())
	if err == nil {
		t.Fatal("expected a listen error")
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Errorf("Serve() = %v, want a wrapped *net.OpError", err)
	}
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	srv, base := newListenerServer(t, worldcamsRouter(t))

	sup := suture.New("api-layer", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(srv, base, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(base + "/health/live") //nolint:noctx
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("/health/live = %d", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("supervisor did not stop")
	}
}

package builder

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAppRunStopsOnContextCancel(t *testing.T) {
	app := &App{
		server:          &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()},
		logger:          zap.NewNop(),
		shutdownTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestAppRunReportsListenError(t *testing.T) {
	app := &App{
		server: &http.Server{Addr: "256.0.0.1:bad"},
		logger: zap.NewNop(),
	}

	select {
	case err := <-runAsync(app):
		if err == nil {
			t.Fatal("expected a listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return on listen error")
	}
}

func runAsync(app *App) <-chan error {
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}

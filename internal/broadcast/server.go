package broadcast

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// StatusPath is the websocket endpoint.
const StatusPath = "/status"

// Handler returns the HTTP routes of hub.
func Handler(hub *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(StatusPath, hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","clients":%d}`, hub.Clients())
	})
	return mux
}

// Serve listens on address until ctx is cancelled, then disconnects every
// client and shuts the server down.
func Serve(ctx context.Context, address string, hub *Hub) error {
	server := &http.Server{
		Addr:              address,
		Handler:           Handler(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("broadcast server error: %w", err)
		}
		close(errs)
	}()

	select {
	case err, ok := <-errs:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

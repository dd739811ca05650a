package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Upstream fake para validar o client-demo na mão: responde JSON com latência
// injetada, se auto-limita com token bucket (429) e pode falhar de propósito
// a cada N requisições (500). Assim dá para ver rejeição, falha propagada e
// rearme do gate acontecendo de verdade.
func main() {
	addr := getenvDefault("LISTEN_ADDR", ":8081")
	latency := getenvDurationDefault("FAKE_LATENCY", 500*time.Millisecond)
	rps := getenvFloatDefault("RATE_RPS", 5)
	burst := getenvIntDefault("RATE_BURST", 2)
	failEvery := getenvIntDefault("FAIL_EVERY", 0)

	lim := rate.NewLimiter(rate.Limit(rps), burst)
	var counter atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/api/resource", func(w http.ResponseWriter, r *http.Request) {
		if !lim.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}

		n := counter.Add(1)
		if failEvery > 0 && n%int64(failEvery) == 0 {
			http.Error(w, "injected failure", http.StatusInternalServerError)
			return
		}

		select {
		case <-time.After(latency):
		case <-r.Context().Done():
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"v":  n,
			"q":  r.URL.RawQuery,
			"at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logrus.Infof("example server listening on %s (latency=%s rps=%.2f burst=%d failEvery=%d)",
		addr, latency, rps, burst, failEvery)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server error: %v", err)
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

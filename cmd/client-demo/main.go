package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"controlled-request/client/admission"
	"controlled-request/client/admission/domain"
	"controlled-request/client/admission/infra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Demo: emite requisições periódicas contra o upstream através do gate de
// admissão e mostra rejeição, falha e rearme no log.
func main() {
	cfg, err := readConfig()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stats := buildStats(ctx, cfg)

	if cfg.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			srv := &http.Server{Addr: cfg.metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.Warnf("metrics server error: %v", err)
			}
		}()
	}

	issuer := admission.HTTPIssuer{
		Client:  &http.Client{Timeout: cfg.requestTimeout},
		BaseURL: cfg.upstreamURL,
	}
	gate := admission.NewGate(issuer.Issue, admission.Options{
		Stats:  stats,
		Logger: logrus.StandardLogger(),
	})

	logrus.Infof("client-demo hitting %s%s every %s (rearm: success=%v failure=%v)",
		cfg.upstreamURL, cfg.requestPath, cfg.requestInterval, cfg.rearmOnSuccess, cfg.rearmOnFailure)

	t := time.NewTicker(cfg.requestInterval)
	defer t.Stop()

	n := 0
	for {
		select {
		case <-ctx.Done():
			logrus.Info("shutting down")
			return
		case <-t.C:
		}

		n++
		out, err := gate.Request(ctx, cfg.requestPath, map[string]string{"n": strconv.Itoa(n)})
		switch {
		case err != nil:
			logrus.WithField("request_id", out.RequestID).Warnf("request #%d failed: %v", n, err)
			if cfg.rearmOnFailure && out.Rearm != nil {
				out.Rearm.Rearm()
			}
		case !out.Admitted:
			logrus.Infof("request #%d rejected (gate closed)", n)
		default:
			logrus.WithField("request_id", out.RequestID).Infof("request #%d admitted: %s", n, out.Payload)
			if cfg.rearmOnSuccess {
				out.Rearm.Rearm()
			}
		}
	}
}

func buildStats(ctx context.Context, cfg config) domain.StatsStore {
	stores := []domain.StatsStore{}

	if cfg.metricsAddr != "" {
		stores = append(stores, infra.NewPromStatsStore(prometheus.DefaultRegisterer))
	}

	if cfg.statsRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("redis stats ping error: %v", err)
		}

		stores = append(stores, infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsTrackURLs(cfg.statsTrackURLs),
		))
	}

	switch len(stores) {
	case 0:
		return nil
	case 1:
		return stores[0]
	default:
		return multiStats(stores)
	}
}

// multiStats repassa o evento para todos os stores (best-effort).
type multiStats []domain.StatsStore

func (m multiStats) Record(ctx context.Context, ev domain.StatsEvent) error {
	for _, s := range m {
		_ = s.Record(ctx, ev)
	}
	return nil
}

type config struct {
	upstreamURL     string
	requestPath     string
	requestInterval time.Duration
	requestTimeout  time.Duration
	rearmOnSuccess  bool
	rearmOnFailure  bool

	metricsAddr string

	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
	statsTrackURLs     bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.upstreamURL = os.Getenv("UPSTREAM_URL")
	cfg.requestPath = getenvDefault("REQUEST_PATH", "/api/resource")
	cfg.requestInterval = getenvDurationDefault("REQUEST_INTERVAL", 300*time.Millisecond)
	cfg.requestTimeout = getenvDurationDefault("REQUEST_TIMEOUT", 10*time.Second)
	cfg.rearmOnSuccess = getenvBoolDefault("REARM_ON_SUCCESS", true)
	cfg.rearmOnFailure = getenvBoolDefault("REARM_ON_FAILURE", false)

	cfg.metricsAddr = os.Getenv("METRICS_ADDR")

	cfg.statsRedisAddr = os.Getenv("STATS_REDIS_ADDR")
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "gate:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsTrackURLs = getenvBoolDefault("STATS_TRACK_URLS", false)

	if strings.TrimSpace(cfg.upstreamURL) == "" {
		return config{}, errors.New("UPSTREAM_URL is required")
	}
	if cfg.requestInterval <= 0 {
		return config{}, errors.New("REQUEST_INTERVAL must be > 0")
	}
	return cfg, nil
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

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
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

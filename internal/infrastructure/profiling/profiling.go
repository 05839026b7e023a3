// Package profiling starts the optional pprof endpoint and Pyroscope continuous profiling.
package profiling

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/grafana/pyroscope-go"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
)

const pprofReadHeaderTimeout = 5 * time.Second

// Config controls which profilers are started.
type Config struct {
	PprofEnabled bool
	PprofPort    int

	PyroscopeEnabled bool
	PyroscopeURL     string

	ApplicationName string
	Environment     string
	Version         string
}

// Profiler holds whatever was started by Start.
type Profiler struct {
	pprofServer *http.Server
	pyroscope   *pyroscope.Profiler
}

// Start launches the enabled profilers. The pprof server binds to localhost only.
// With nothing enabled it returns an empty Profiler whose Stop is a no-op.
func Start(cfg Config, log logger.Logger) (*Profiler, error) {
	p := &Profiler{}

	if cfg.PprofEnabled {
		p.pprofServer = newPprofServer(cfg.PprofPort)
		go func() {
			log.Info("Starting pprof server", logger.String("address", p.pprofServer.Addr))
			if err := p.pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("pprof server error", logger.Error(err))
			}
		}()
	}

	if cfg.PyroscopeEnabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: cfg.ApplicationName,
			ServerAddress:   cfg.PyroscopeURL,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileGoroutines,
			},
			Tags: map[string]string{
				"environment": cfg.Environment,
				"version":     cfg.Version,
				"hostname":    hostname(),
				"go_version":  runtime.Version(),
			},
		})
		if err != nil {
			_ = p.Stop()
			return nil, fmt.Errorf("start pyroscope profiler: %w", err)
		}
		p.pyroscope = profiler
		log.Info("Pyroscope continuous profiling started",
			logger.String("application", cfg.ApplicationName),
			logger.String("server", cfg.PyroscopeURL),
		)
	}

	return p, nil
}

// Stop shuts down every started profiler.
func (p *Profiler) Stop() error {
	if p == nil {
		return nil
	}

	var errs []error
	if p.pprofServer != nil {
		errs = append(errs, p.pprofServer.Close())
	}
	if p.pyroscope != nil {
		errs = append(errs, p.pyroscope.Stop())
	}
	return errors.Join(errs...)
}

func newPprofServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &http.Server{
		Addr:              net.JoinHostPort("localhost", strconv.Itoa(port)),
		Handler:           mux,
		ReadHeaderTimeout: pprofReadHeaderTimeout,
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

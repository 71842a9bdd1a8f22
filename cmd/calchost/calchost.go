package main

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bytecalc/gobytecalc/pkg/api"
	"github.com/bytecalc/gobytecalc/pkg/calc"
	"github.com/bytecalc/gobytecalc/pkg/logging"
	"github.com/bytecalc/gobytecalc/pkg/proto"
	"github.com/bytecalc/gobytecalc/pkg/runtime"
)

var version = "v0.1.0"

const (
	defaultTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

type configuration struct {
	address        string
	metricsAddress string
	logLevel       string
	logFilter      string
	programAddress string
	rateLimit      int
	rateBurst      int
	rateCacheSize  int
	maxConnections int
	logRequests    bool
}

func parseConfiguration() configuration {
	c := configuration{}
	flag.StringVarP(&c.address, "address", "a", ":8080", "Address to bind the API server")
	flag.StringVar(&c.metricsAddress, "metrics-address", "", "Address to bind the Prometheus metrics server; empty disables metrics")
	flag.StringVar(&c.logLevel, "log-level", "INFO", "Logging level. Supported levels: DEBUG, INFO, WARN, ERROR, FATAL")
	flag.StringVar(&c.logFilter, "log-filter", "", "Logging filter rules, for example \"warn+:*\"")
	flag.StringVar(&c.programAddress, "program-address", "", "Base58 address to register the calculator program at; empty selects the well-known address")
	flag.IntVar(&c.rateLimit, "ratelimit-rps", 0, "Requests per second allowed per remote address; 0 disables rate limiting")
	flag.IntVar(&c.rateBurst, "ratelimit-burst", 16, "Maximum burst above the allowed rate")
	flag.IntVar(&c.rateCacheSize, "ratelimit-cache", api.DefaultRateLimiterStorageSize, "Size of the rate limiter memory store in bytes")
	flag.IntVar(&c.maxConnections, "max-connections", api.DefaultMaxConnections, "Maximum simultaneous API connections")
	flag.BoolVar(&c.logRequests, "log-requests", false, "Log every served HTTP request")
	showVersion := flag.BoolP("version", "v", false, "Print version information and quit")
	flag.Parse()
	if *showVersion {
		fmt.Printf("calchost %s\n", version)
		os.Exit(0)
	}
	return c
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	c := parseConfiguration()
	logger, log, err := logging.Setup(logging.Parameters{Level: c.logLevel, Filter: c.logFilter})
	if err != nil {
		fmt.Println("Invalid logging parameters:", err)
		return 2
	}
	defer func() {
		_ = logger.Sync()
	}()
	if runErr := run(c, log); runErr != nil {
		log.Errorf("Calculator host failed: %v", runErr)
		return 1
	}
	return 0
}

func run(c configuration, log *zap.SugaredLogger) (retErr error) {
	eg, ctx := errgroup.WithContext(context.Background())
	defer func() {
		if wErr := eg.Wait(); wErr != nil && !errors.Is(wErr, context.Canceled) {
			retErr = stderrs.Join(retErr, wErr)
		}
	}()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	program := calc.DefaultAddress()
	if c.programAddress != "" {
		var err error
		program, err = proto.NewAddressFromString(c.programAddress)
		if err != nil {
			return errors.Wrap(err, "invalid program address")
		}
	}

	rt, err := runtime.NewRuntime(runtime.WithLogger(zap.L()))
	if err != nil {
		return errors.Wrap(err, "failed to create runtime")
	}
	if rErr := rt.Register(program, calc.CalculatorProgram{}); rErr != nil {
		return errors.Wrap(rErr, "failed to register calculator program")
	}
	app, err := api.NewApp(rt, program, version)
	if err != nil {
		return errors.Wrap(err, "failed to create application")
	}

	log.Infof("Calculator host %s", version)
	log.Infof("Calculator program registered at '%s'", program.String())

	if c.metricsAddress != "" {
		eg.Go(func() error {
			<-runPrometheusMetricsServer(ctx, c.metricsAddress)
			return nil
		})
	}

	eg.Go(func() error {
		log.Infof("Starting API server on '%s'", c.address)
		return api.Run(ctx, c.address, api.NewHostApi(app), runOptions(c))
	})

	<-ctx.Done()
	log.Info("User termination in progress...")
	return nil
}

func runOptions(c configuration) *api.RunOptions {
	opts := api.DefaultRunOptions()
	opts.LogHttpRequests = c.logRequests
	opts.MaxConnections = c.maxConnections
	if c.rateLimit > 0 {
		opts.RateLimiterOpts = &api.RateLimiterOptions{
			MemoryCacheSize:      c.rateCacheSize,
			MaxRequestsPerSecond: c.rateLimit,
			MaxBurst:             c.rateBurst,
		}
	} else {
		opts.RateLimiterOpts = nil
	}
	return opts
}

func runPrometheusMetricsServer(ctx context.Context, addr string) <-chan struct{} {
	h := http.NewServeMux()
	h.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: defaultTimeout,
		ReadTimeout:       defaultTimeout,
	}
	go func() {
		zap.S().Infof("Starting prometheus metrics server on '%s'", addr)
		err := s.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Errorf("Failed to start prometheus metrics server: %v", err)
		}
	}()
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorf("Failed to shutdown prometheus metrics server: %v", err)
		}
	}()
	return done
}

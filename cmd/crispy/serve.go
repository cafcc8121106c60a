package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-dev/crispy/internal/config"
	"github.com/vango-dev/crispy/internal/errors"
	"github.com/vango-dev/crispy/pkg/live"
	"github.com/vango-dev/crispy/pkg/metrics"
	"github.com/vango-dev/crispy/pkg/toast"
)

type serveOptions struct {
	configPath string
	position   string
	duration   int
	addr       string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live toast server",
		Long: `Run a live page showing toasts, with a JSON API to raise them.

Configuration is read from --config, or from crispy.json, crispy.yaml or
crispy.yml in the working directory. Flags override the file.

Examples:
  crispy serve
  crispy serve --position=top-right --duration=5000
  crispy serve --config=deploy/crispy.yaml --addr=0.0.0.0:8080

Raise a toast:
  curl -X POST localhost:4000/api/toasts -d '{"title":"Hi","message":"from curl"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: crispy.json/.yaml in the working directory)")
	cmd.Flags().StringVarP(&opts.position, "position", "p", "", "Toast position (default from config)")
	cmd.Flags().IntVarP(&opts.duration, "duration", "d", 0, "Toast duration in milliseconds (default from config)")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address host:port (default from config)")

	return cmd
}

// loadServeConfig loads the config file and applies flag overrides.
func loadServeConfig(cmd *cobra.Command, opts serveOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	if opts.position != "" {
		cfg.Position = opts.position
	}
	if cmd.Flags().Changed("duration") {
		cfg.Duration = opts.duration
	}
	if opts.addr != "" {
		host, port, err := net.SplitHostPort(opts.addr)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidPort).
				WithDetail("--addr must be host:port.").
				Wrap(err)
		}
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidPort).Wrap(err)
		}
		cfg.Server.Host = host
		cfg.Server.Port = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger := slog.Default()

	toastOpts := []toast.Option{
		toast.WithPosition(cfg.ToastPosition()),
		toast.WithDuration(cfg.ToastDuration()),
		toast.WithLogger(logger),
	}
	var liveOpts []live.Option
	liveOpts = append(liveOpts, live.WithLogger(logger))

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		toastOpts = append(toastOpts, toast.WithObserver(metrics.Prometheus(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRegistry(reg),
		)))
		liveOpts = append(liveOpts, live.WithMetrics(cfg.Metrics.Path, reg))
	}
	if cfg.Tracing.Enabled {
		liveOpts = append(liveOpts, live.WithTracing(cfg.Tracing.ServiceName))
	}

	t := toast.New(toastOpts...)
	defer t.Close()

	srv := live.New(t, liveOpts...)

	if cfg.Path() != "" {
		info(cmd, "config   %s", cfg.Path())
	}
	success(cmd, "Serving toasts at %s (%s)", cfg.URL(), cfg.Position)
	if cfg.Metrics.Enabled {
		info(cmd, "metrics  %s%s", cfg.URL(), cfg.Metrics.Path)
	}

	return srv.ListenAndServe(ctx, cfg.Address())
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/cloud-ru/finboard-go/internal/config"
	"github.com/cloud-ru/finboard-go/internal/listing"
	"github.com/cloud-ru/finboard-go/internal/logging"
	"github.com/cloud-ru/finboard-go/internal/server"
	"github.com/cloud-ru/finboard-go/internal/service"
	"github.com/cloud-ru/finboard-go/internal/tracing"
)

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the dashboard web server" }
func (*serveCmd) Usage() string {
	return `finboard serve [-port <port>]

  Serves the dashboard, the JSON API, health probes and metrics.
  Configuration is read from the environment and an optional .env file.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "Listen port. Defaults to PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.port != 0 {
		cfg.Port = c.port
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracing(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to initialize tracing")
		return subcommands.ExitFailure
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("Tracer shutdown error")
		}
	}()

	catalog := listing.NewCatalog(cfg.DataDir, log)
	if err := catalog.Load(ctx); err != nil {
		log.WithError(err).Error("Failed to load listings")
		return subcommands.ExitFailure
	}
	if err := catalog.StartReload(cfg.ReloadSchedule); err != nil {
		log.WithError(err).Error("Failed to schedule listing reload")
		return subcommands.ExitFailure
	}
	defer catalog.Stop()

	projections := service.NewProjectionService(cfg, tp.Tracer, log)
	srv, err := server.New(cfg, log, tp.Tracer, catalog, projections)
	if err != nil {
		log.WithError(err).Error("Failed to build server")
		return subcommands.ExitFailure
	}

	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Error("Server stopped with error")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

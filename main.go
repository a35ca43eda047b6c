package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ByLCY/acta/acta"
	"github.com/ByLCY/acta/config"
	"github.com/ByLCY/acta/layout"
	"github.com/ByLCY/acta/renderer"
	canvasrenderer "github.com/ByLCY/acta/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/acta/renderer/fpdf"
	"github.com/ByLCY/acta/server"
	"github.com/ByLCY/acta/sink"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	input := flag.String("in", "-", "record JSON file, - for stdin")
	flavor := flag.String("flavor", "handover", "flavor name (handover, return) or path to a .acta file")
	output := flag.String("out", "", "PDF output path (default: <ACTA_OUTPUT_DIR>/<document name>)")
	backend := flag.String("backend", cfg.Backend, "rendering backend: canvas or fpdf")
	debugPath := flag.String("debug", "", "write the layout display list as JSON to this path")
	toPrinter := flag.Bool("print", false, "send the document to ACTA_PRINT_COMMAND instead of a file")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of printing one record")
	addr := flag.String("addr", cfg.Addr(), "listen address for -serve")
	verbose := flag.Bool("v", cfg.Debug, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "acta"))
	slog.SetDefault(logger)

	cfg.Backend = *backend
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(2)
	}

	backends := map[string]renderer.Backend{
		config.BackendCanvas: canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Logger: logger}),
		config.BackendFPDF:   fpdfrenderer.NewRenderer(fpdfrenderer.Options{Compress: true, Logger: logger}),
	}
	opts := acta.Options{
		Geometry:        cfg.Geometry(),
		FooterCaption:   cfg.FooterCaption,
		HidePageNumbers: cfg.HidePageNums,
		Author:          cfg.Author,
		Logger:          logger,
	}

	if *serve {
		if err := runServer(*addr, cfg, backends, opts, logger); err != nil {
			logger.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	job := printJob{
		input:     *input,
		flavor:    *flavor,
		output:    *output,
		debugPath: *debugPath,
		print:     *toPrinter,
	}
	if err := run(context.Background(), job, cfg, backends[cfg.Backend], opts, logger); err != nil {
		logger.Error("acta failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type printJob struct {
	input, flavor, output, debugPath string
	print                            bool
}

// run chains decode, composition, rendering and delivery for one record.
func run(ctx context.Context, job printJob, cfg *config.Config, backend renderer.Backend, opts acta.Options, logger *slog.Logger) error {
	rec, err := readRecord(job.input)
	if err != nil {
		return err
	}
	fl, err := acta.ResolveFlavor(job.flavor)
	if err != nil {
		return fmt.Errorf("load flavor: %w", err)
	}

	var target sink.Sink = sink.FileSink{Dir: cfg.OutputDir}
	switch {
	case job.print:
		target = sink.NewCommandSink(cfg.PrintCommand, cfg.PrintArgs, logger)
	case job.output != "":
		dir, name := filepath.Split(job.output)
		target = sink.Func(func(ctx context.Context, doc sink.Document) (sink.Outcome, error) {
			doc.Name = name
			return sink.FileSink{Dir: dir}.Deliver(ctx, doc)
		})
	}

	printer, err := acta.NewPrinter(backend, target, opts)
	if err != nil {
		return err
	}
	if job.debugPath != "" {
		if err := writeDebug(printer.Composer(), rec, fl, job.debugPath); err != nil {
			return err
		}
	}
	out, err := printer.Print(ctx, rec, fl)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", out.Status, out.Location)
	return nil
}

func readRecord(path string) (acta.Record, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return acta.Record{}, fmt.Errorf("open record %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return acta.DecodeRecord(r)
}

func writeDebug(c *acta.Composer, rec acta.Record, fl *acta.Flavor, path string) error {
	res, err := c.Compose(rec, fl)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	if err := layout.WriteDebugJSON(res, path); err != nil {
		return fmt.Errorf("write debug JSON: %w", err)
	}
	return nil
}

func runServer(addr string, cfg *config.Config, backends map[string]renderer.Backend, opts acta.Options, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := server.Deps{
		Backends:       backends,
		DefaultBackend: cfg.Backend,
		Compose:        opts,
		Logger:         logger,
	}
	if cfg.HasStore() {
		client, err := sink.NewRedisClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Store = sink.RedisSink{Client: client, Prefix: cfg.RedisPrefix, TTL: cfg.RedisTTL}
		deps.Ready = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	srv, err := server.New(addr, deps)
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return srv.Shutdown(shutdownTimeout)
	}
}

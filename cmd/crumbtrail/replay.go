package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mrzor/crumbtrail/internal/attributes"
	"github.com/mrzor/crumbtrail/internal/breadcrumb"
	"github.com/mrzor/crumbtrail/internal/bridge"
	"github.com/mrzor/crumbtrail/internal/config"
	"github.com/mrzor/crumbtrail/internal/host"
	"github.com/mrzor/crumbtrail/internal/logging"
	"github.com/mrzor/crumbtrail/internal/metrics"
	"github.com/mrzor/crumbtrail/internal/otel"
	"github.com/mrzor/crumbtrail/internal/output"
	"github.com/mrzor/crumbtrail/internal/script"
)

type replayFlags struct {
	script         string
	output         string
	maxBreadcrumbs int
	attributes     []string
	drop           string
	traceID        string
	parentID       string
	logLevel       string
	logFormat      string
}

func newReplayCmd() *cobra.Command {
	var f replayFlags

	cmd := &cobra.Command{
		Use:   "replay --script FILE",
		Short: "Replay a host session and record its breadcrumbs",
		Example: `  crumbtrail replay --script session.yaml
  crumbtrail replay --script session.yaml --output both -a 'first=args[0]'
  crumbtrail replay --script session.yaml --drop 'event == "dom-ready"'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runReplay(ctx, cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.script, "script", "s", "", "YAML session to replay (required)")
	flags.StringVarP(&f.output, "output", "o", string(config.OutputJSON), "breadcrumb sink: json, otlp, both or none")
	flags.IntVar(&f.maxBreadcrumbs, "max-breadcrumbs", 0, "in-memory breadcrumb buffer size (default $CRUMBTRAIL_MAX_BREADCRUMBS)")
	flags.StringArrayVarP(&f.attributes, "attribute", "a", nil, "breadcrumb data as NAME=EXPR (repeatable)")
	flags.StringVar(&f.drop, "drop", "", "expression that suppresses the breadcrumb when true")
	flags.StringVar(&f.traceID, "trace-id", "", "trace ID for exported spans (32 hex chars, anything else is hashed)")
	flags.StringVar(&f.parentID, "parent-id", "", "parent span ID for the exported session span (16 hex chars)")
	flags.StringVar(&f.logLevel, "log-level", "", "log level (default $CRUMBTRAIL_LOG_LEVEL)")
	flags.StringVar(&f.logFormat, "log-format", "", "log format: text or json (default $CRUMBTRAIL_LOG_FORMAT)")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

// config merges flags over environment settings.
func (f *replayFlags) config(cmd *cobra.Command) (*config.Config, error) {
	settings, err := config.ParseSettings()
	if err != nil {
		return nil, err
	}

	out, err := config.ParseOutput(f.output)
	if err != nil {
		return nil, err
	}
	attrs, err := config.ParseAttributes(f.attributes)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		ScriptPath:       f.script,
		Output:           out,
		MaxBreadcrumbs:   settings.MaxBreadcrumbs,
		CustomAttributes: attrs,
		DropExpression:   f.drop,
		TraceID:          f.traceID,
		ParentID:         f.parentID,
		LogLevel:         settings.LogLevel,
		LogFormat:        settings.LogFormat,
	}
	if cmd.Flags().Changed("max-breadcrumbs") {
		cfg.MaxBreadcrumbs = f.maxBreadcrumbs
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runReplay(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	s, err := script.LoadFile(cfg.ScriptPath)
	if err != nil {
		return err
	}

	enricher, err := attributes.NewEvaluator(cfg.CustomAttributes, cfg.DropExpression, logger)
	if err != nil {
		return fmt.Errorf("failed to compile expressions: %w", err)
	}

	sessionID := uuid.NewString()
	logger = logger.With(slog.String("session_id", sessionID))
	logger.Info("Starting replay",
		"version", version,
		"script", cfg.ScriptPath,
		"steps", len(s.Steps),
		"output", string(cfg.Output))

	buffer := breadcrumb.NewBuffer(cfg.MaxBreadcrumbs)
	sinks := []breadcrumb.Recorder{buffer}
	if cfg.Output.WantsJSON() {
		sinks = append(sinks, output.NewJSONRecorder(cmd.OutOrStdout()))
	}
	if cfg.Output.WantsOTLP() {
		recorder, cleanup, err := setupOTEL(ctx, cfg, sessionID, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		sinks = append(sinks, recorder)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	hub := breadcrumb.NewHub(m.Recorder(breadcrumb.Multi(sinks...)))

	app := host.NewApp(host.NewLoop())
	b := bridge.New(hub,
		bridge.WithLogger(logger),
		bridge.WithEnricher(enricher))
	b.Install(app)

	player := script.NewPlayer(app, logger)
	if err := player.Play(ctx, s); err != nil {
		return fmt.Errorf("replay %s: %w", cfg.ScriptPath, err)
	}

	logSummary(logger, registry, buffer, app.Contents())
	return nil
}

// setupOTEL initializes the OTEL provider and returns a session recorder and
// cleanup function that ends the session and flushes spans.
func setupOTEL(ctx context.Context, cfg *config.Config, sessionID string, logger *slog.Logger) (*output.OTELRecorder, func(), error) {
	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse OTEL config: %w", err)
	}

	traceID, traceWarnings := attributes.ResolveTraceID(cfg.TraceID)
	parentID, parentWarnings := attributes.ResolveParentID(cfg.ParentID)
	if len(traceWarnings)+len(parentWarnings) > 0 {
		logger.Warn("Invalid trace context, see session span attributes",
			"trace_id", cfg.TraceID,
			"parent_id", cfg.ParentID)
	}

	tp, err := otel.InitProvider(ctx, otelCfg, otel.Options{
		SessionID: sessionID,
		Version:   fmt.Sprintf("%s (%s)", version, commit),
		TraceID:   traceID,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OTEL provider: %w", err)
	}

	sessionAttrs := []attribute.KeyValue{attribute.String("session.id", sessionID)}
	sessionAttrs = append(sessionAttrs, traceWarnings...)
	sessionAttrs = append(sessionAttrs, parentWarnings...)

	recorder := output.NewOTELRecorder(tp.Tracer("crumbtrail"), output.SessionOptions{
		Name:       "crumbtrail.replay",
		TraceID:    traceID,
		ParentID:   parentID,
		Attributes: sessionAttrs,
	})

	cleanup := func() {
		if err := recorder.Close(); err != nil {
			logger.Error("Error closing session span", "error", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otel.ShutdownProvider(shutdownCtx, tp); err != nil {
			logger.Error("Error shutting down OTEL provider", "error", err)
		}
	}

	return recorder, cleanup, nil
}

func logSummary(logger *slog.Logger, gatherer prometheus.Gatherer, buffer *breadcrumb.Buffer, live *host.Registry) {
	summary, err := metrics.Summary(gatherer)
	if err != nil {
		logger.Warn("Could not gather metrics", "error", err)
		return
	}

	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		logger.Debug("Counter", "series", k, "value", summary[k])
	}

	logger.Info("Replay finished",
		"recorded", buffer.Recorded(),
		"buffered", buffer.Len(),
		"live_contents", live.Len(),
		"live_contents_ids", live.IDs())
}

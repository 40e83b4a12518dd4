// Package app wires the periovox subsystems into a running charting session.
//
// The App owns the full lifecycle: New builds the normalizer, parser,
// suggester, debouncer and chart from config, Run executes the dictation
// intake loop (and the admin HTTP server when configured), and Shutdown
// tears everything down in order.
//
// For testing, inject doubles via functional options (WithInput, WithChart,
// WithMetrics). When an option is not provided, New creates real
// implementations from the config.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/periovox/periovox/internal/chart"
	"github.com/periovox/periovox/internal/config"
	"github.com/periovox/periovox/internal/dictation"
	"github.com/periovox/periovox/internal/observe"
)

// rapidShapeRe recognizes input that looks like rapid triplet entry. Used
// only to give the operator a precise hint when the rapid pass was skipped
// because no surface is active — the parse result itself stays a plain
// no-match.
var rapidShapeRe = regexp.MustCompile(`^\d{1,2} \d{1,2} \d{1,2}$`)

// App owns one charting session and its dictation pipeline.
type App struct {
	cfg *config.Config

	chart      *chart.Chart
	normalizer *dictation.Normalizer
	parser     *dictation.Parser
	suggester  *dictation.Suggester
	debouncer  *dictation.Debouncer
	metrics    *observe.Metrics

	in      io.Reader
	httpSrv *http.Server

	// handleMu serializes parses: updates are applied to the chart one at a
	// time, never concurrently for the same tooth.
	handleMu sync.Mutex

	// charted tracks teeth that already received a measurement, feeding the
	// teeth_charted gauge. Guarded by handleMu.
	charted map[int]bool

	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithInput reads dictation lines from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(a *App) { a.in = r }
}

// WithChart injects a prepared chart instead of creating one from config.
func WithChart(c *chart.Chart) Option {
	return func(a *App) { a.chart = c }
}

// WithMetrics injects a metrics instance instead of building one from the
// global meter provider.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// New creates an App by wiring all subsystems together from cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:     cfg,
		in:      os.Stdin,
		charted: make(map[int]bool),
	}
	for _, o := range opts {
		o(a)
	}

	var err error
	a.normalizer, err = dictation.NewNormalizer(dictation.WithSynonyms(cfg.Dictation.Synonyms))
	if err != nil {
		return nil, fmt.Errorf("app: build normalizer: %w", err)
	}
	a.parser = dictation.NewParser()

	if !cfg.Dictation.Suggestions.Disabled {
		var sopts []dictation.SuggesterOption
		if t := cfg.Dictation.Suggestions.PhoneticThreshold; t > 0 {
			sopts = append(sopts, dictation.WithPhoneticThreshold(t))
		}
		if t := cfg.Dictation.Suggestions.FuzzyThreshold; t > 0 {
			sopts = append(sopts, dictation.WithFuzzyThreshold(t))
		}
		a.suggester = dictation.NewSuggester(sopts...)
	}

	if a.chart == nil {
		a.chart, err = chart.New(cfg.Chart.MissingTeeth...)
		if err != nil {
			return nil, fmt.Errorf("app: build chart: %w", err)
		}
	}

	if a.metrics == nil {
		a.metrics, err = observe.NewMetrics(otel.GetMeterProvider())
		if err != nil {
			return nil, fmt.Errorf("app: build metrics: %w", err)
		}
	}

	a.debouncer = dictation.NewDebouncer(
		cfg.Dictation.Debounce(),
		cfg.Dictation.ClearDelay(),
		func(text string) bool { return a.HandleText(context.Background(), text) },
		func() { observe.Logger(context.Background()).Debug("dictation input cleared") },
	)

	if cfg.Server.ListenAddr != "" {
		a.httpSrv = a.buildServer(cfg.Server.ListenAddr)
	}

	return a, nil
}

// Chart exposes the session chart (for the admin endpoints and tests).
func (a *App) Chart() *chart.Chart {
	return a.chart
}

// Run executes the dictation intake loop until the input stream ends or ctx
// is cancelled. When an admin listen address is configured, the HTTP server
// runs alongside and is shut down with the context.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.httpSrv != nil {
		g.Go(func() error {
			observe.Logger(gctx).Info("admin server listening", "addr", a.httpSrv.Addr)
			if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("app: admin server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return a.httpSrv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer a.debouncer.Flush()

		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			line := scanner.Text()
			if line == "" {
				continue
			}
			a.debouncer.Update(line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("app: read dictation: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Shutdown stops the debouncer and the admin server. Safe to call more than
// once.
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	a.stopOnce.Do(func() {
		a.debouncer.Stop()
		if a.httpSrv != nil {
			err = a.httpSrv.Shutdown(ctx)
		}
	})
	return err
}

// HandleText interprets one stabilized dictation input and applies the
// result to the chart. It reports whether the command was understood and
// fully applied — the debouncer uses that to schedule the input clear.
//
// Unrecognized text is a soft condition: nothing is applied, and the
// operator gets either a targeted hint (rapid entry without an active
// surface) or a phonetic "did you mean" suggestion.
func (a *App) HandleText(ctx context.Context, text string) bool {
	a.handleMu.Lock()
	defer a.handleMu.Unlock()

	ctx, span := observe.StartSpan(ctx, "dictation.handle")
	defer span.End()
	log := observe.Logger(ctx)

	start := time.Now()
	normalized := a.normalizer.Normalize(text)
	active := a.chart.ActiveSurface()
	result := a.parser.Parse(normalized, active)
	a.metrics.ParseDuration.Record(ctx, time.Since(start).Seconds())

	if !result.Matched() {
		a.metrics.Commands.Add(ctx, 1, metric.WithAttributes(
			attribute.String("pass", "none"),
			attribute.String("status", "no_match"),
		))
		a.explainNoMatch(log, text, normalized, active.IsValid())
		return false
	}

	a.metrics.Commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pass", result.Pass),
		attribute.String("status", "matched"),
	))

	if result.Navigation != 0 {
		if err := a.chart.Navigate(result.Navigation); err != nil {
			log.Warn("navigation failed", "tooth", result.Navigation, "err", err)
			return false
		}
		log.Info("selected tooth", "tooth", result.Navigation)
	}

	if result.Context.IsValid() {
		if err := a.chart.SetActiveSurface(result.Context); err != nil {
			log.Warn("context update failed", "surface", result.Context, "err", err)
			return false
		}
		log.Info("active surface", "surface", result.Context)
	}

	if len(result.Updates) == 0 {
		return true
	}

	deriveStart := time.Now()
	err := a.chart.ApplyUpdates(result.Updates)
	a.metrics.DeriveDuration.Record(ctx, time.Since(deriveStart).Seconds())
	if err != nil {
		a.metrics.UpdateErrors.Add(ctx, 1)
		log.Warn("update rejected", "text", text, "err", err)
		return false
	}

	for _, u := range result.Updates {
		a.metrics.Updates.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", string(u.Kind)),
		))
	}

	tooth := a.chart.Current()
	if !a.charted[tooth] {
		a.charted[tooth] = true
		a.metrics.ChartedTeeth.Add(ctx, 1)
	}

	if rec, err := a.chart.Tooth(tooth); err == nil {
		log.Info("updates applied",
			"tooth", tooth,
			"updates", len(result.Updates),
			"pass", result.Pass,
			"risk_score", rec.RiskScore,
		)
	}
	return true
}

// explainNoMatch logs the most useful message for an input no pass
// understood.
func (a *App) explainNoMatch(log *slog.Logger, text, normalized string, surfaceActive bool) {
	if rapidShapeRe.MatchString(normalized) && !surfaceActive {
		log.Info("dictation not applied: rapid entry needs an active surface",
			"text", text,
			"hint", `dictate "buccal" or "lingual" first`,
		)
		return
	}
	if a.suggester != nil {
		if hint, ok := a.suggester.Suggest(normalized); ok {
			log.Info("dictation not understood", "text", text, "did_you_mean", hint)
			return
		}
	}
	log.Info("dictation not understood", "text", text)
}

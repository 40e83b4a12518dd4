package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/periovox/periovox/internal/config"
	"github.com/periovox/periovox/internal/observe"
	"github.com/periovox/periovox/pkg/perio"
)

// newTestApp builds an App with no admin server, no debounce delay and a
// noop meter provider.
func newTestApp(t *testing.T, cfg *config.Config, opts ...Option) *App {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.Dictation.DebounceMillis = -1
	cfg.Dictation.ClearDelayMillis = -1

	m, err := observe.NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	a, err := New(cfg, append([]Option{WithMetrics(m)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

// Full charting sequence on an empty record: select tooth 2 with buccal
// context, rapid-enter three pocket depths, then a mobility grade.
func TestApp_ChartingSequence(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, nil)
	ctx := context.Background()

	for _, text := range []string{"buccal 1 7", "3 4 5", "mob 2"} {
		if !a.HandleText(ctx, text) {
			t.Fatalf("HandleText(%q) = false", text)
		}
	}

	if got := a.Chart().Current(); got != 2 {
		t.Fatalf("Current = %d, want 2", got)
	}
	r, err := a.Chart().Tooth(2)
	if err != nil {
		t.Fatalf("Tooth(2): %v", err)
	}

	wantPD := map[perio.Site]int{
		perio.SiteDistoBuccal: 3,
		perio.SiteMidBuccal:   4,
		perio.SiteMesioBuccal: 5,
	}
	for site, want := range wantPD {
		if got := r.PocketDepth[site]; got != want {
			t.Errorf("PocketDepth[%s] = %d, want %d", site, got, want)
		}
	}
	if r.Mobility != 2 {
		t.Errorf("Mobility = %d, want 2", r.Mobility)
	}
	for site, want := range wantPD {
		if got := r.CAL[site]; got != want {
			t.Errorf("CAL[%s] = %d, want %d (no recession recorded)", site, got, want)
		}
	}
	// Mobility is the only contribution: 10·2.
	if r.RiskScore != 20 {
		t.Errorf("RiskScore = %d, want 20", r.RiskScore)
	}
}

func TestApp_RapidEntryBeforeSurfaceIsRejected(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, nil)
	ctx := context.Background()

	if !a.HandleText(ctx, "1 7") {
		t.Fatal("navigation failed")
	}
	if a.HandleText(ctx, "3 4 5") {
		t.Fatal("rapid entry applied without an active surface")
	}

	r, err := a.Chart().Tooth(2)
	if err != nil {
		t.Fatalf("Tooth(2): %v", err)
	}
	if len(r.PocketDepth) != 0 {
		t.Errorf("PocketDepth = %v, want empty", r.PocketDepth)
	}
}

func TestApp_MisheardDictationIsNormalized(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, nil)
	ctx := context.Background()

	for _, text := range []string{"buckle one seven", "set the pocket depths to 3,4,5"} {
		if !a.HandleText(ctx, text) {
			t.Fatalf("HandleText(%q) = false", text)
		}
	}

	r, err := a.Chart().Tooth(2)
	if err != nil {
		t.Fatalf("Tooth(2): %v", err)
	}
	if r.PocketDepth[perio.SiteMidBuccal] != 4 {
		t.Errorf("PocketDepth = %v", r.PocketDepth)
	}
}

func TestApp_UpdateWithoutSelectionIsRejected(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, nil)

	if a.HandleText(context.Background(), "mob 2") {
		t.Fatal("mobility update applied with no tooth selected")
	}
}

func TestApp_GibberishDoesNotClear(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, nil)

	if a.HandleText(context.Background(), "open the window") {
		t.Fatal("unparseable text reported as handled")
	}
}

func TestApp_ConfigSynonymsAndMissingTeeth(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Dictation.Synonyms = map[string]string{"probing": "pd"}
	cfg.Chart.MissingTeeth = []int{2}

	a := newTestApp(t, cfg)
	ctx := context.Background()

	if !a.HandleText(ctx, "1 7") {
		t.Fatal("navigation failed")
	}
	if !a.HandleText(ctx, "buccal probing 6 6 6") {
		t.Fatal("configured synonym not applied")
	}

	r, err := a.Chart().Tooth(2)
	if err != nil {
		t.Fatalf("Tooth(2): %v", err)
	}
	// Raw values land even on a missing tooth, but nothing derives.
	if r.PocketDepth[perio.SiteMidBuccal] != 6 {
		t.Errorf("PocketDepth = %v", r.PocketDepth)
	}
	if r.CAL != nil || r.RiskScore != 0 {
		t.Errorf("missing tooth derived CAL=%v risk=%d", r.CAL, r.RiskScore)
	}
}

func TestApp_NewRejectsBadSynonyms(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Dictation.Synonyms = map[string]string{"probe": "pocketdepth"}

	if _, err := New(cfg); err == nil {
		t.Fatal("New accepted an invalid synonym table")
	}
}

// Run consumes the whole input stream, flushing the pending parse at EOF.
func TestApp_RunProcessesInputStream(t *testing.T) {
	t.Parallel()

	input := strings.NewReader("buccal 1 7\n\n3 4 5\nmob 2\n")
	a := newTestApp(t, nil, WithInput(input))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	r, err := a.Chart().Tooth(2)
	if err != nil {
		t.Fatalf("Tooth(2): %v", err)
	}
	if r.RiskScore != 20 {
		t.Errorf("RiskScore = %d, want 20", r.RiskScore)
	}
}

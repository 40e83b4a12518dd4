package dictation

import (
	"reflect"
	"testing"

	"github.com/periovox/periovox/pkg/perio"
)

func TestParser_Navigation(t *testing.T) {
	t.Parallel()

	p := NewParser()
	tests := []struct {
		in   string
		want int
	}{
		{"1 7", 2},
		{"2 5", 13},
		{"3 4", 28},
		{"3 8", 32},
		{"4 1", 24},
		{"1 1", 8},
	}
	for _, tc := range tests {
		for _, active := range []perio.Surface{perio.SurfaceNone, perio.SurfaceBuccal, perio.SurfaceLingual} {
			got := p.Parse(tc.in, active)
			if got.Navigation != tc.want {
				t.Errorf("Parse(%q, %q).Navigation = %d, want %d", tc.in, active, got.Navigation, tc.want)
			}
			if len(got.Updates) != 0 {
				t.Errorf("Parse(%q, %q) produced %d updates, want 0", tc.in, active, len(got.Updates))
			}
			if got.Context != perio.SurfaceNone {
				t.Errorf("Parse(%q, %q).Context = %q, want none", tc.in, active, got.Context)
			}
		}
	}
}

func TestParser_NavigationWithSurface(t *testing.T) {
	t.Parallel()

	p := NewParser()
	got := p.Parse("buccal 1 7", perio.SurfaceLingual)

	if got.Navigation != 2 {
		t.Errorf("Navigation = %d, want 2", got.Navigation)
	}
	if got.Context != perio.SurfaceBuccal {
		t.Errorf("Context = %q, want buccal", got.Context)
	}
	if len(got.Updates) != 0 {
		t.Errorf("Updates = %v, want none", got.Updates)
	}
	if got.Pass != "navigation" {
		t.Errorf("Pass = %q, want navigation", got.Pass)
	}
}

// Pass priority: "buccal 1 7" contains a surface word and three tokens, but
// it must match the navigation pass, never rapid entry or the full command.
func TestParser_PassPriority(t *testing.T) {
	t.Parallel()

	p := NewParser()
	got := p.Parse("buccal 1 7", perio.SurfaceBuccal)
	if got.Pass != "navigation" {
		t.Fatalf("Pass = %q, want navigation", got.Pass)
	}
	if len(got.Updates) != 0 {
		t.Fatalf("navigation parse produced updates: %v", got.Updates)
	}
}

func TestParser_RapidRequiresContext(t *testing.T) {
	t.Parallel()

	p := NewParser()

	if got := p.Parse("3 4 5", perio.SurfaceNone); got.Matched() {
		t.Fatalf("Parse(\"3 4 5\", none) matched: %+v", got)
	}

	got := p.Parse("3 4 5", perio.SurfaceBuccal)
	want := []Update{
		{Kind: perio.KindPocketDepth, Site: perio.SiteDistoBuccal, Value: 3},
		{Kind: perio.KindPocketDepth, Site: perio.SiteMidBuccal, Value: 4},
		{Kind: perio.KindPocketDepth, Site: perio.SiteMesioBuccal, Value: 5},
	}
	if !reflect.DeepEqual(got.Updates, want) {
		t.Errorf("Updates = %+v, want %+v", got.Updates, want)
	}
	if got.Navigation != 0 || got.Context != perio.SurfaceNone {
		t.Errorf("rapid entry must only produce updates, got %+v", got)
	}
	if got.Pass != "rapid" {
		t.Errorf("Pass = %q, want rapid", got.Pass)
	}
}

func TestParser_RapidTwoDigitValues(t *testing.T) {
	t.Parallel()

	p := NewParser()
	got := p.Parse("10 11 12", perio.SurfaceLingual)
	want := []Update{
		{Kind: perio.KindPocketDepth, Site: perio.SiteDistoLingual, Value: 10},
		{Kind: perio.KindPocketDepth, Site: perio.SiteMidLingual, Value: 11},
		{Kind: perio.KindPocketDepth, Site: perio.SiteMesioLingual, Value: 12},
	}
	if !reflect.DeepEqual(got.Updates, want) {
		t.Errorf("Updates = %+v, want %+v", got.Updates, want)
	}
}

func TestParser_FullCommandSetsContext(t *testing.T) {
	t.Parallel()

	p := NewParser()
	for _, active := range []perio.Surface{perio.SurfaceNone, perio.SurfaceBuccal, perio.SurfaceLingual} {
		got := p.Parse("lingual rec 2 3 2", active)
		want := []Update{
			{Kind: perio.KindRecession, Site: perio.SiteDistoLingual, Value: 2},
			{Kind: perio.KindRecession, Site: perio.SiteMidLingual, Value: 3},
			{Kind: perio.KindRecession, Site: perio.SiteMesioLingual, Value: 2},
		}
		if !reflect.DeepEqual(got.Updates, want) {
			t.Errorf("active=%q: Updates = %+v, want %+v", active, got.Updates, want)
		}
		if got.Context != perio.SurfaceLingual {
			t.Errorf("active=%q: Context = %q, want lingual", active, got.Context)
		}
	}

	got := p.Parse("buccal pd 3 4 5", perio.SurfaceNone)
	if got.Pass != "full" || got.Context != perio.SurfaceBuccal || len(got.Updates) != 3 {
		t.Errorf("full pd parse = %+v", got)
	}
	if got.Updates[0].Kind != perio.KindPocketDepth {
		t.Errorf("Kind = %q, want pocket_depth", got.Updates[0].Kind)
	}
}

func TestParser_Mobility(t *testing.T) {
	t.Parallel()

	p := NewParser()
	got := p.Parse("mob 2", perio.SurfaceNone)
	want := []Update{{Kind: perio.KindMobility, Value: 2}}
	if !reflect.DeepEqual(got.Updates, want) {
		t.Errorf("Updates = %+v, want %+v", got.Updates, want)
	}
	if got.Updates[0].Site != "" {
		t.Errorf("mobility update is whole-tooth, got site %q", got.Updates[0].Site)
	}

	if got := p.Parse("mob 4", perio.SurfaceNone); got.Matched() {
		t.Errorf("Parse(\"mob 4\") matched: %+v", got)
	}
}

func TestParser_SurfaceContextOnly(t *testing.T) {
	t.Parallel()

	p := NewParser()
	got := p.Parse("lingual", perio.SurfaceBuccal)
	if got.Context != perio.SurfaceLingual || got.Navigation != 0 || len(got.Updates) != 0 {
		t.Errorf("Parse(\"lingual\") = %+v", got)
	}
	if got.Pass != "surface" {
		t.Errorf("Pass = %q, want surface", got.Pass)
	}
}

func TestParser_NoMatch(t *testing.T) {
	t.Parallel()

	p := NewParser()
	inputs := []string{
		"",
		"hello there",
		"5 7",     // quadrant out of range
		"1 9",     // tooth-in-quadrant out of range
		"3 4 5 6", // four numbers match nothing
		"buccal pd 3 4", // full command needs three values
	}
	for _, in := range inputs {
		got := p.Parse(in, perio.SurfaceNone)
		if got.Matched() {
			t.Errorf("Parse(%q, none) matched: %+v", in, got)
		}
		if got.Pass != "" {
			t.Errorf("Parse(%q, none).Pass = %q, want empty", in, got.Pass)
		}
	}
}

// Synonym equivalence: idioms that normalize to the same command must parse
// identically.
func TestParser_SynonymEquivalence(t *testing.T) {
	t.Parallel()

	n := MustNewNormalizer()
	p := NewParser()

	pairs := [][2]string{
		{"buckle 1 7", "buccal 1 7"},
		{"b one seven", "buccal 1 7"},
		{"pal rec two three two", "lingual rec 2 3 2"},
		{"set the bed to 3,4,5", "pd 3 4 5"},
	}
	for _, pair := range pairs {
		for _, active := range []perio.Surface{perio.SurfaceNone, perio.SurfaceBuccal, perio.SurfaceLingual} {
			a := p.Parse(n.Normalize(pair[0]), active)
			b := p.Parse(n.Normalize(pair[1]), active)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("active=%q: parse(%q) = %+v, parse(%q) = %+v", active, pair[0], a, pair[1], b)
			}
		}
	}
}

package dictation

import (
	"regexp"
	"strconv"

	"github.com/periovox/periovox/pkg/perio"
)

// Update is one structured measurement update produced by a parse.
// Site is set for per-site kinds, Surface for per-surface kinds (furcation);
// whole-tooth kinds (mobility) leave both empty. Boolean kinds carry 0/1 in
// Value.
type Update struct {
	Kind    perio.Kind
	Site    perio.Site
	Surface perio.Surface
	Value   int
}

// ParseResult is the structured interpretation of one dictated command.
//
// By construction Navigation and Updates are never both populated: the
// navigation pass produces no updates and short-circuits every pass that
// does. Context may accompany Navigation (e.g. "buccal 1 7").
type ParseResult struct {
	// Updates are the measurement updates to apply to the selected tooth.
	Updates []Update

	// Navigation is the Universal tooth number to select, or 0 when the
	// command does not navigate.
	Navigation int

	// Context is the new active surface, or [perio.SurfaceNone] when the
	// command leaves the session context unchanged.
	Context perio.Surface

	// Pass is the name of the pass that matched, for logging and metrics.
	// Empty when the command was not understood.
	Pass string
}

// Matched reports whether any pass understood the command. A false result
// means the caller must take no data action (never guess).
func (r ParseResult) Matched() bool {
	return len(r.Updates) > 0 || r.Navigation != 0 || r.Context != perio.SurfaceNone
}

// pass pairs a compiled anchored pattern with the handler that builds the
// result from its submatches. A handler may reject a syntactic match (ok
// false) to let later passes run — the rapid-entry pass does this when no
// surface is active.
type pass struct {
	name    string
	re      *regexp.Regexp
	handler func(matches []string, active perio.Surface) (ParseResult, bool)
}

// Parser interprets normalized dictation commands.
//
// Passes are tried strictly in order and the first one that matches
// short-circuits all later passes. The ordering is the core design decision:
// later, broader patterns (rapid triplet) would otherwise misfire on text
// meant for an earlier, narrower one (navigation).
//
// Parse is pure apart from reading the active-surface snapshot it is given;
// a context change is returned in the result, never written anywhere. A
// Parser is read-only after construction and safe for concurrent use.
type Parser struct {
	passes []pass
}

// NewParser returns a Parser with the fixed pass order:
// navigation, rapid triplet, full command, mobility, surface-context-only.
func NewParser() *Parser {
	return &Parser{passes: []pass{
		{
			// "buccal 1 7", "2 5" — quadrant 1–4 and tooth-in-quadrant 1–8.
			// Digits outside those ranges are non-matches, not errors; they
			// fall through to the later passes.
			name: "navigation",
			re:   regexp.MustCompile(`^(?:(buccal|lingual) )?([1-4]) ([1-8])$`),
			handler: func(m []string, _ perio.Surface) (ParseResult, bool) {
				id, ok := perio.UniversalTooth(atoi(m[2]), atoi(m[3]))
				if !ok {
					return ParseResult{}, false
				}
				return ParseResult{
					Navigation: id,
					Context:    perio.Surface(m[1]),
				}, true
			},
		},
		{
			// "3 4 5" — three pocket depths on the active surface, in the
			// fixed clinical order distal, mid, mesial. Requires a surface
			// to have been dictated earlier in the session.
			name: "rapid",
			re:   regexp.MustCompile(`^(\d{1,2}) (\d{1,2}) (\d{1,2})$`),
			handler: func(m []string, active perio.Surface) (ParseResult, bool) {
				if !active.IsValid() {
					return ParseResult{}, false
				}
				return ParseResult{
					Updates: siteTriplet(perio.KindPocketDepth, active, m[1:4]),
				}, true
			},
		},
		{
			// "buccal pd 3 4 5", "lingual rec 2 3 2" — names both the
			// surface and the kind, and sets the active surface as a side
			// effect (unlike rapid entry, which only consumes it).
			name: "full",
			re:   regexp.MustCompile(`^(buccal|lingual) (pd|rec) (\d{1,2}) (\d{1,2}) (\d{1,2})$`),
			handler: func(m []string, _ perio.Surface) (ParseResult, bool) {
				kind := perio.KindPocketDepth
				if m[2] == "rec" {
					kind = perio.KindRecession
				}
				surface := perio.Surface(m[1])
				return ParseResult{
					Updates: siteTriplet(kind, surface, m[3:6]),
					Context: surface,
				}, true
			},
		},
		{
			// "mob 2" — whole-tooth mobility grade.
			name: "mobility",
			re:   regexp.MustCompile(`^mob ([0-3])$`),
			handler: func(m []string, _ perio.Surface) (ParseResult, bool) {
				return ParseResult{
					Updates: []Update{{Kind: perio.KindMobility, Value: atoi(m[1])}},
				}, true
			},
		},
		{
			// "buccal" / "lingual" alone — context change only.
			name: "surface",
			re:   regexp.MustCompile(`^(buccal|lingual)$`),
			handler: func(m []string, _ perio.Surface) (ParseResult, bool) {
				return ParseResult{Context: perio.Surface(m[1])}, true
			},
		},
	}}
}

// Parse interprets a normalized command against the given active-surface
// snapshot. When no pass matches it returns the zero ParseResult ("not
// understood"), never an error: unrecognized dictation is a soft condition,
// not a failure.
func (p *Parser) Parse(normalized string, active perio.Surface) ParseResult {
	if normalized == "" {
		return ParseResult{}
	}

	for _, ps := range p.passes {
		matches := ps.re.FindStringSubmatch(normalized)
		if matches == nil {
			continue
		}
		result, ok := ps.handler(matches, active)
		if !ok {
			continue
		}
		result.Pass = ps.name
		return result
	}

	return ParseResult{}
}

// siteTriplet builds three updates of kind at the sites of surface, pairing
// values with the distal, mid, mesial probing order.
func siteTriplet(kind perio.Kind, surface perio.Surface, values []string) []Update {
	sites := perio.SurfaceSites(surface)
	updates := make([]Update, len(sites))
	for i, site := range sites {
		updates[i] = Update{Kind: kind, Site: site, Value: atoi(values[i])}
	}
	return updates
}

// atoi converts a regex-validated digit group. The patterns guarantee the
// input is a short decimal number, so the error path is unreachable.
func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

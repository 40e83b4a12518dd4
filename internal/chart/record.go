// Package chart holds the in-session periodontal chart: one ToothRecord per
// Universal tooth number, the session context (active probing surface), and
// the derived-measurement calculator that recomputes Clinical Attachment
// Loss and the composite risk score after every applied update.
//
// The chart is the data-update layer sitting behind the dictation
// interpreter: the caller applies a ParseResult's navigation, context change
// and measurement updates here, and the chart keeps every tooth's derived
// fields consistent with its raw measurements. Records live for the whole
// charting session; missing teeth are flagged, never removed.
package chart

import (
	"fmt"

	"github.com/periovox/periovox/internal/dictation"
	"github.com/periovox/periovox/pkg/perio"
)

// Clinical value ranges enforced when an update is applied. The parser is a
// syntax-level matcher and does not validate ranges; this boundary does.
const (
	MaxDepthMM = 15 // pocket depth and recession, millimeters
	MaxGrade   = 3  // mobility and furcation grades
)

// ToothRecord holds the raw measurements and derived fields of one tooth.
//
// CAL and RiskScore are derived: they are written only by [Derive] via
// [ToothRecord.Recompute], never by the dictation interpreter, and are a
// pure function of the other fields. When Missing is true, CAL is nil and
// RiskScore is 0 regardless of any recorded measurements.
type ToothRecord struct {
	// Number is the Universal tooth number, 1–32.
	Number int `json:"number"`

	// Missing flags a tooth that is absent from the mouth. Missing teeth
	// keep their record (and any previously recorded raw values) but derive
	// nothing.
	Missing bool `json:"missing"`

	PocketDepth map[perio.Site]int  `json:"pocket_depth,omitempty"`
	Recession   map[perio.Site]int  `json:"recession,omitempty"`
	Bleeding    map[perio.Site]bool `json:"bleeding,omitempty"`
	Plaque      map[perio.Site]bool `json:"plaque,omitempty"`

	// Mobility is the whole-tooth mobility grade 0–3.
	Mobility int `json:"mobility"`

	// Furcation maps the buccal/lingual side to its involvement grade 0–3.
	// Only meaningful on multi-rooted teeth; the chart does not police which
	// teeth are molars.
	Furcation map[perio.Surface]int `json:"furcation,omitempty"`

	// CAL is the derived Clinical Attachment Loss per site.
	CAL map[perio.Site]int `json:"cal,omitempty"`

	// RiskScore is the derived composite risk score, never negative.
	RiskScore int `json:"risk_score"`
}

// NewToothRecord returns an empty record for the given Universal number with
// derived fields already consistent (all-zero CAL, zero risk).
func NewToothRecord(number int) *ToothRecord {
	r := &ToothRecord{
		Number:      number,
		PocketDepth: make(map[perio.Site]int),
		Recession:   make(map[perio.Site]int),
		Bleeding:    make(map[perio.Site]bool),
		Plaque:      make(map[perio.Site]bool),
		Furcation:   make(map[perio.Surface]int),
	}
	r.Recompute()
	return r
}

// ApplyUpdate writes one measurement update into the record's raw fields.
// It validates the clinical range for the kind (pocket depth and recession
// 0–15 mm, grades 0–3, booleans 0/1) and rejects out-of-range values with an
// error; the record is unchanged on error. Derived fields are not touched —
// callers recompute once per batch via [ToothRecord.Recompute].
func (r *ToothRecord) ApplyUpdate(u dictation.Update) error {
	switch u.Kind {
	case perio.KindPocketDepth, perio.KindRecession:
		if u.Value < 0 || u.Value > MaxDepthMM {
			return fmt.Errorf("chart: %s %dmm out of range 0–%d", u.Kind, u.Value, MaxDepthMM)
		}
		if err := validSite(u.Site); err != nil {
			return err
		}
		if u.Kind == perio.KindPocketDepth {
			r.PocketDepth[u.Site] = u.Value
		} else {
			r.Recession[u.Site] = u.Value
		}

	case perio.KindBleeding, perio.KindPlaque:
		if u.Value != 0 && u.Value != 1 {
			return fmt.Errorf("chart: %s value %d is not a boolean 0/1", u.Kind, u.Value)
		}
		if err := validSite(u.Site); err != nil {
			return err
		}
		if u.Kind == perio.KindBleeding {
			r.Bleeding[u.Site] = u.Value == 1
		} else {
			r.Plaque[u.Site] = u.Value == 1
		}

	case perio.KindMobility:
		if u.Value < 0 || u.Value > MaxGrade {
			return fmt.Errorf("chart: mobility grade %d out of range 0–%d", u.Value, MaxGrade)
		}
		r.Mobility = u.Value

	case perio.KindFurcation:
		if u.Value < 0 || u.Value > MaxGrade {
			return fmt.Errorf("chart: furcation grade %d out of range 0–%d", u.Value, MaxGrade)
		}
		if !u.Surface.IsValid() {
			return fmt.Errorf("chart: furcation needs a buccal/lingual side, got %q", u.Surface)
		}
		r.Furcation[u.Surface] = u.Value

	default:
		return fmt.Errorf("chart: unknown measurement kind %q", u.Kind)
	}

	return nil
}

// Clone returns a deep copy of the record. Snapshots handed out by the chart
// must not alias the live maps.
func (r *ToothRecord) Clone() *ToothRecord {
	c := *r
	c.PocketDepth = cloneMap(r.PocketDepth)
	c.Recession = cloneMap(r.Recession)
	c.Bleeding = cloneMap(r.Bleeding)
	c.Plaque = cloneMap(r.Plaque)
	c.Furcation = cloneMap(r.Furcation)
	c.CAL = cloneMap(r.CAL)
	return &c
}

// validSite checks that site is one of the six fixed anatomical sites.
func validSite(site perio.Site) error {
	for _, s := range perio.Sites {
		if site == s {
			return nil
		}
	}
	return fmt.Errorf("chart: unknown site %q", site)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

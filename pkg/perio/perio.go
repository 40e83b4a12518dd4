// Package perio defines the shared measurement-location vocabulary used
// across all periovox packages.
//
// These types form the lingua franca between the dictation interpreter and
// the charting layer. They are intentionally minimal — each package defines
// its own domain types, but the anatomical vocabulary lives here to avoid
// circular imports and to keep the site spelling in exactly one place.
package perio

// Surface is a probing surface of a tooth.
type Surface string

const (
	// SurfaceNone is the zero value: no surface selected or implied.
	SurfaceNone Surface = ""

	// SurfaceBuccal is the cheek-facing surface.
	SurfaceBuccal Surface = "buccal"

	// SurfaceLingual is the tongue-facing surface. Palatal dictation is
	// normalized to lingual before it reaches this type.
	SurfaceLingual Surface = "lingual"
)

// IsValid reports whether s is a concrete probing surface (not SurfaceNone).
func (s Surface) IsValid() bool {
	return s == SurfaceBuccal || s == SurfaceLingual
}

// Site is one of the six fixed anatomical probing sites of a tooth.
// The exact spellings are an external contract — they are used as mapping
// keys by every consumer of charting data.
type Site string

const (
	SiteDistoBuccal  Site = "disto_buccal"
	SiteMidBuccal    Site = "mid_buccal"
	SiteMesioBuccal  Site = "mesio_buccal"
	SiteDistoLingual Site = "disto_lingual"
	SiteMidLingual   Site = "mid_lingual"
	SiteMesioLingual Site = "mesio_lingual"
)

// Sites lists all six sites in the canonical order: buccal before lingual,
// and within a surface distal, mid, mesial (the clinical probing order,
// not alphabetical).
var Sites = []Site{
	SiteDistoBuccal, SiteMidBuccal, SiteMesioBuccal,
	SiteDistoLingual, SiteMidLingual, SiteMesioLingual,
}

// SurfaceSites returns the three sites of surface in distal, mid, mesial
// order. Returns nil when surface is not a concrete surface.
func SurfaceSites(surface Surface) []Site {
	switch surface {
	case SurfaceBuccal:
		return []Site{SiteDistoBuccal, SiteMidBuccal, SiteMesioBuccal}
	case SurfaceLingual:
		return []Site{SiteDistoLingual, SiteMidLingual, SiteMesioLingual}
	}
	return nil
}

// Kind identifies a measurement recorded during periodontal charting.
type Kind string

const (
	// KindPocketDepth is the probing pocket depth in millimeters, per site.
	KindPocketDepth Kind = "pocket_depth"

	// KindRecession is the gingival recession in millimeters, per site.
	KindRecession Kind = "recession"

	// KindBleeding is bleeding on probing, per site.
	KindBleeding Kind = "bleeding"

	// KindPlaque is plaque presence, per site.
	KindPlaque Kind = "plaque"

	// KindMobility is the whole-tooth mobility grade 0–3.
	KindMobility Kind = "mobility"

	// KindFurcation is the furcation involvement grade 0–3, recorded per
	// buccal/lingual side on multi-rooted teeth.
	KindFurcation Kind = "furcation"
)

// ToothCount is the number of teeth in the Universal numbering system.
const ToothCount = 32

// UniversalTooth converts a dictated quadrant (1–4) and tooth-in-quadrant
// (1–8) to the Universal tooth number 1–32 used by the rest of the system.
//
// The mapping is a fixed external contract:
//
//	quadrant 1 → 9−n    quadrant 2 → 8+n
//	quadrant 3 → 24+n   quadrant 4 → 25−n
//
// Returns ok=false when quadrant or n is out of range.
func UniversalTooth(quadrant, n int) (id int, ok bool) {
	if n < 1 || n > 8 {
		return 0, false
	}
	switch quadrant {
	case 1:
		return 9 - n, true
	case 2:
		return 8 + n, true
	case 3:
		return 24 + n, true
	case 4:
		return 25 - n, true
	}
	return 0, false
}

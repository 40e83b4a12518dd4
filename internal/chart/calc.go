package chart

import "github.com/periovox/periovox/pkg/perio"

// Risk model weights and thresholds. Pocket depths above 5 mm, recession
// above 2 mm and attachment loss above 5 mm each contribute their excess
// millimeters; bleeding sites, mobility grades and furcation grades carry
// fixed weights.
const (
	pocketDepthRiskThreshold = 5
	recessionRiskThreshold   = 2
	calRiskThreshold         = 5

	bleedingRiskWeight  = 2
	mobilityRiskWeight  = 10
	furcationRiskWeight = 8
)

// Derive computes the two derived fields of a tooth from its raw
// measurements: the per-site Clinical Attachment Loss map and the composite
// risk score.
//
// For each of the six sites, CAL is pocket depth plus recession (absent
// values default to 0, so an unmeasured tooth derives an all-zero CAL map).
// The risk score sums, per site,
//
//	max(0, pd−5) + max(0, rec−2) + max(0, cal−5) + 2·bleeding
//
// plus the whole-tooth terms 10·mobility + 8·furcation[buccal] +
// 8·furcation[lingual].
//
// A missing tooth derives nothing: cal is nil and risk is 0 regardless of
// the raw fields. Derive never fails and never mutates r.
func Derive(r *ToothRecord) (cal map[perio.Site]int, risk int) {
	if r.Missing {
		return nil, 0
	}

	cal = make(map[perio.Site]int, len(perio.Sites))
	for _, site := range perio.Sites {
		pd := r.PocketDepth[site]
		rec := r.Recession[site]
		cal[site] = pd + rec

		risk += excess(pd, pocketDepthRiskThreshold)
		risk += excess(rec, recessionRiskThreshold)
		risk += excess(cal[site], calRiskThreshold)
		if r.Bleeding[site] {
			risk += bleedingRiskWeight
		}
	}

	risk += mobilityRiskWeight * r.Mobility
	risk += furcationRiskWeight * r.Furcation[perio.SurfaceBuccal]
	risk += furcationRiskWeight * r.Furcation[perio.SurfaceLingual]

	return cal, risk
}

// Recompute refreshes the record's derived fields from its raw measurements.
// Must be called after any raw field changes; no other field is touched.
func (r *ToothRecord) Recompute() {
	r.CAL, r.RiskScore = Derive(r)
}

// excess returns how far v exceeds threshold, or 0.
func excess(v, threshold int) int {
	if v > threshold {
		return v - threshold
	}
	return 0
}

package perio

import "testing"

func TestUniversalTooth_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quadrant, n int
		want        int
	}{
		// Quadrant 1: 9−n.
		{1, 1, 8}, {1, 7, 2}, {1, 8, 1},
		// Quadrant 2: 8+n.
		{2, 1, 9}, {2, 5, 13}, {2, 8, 16},
		// Quadrant 3: 24+n.
		{3, 1, 25}, {3, 8, 32},
		// Quadrant 4: 25−n.
		{4, 1, 24}, {4, 8, 17},
	}

	for _, tc := range tests {
		got, ok := UniversalTooth(tc.quadrant, tc.n)
		if !ok {
			t.Errorf("UniversalTooth(%d, %d): unexpectedly not ok", tc.quadrant, tc.n)
			continue
		}
		if got != tc.want {
			t.Errorf("UniversalTooth(%d, %d) = %d, want %d", tc.quadrant, tc.n, got, tc.want)
		}
	}
}

func TestUniversalTooth_CoversAllTeethExactlyOnce(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool, ToothCount)
	for q := 1; q <= 4; q++ {
		for n := 1; n <= 8; n++ {
			id, ok := UniversalTooth(q, n)
			if !ok {
				t.Fatalf("UniversalTooth(%d, %d): not ok", q, n)
			}
			if id < 1 || id > ToothCount {
				t.Fatalf("UniversalTooth(%d, %d) = %d, out of 1–%d", q, n, id, ToothCount)
			}
			if seen[id] {
				t.Fatalf("tooth %d produced twice", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != ToothCount {
		t.Fatalf("mapping covered %d teeth, want %d", len(seen), ToothCount)
	}
}

func TestUniversalTooth_OutOfRange(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]int{{0, 1}, {5, 1}, {1, 0}, {1, 9}, {-1, 3}, {2, 12}} {
		if _, ok := UniversalTooth(tc[0], tc[1]); ok {
			t.Errorf("UniversalTooth(%d, %d): expected not ok", tc[0], tc[1])
		}
	}
}

func TestSurfaceSites_Order(t *testing.T) {
	t.Parallel()

	buccal := SurfaceSites(SurfaceBuccal)
	want := []Site{SiteDistoBuccal, SiteMidBuccal, SiteMesioBuccal}
	if len(buccal) != len(want) {
		t.Fatalf("SurfaceSites(buccal) returned %d sites, want %d", len(buccal), len(want))
	}
	for i := range want {
		if buccal[i] != want[i] {
			t.Errorf("SurfaceSites(buccal)[%d] = %q, want %q", i, buccal[i], want[i])
		}
	}

	if got := SurfaceSites(SurfaceNone); got != nil {
		t.Errorf("SurfaceSites(none) = %v, want nil", got)
	}
}

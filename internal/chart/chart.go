package chart

import (
	"fmt"
	"sort"
	"sync"

	"github.com/periovox/periovox/internal/dictation"
	"github.com/periovox/periovox/pkg/perio"
)

// Chart is one charting session: all 32 tooth records, the currently
// selected tooth, and the session context (active probing surface) that the
// parser reads as a snapshot.
//
// Records are created once at session start and never deleted — a missing
// tooth is flagged, not removed. Updates are applied one at a time by the
// caller, and the affected tooth's derived fields are recomputed
// synchronously after every batch.
//
// All methods are safe for concurrent use; the admin HTTP surface reads
// snapshots while the dictation loop writes.
type Chart struct {
	mu      sync.RWMutex
	teeth   map[int]*ToothRecord
	current int
	active  perio.Surface
}

// New creates a chart with one empty record per Universal tooth number.
// Teeth listed in missing are flagged before the session starts.
func New(missing ...int) (*Chart, error) {
	c := &Chart{teeth: make(map[int]*ToothRecord, perio.ToothCount)}
	for id := 1; id <= perio.ToothCount; id++ {
		c.teeth[id] = NewToothRecord(id)
	}
	for _, id := range missing {
		if err := c.SetMissing(id, true); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Navigate selects the tooth subsequent updates apply to.
func (c *Chart) Navigate(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.teeth[id]; !ok {
		return fmt.Errorf("chart: no tooth %d", id)
	}
	c.current = id
	return nil
}

// Current returns the selected Universal tooth number, or 0 when no tooth
// has been navigated to yet.
func (c *Chart) Current() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// ActiveSurface returns the session's active probing surface snapshot for
// the parser. SurfaceNone until a command has set one.
func (c *Chart) ActiveSurface() perio.Surface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// SetActiveSurface stores a context update returned by the parser.
func (c *Chart) SetActiveSurface(s perio.Surface) error {
	if !s.IsValid() {
		return fmt.Errorf("chart: invalid active surface %q", s)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = s
	return nil
}

// ApplyUpdates writes a parse result's measurement updates to the selected
// tooth and recomputes its derived fields once.
//
// The batch stops at the first invalid update: everything before it is
// applied, nothing after it, and the error names the offending value. The
// derived fields are recomputed either way so they stay consistent with
// whatever was applied.
func (c *Chart) ApplyUpdates(updates []dictation.Update) error {
	if len(updates) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == 0 {
		return fmt.Errorf("chart: no tooth selected")
	}
	tooth := c.teeth[c.current]

	var applyErr error
	for _, u := range updates {
		if err := tooth.ApplyUpdate(u); err != nil {
			applyErr = fmt.Errorf("tooth %d: %w", c.current, err)
			break
		}
	}
	tooth.Recompute()
	return applyErr
}

// SetMissing flags or unflags a tooth as missing and recomputes its derived
// fields (a missing tooth derives nil CAL and zero risk).
func (c *Chart) SetMissing(id int, missing bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	tooth, ok := c.teeth[id]
	if !ok {
		return fmt.Errorf("chart: no tooth %d", id)
	}
	tooth.Missing = missing
	tooth.Recompute()
	return nil
}

// Tooth returns a deep-copied snapshot of one record.
func (c *Chart) Tooth(id int) (*ToothRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tooth, ok := c.teeth[id]
	if !ok {
		return nil, fmt.Errorf("chart: no tooth %d", id)
	}
	return tooth.Clone(), nil
}

// Snapshot returns deep-copied records for all teeth, ordered by Universal
// number. Used by the admin chart endpoint and by tests.
func (c *Chart) Snapshot() []*ToothRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*ToothRecord, 0, len(c.teeth))
	for _, tooth := range c.teeth {
		out = append(out, tooth.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

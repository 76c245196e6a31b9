package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

const (
	OverlayFlowField OverlayID = "flow_field"
	OverlayOrigins   OverlayID = "origins"
	OverlayPerf      OverlayID = "perf"
	OverlayStats     OverlayID = "stats"
	OverlayHelp      OverlayID = "help"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // 0 = no key
	KeyLabel string // e.g. "G"

	// Modes the overlay draws in. Empty means every mode.
	Modes []components.Mode
	// Overlays switched off when this one is switched on.
	Exclusive []OverlayID
}

// AppliesTo reports whether the overlay draws in mode m.
func (d OverlayDescriptor) AppliesTo(m components.Mode) bool {
	return len(d.Modes) == 0 || slices.Contains(d.Modes, m)
}

type overlayEntry struct {
	desc OverlayDescriptor
	on   bool
}

// OverlayRegistry holds overlay toggles in registration order.
type OverlayRegistry struct {
	entries []overlayEntry
	index   map[OverlayID]int
}

// NewOverlayRegistry creates a registry with the playground overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{index: make(map[OverlayID]int)}

	r.Register(OverlayDescriptor{
		ID: OverlayFlowField, Name: "Flow Field", Key: rl.KeyG, KeyLabel: "G",
		Modes: []components.Mode{components.ModeOptimization},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayOrigins, Name: "Rest Positions", Key: rl.KeyO, KeyLabel: "O",
		Modes: []components.Mode{components.ModeNeural, components.ModePhase},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayPerf, Name: "Frame Timing", Key: rl.KeyP, KeyLabel: "P",
		Exclusive: []OverlayID{OverlayStats},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayStats, Name: "Window Stats", Key: rl.KeyI, KeyLabel: "I",
		Exclusive: []OverlayID{OverlayPerf},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayHelp, Name: "Key Legend", Key: rl.KeyH, KeyLabel: "H",
	})
	return r
}

// Register adds an overlay, or replaces the descriptor of one already
// registered under the same ID while keeping its state and position.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.entries[i].desc = desc
		return
	}
	r.index[desc.ID] = len(r.entries)
	r.entries = append(r.entries, overlayEntry{desc: desc})
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	on := !r.entries[i].on
	r.set(i, on)
	return on
}

func (r *OverlayRegistry) set(i int, on bool) {
	r.entries[i].on = on
	if !on {
		return
	}
	for _, excl := range r.entries[i].desc.Exclusive {
		if j, ok := r.index[excl]; ok {
			r.entries[j].on = false
		}
	}
}

// IsEnabled returns whether an overlay is switched on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	i, ok := r.index[id]
	return ok && r.entries[i].on
}

// Active returns whether an overlay is on and draws in mode m.
func (r *OverlayRegistry) Active(id OverlayID, m components.Mode) bool {
	i, ok := r.index[id]
	return ok && r.entries[i].on && r.entries[i].desc.AppliesTo(m)
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return OverlayDescriptor{}, false
	}
	return r.entries[i].desc, true
}

// All returns every descriptor in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	out := make([]OverlayDescriptor, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.desc
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	if key == 0 {
		return "", false, false
	}
	for i, e := range r.entries {
		if e.desc.Key == key {
			on = !e.on
			r.set(i, on)
			return e.desc.ID, on, true
		}
	}
	return "", false, false
}

// Enabled returns the IDs of the overlays switched on, in registration order.
func (r *OverlayRegistry) Enabled() []OverlayID {
	var out []OverlayID
	for _, e := range r.entries {
		if e.on {
			out = append(out, e.desc.ID)
		}
	}
	return out
}

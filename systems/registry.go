package systems

import (
	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
)

// ModeInfo describes a mode for UI display.
type ModeInfo struct {
	Mode  components.Mode
	Label string // Toolbar label
	Title string // Centred heading
	Hint  string // Interaction hint under the heading
}

// Registry holds the strategy and display metadata for every mode.
// This centralizes mode naming so the UI, HUD and telemetry stay in sync.
type Registry struct {
	infos      []ModeInfo
	strategies map[components.Mode]Strategy
}

// NewRegistry creates a registry with all four strategies built from cfg.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{strategies: make(map[components.Mode]Strategy)}
	r.Register(NewEntropy(cfg.Entropy), ModeInfo{
		Label: "Entropy",
		Title: "Entropy Control",
		Hint:  "Hold to Collapse • Release to Explode",
	})
	r.Register(NewNeural(cfg.Neural), ModeInfo{
		Label: "Neural",
		Title: "Neural Lattice",
		Hint:  "Hold to Inject Signal Interference",
	})
	r.Register(NewPhase(cfg.Phase), ModeInfo{
		Label: "Phase",
		Title: "Phase Transition",
		Hint:  "Click to Melt • Move Fast to Heat",
	})
	r.Register(NewOptimization(cfg.Optimization), ModeInfo{
		Label: "Optimize",
		Title: "Gradient Flow",
		Hint:  "Topology Field • Hold to Regularize",
	})
	return r
}

// Register installs s for its mode, replacing any previous strategy.
func (r *Registry) Register(s Strategy, info ModeInfo) {
	info.Mode = s.Mode()
	if _, ok := r.strategies[info.Mode]; !ok {
		r.infos = append(r.infos, info)
	} else {
		for i := range r.infos {
			if r.infos[i].Mode == info.Mode {
				r.infos[i] = info
			}
		}
	}
	r.strategies[info.Mode] = s
}

// Strategy returns the strategy for m. Unknown modes fall back to entropy.
func (r *Registry) Strategy(m components.Mode) Strategy {
	if !m.Valid() {
		m = components.ModeEntropy
	}
	return r.strategies[m]
}

// Info returns display metadata for m.
func (r *Registry) Info(m components.Mode) (ModeInfo, bool) {
	for _, info := range r.infos {
		if info.Mode == m {
			return info, true
		}
	}
	return ModeInfo{}, false
}

// All returns every registered mode in registration order.
func (r *Registry) All() []ModeInfo {
	return r.infos
}

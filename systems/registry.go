package systems

// System IDs in pipeline order. Also used as perf phase names.
const (
	IDSampling   = "sampling"
	IDLanding    = "landing"
	IDKinematics = "kinematics"
	IDHeading    = "heading"
	IDFrame      = "frame"
)

// SystemInfo describes a replay system.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "input", "motion")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so logs and the perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in the order the session runs them.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: IDSampling, Name: "Sampling", Description: "Resamples recorded traces at the tick time", Category: "input"})
	r.Register(SystemInfo{ID: IDLanding, Name: "Landing", Description: "Detects the first ground crossing", Category: "events"})
	r.Register(SystemInfo{ID: IDKinematics, Name: "Kinematics", Description: "Derives velocity and smoothed speed", Category: "motion"})
	r.Register(SystemInfo{ID: IDHeading, Name: "Heading", Description: "Snaps heading to 8 directions", Category: "motion"})
	r.Register(SystemInfo{ID: IDFrame, Name: "Frame", Description: "Localizes positions into the tee frame", Category: "space"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/andtech/swinglab/components"
	"github.com/andtech/swinglab/frame"
)

// FrameSystem expresses positions in tee coordinates.
type FrameSystem struct {
	filter ecs.Filter2[components.Position, components.Local]
	tee    *frame.Basis
}

// NewFrameSystem creates a frame system localizing into tee.
func NewFrameSystem(w *ecs.World, tee *frame.Basis) *FrameSystem {
	if tee == nil {
		tee = frame.Identity()
	}
	return &FrameSystem{
		filter: *ecs.NewFilter2[components.Position, components.Local](w),
		tee:    tee,
	}
}

// Update localizes every position.
func (s *FrameSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, local := query.Get()
		local.Vec = s.tee.Localize(pos.Vec)
	}
}

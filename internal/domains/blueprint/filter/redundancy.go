package filter

import "blueprints-backend/internal/domains/blueprint/model"

// Redundancy drops a point when it equals the point right before it.
// Non-consecutive duplicates are kept.
type Redundancy struct{}

func (Redundancy) Name() string { return NameRedundancy }

func (Redundancy) Apply(bp model.Blueprint) model.Blueprint {
	in := bp.Points()
	if len(in) == 0 {
		return bp.WithPoints(in)
	}

	out := make([]model.Point, 0, len(in))
	out = append(out, in[0])
	for i := 1; i < len(in); i++ {
		if in[i] != in[i-1] {
			out = append(out, in[i])
		}
	}
	return bp.WithPoints(out)
}

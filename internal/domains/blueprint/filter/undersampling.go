package filter

import "blueprints-backend/internal/domains/blueprint/model"

// Undersampling keeps the points at even positions (0, 2, 4, ...).
// Blueprints with two points or fewer pass through untouched.
type Undersampling struct{}

func (Undersampling) Name() string { return NameUndersampling }

func (Undersampling) Apply(bp model.Blueprint) model.Blueprint {
	in := bp.Points()
	if len(in) <= 2 {
		return bp.WithPoints(in)
	}

	out := make([]model.Point, 0, (len(in)+1)/2)
	for i := 0; i < len(in); i += 2 {
		out = append(out, in[i])
	}
	return bp.WithPoints(out)
}

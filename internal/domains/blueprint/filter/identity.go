package filter

import "blueprints-backend/internal/domains/blueprint/model"

// Identity returns the blueprint unchanged
type Identity struct{}

func (Identity) Name() string { return NameIdentity }

func (Identity) Apply(bp model.Blueprint) model.Blueprint {
	return bp.WithPoints(bp.Points())
}

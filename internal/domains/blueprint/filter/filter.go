// Package filter holds the point-list post-processing strategies applied to a
// blueprint before it is returned to a caller. Exactly one is active per
// deployment; it is picked from configuration at startup.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"blueprints-backend/internal/domains/blueprint/model"
)

// Filter names accepted by New
const (
	NameIdentity      = "identity"
	NameRedundancy    = "redundancy"
	NameUndersampling = "undersampling"
)

var ErrUnknownFilter = errors.New("unknown blueprint filter")

// Filter is a pure transformation of a blueprint's points. Implementations
// keep author and name and never modify their input.
type Filter interface {
	Name() string
	Apply(bp model.Blueprint) model.Blueprint
}

// Names lists every filter New can build
func Names() []string {
	return []string{NameIdentity, NameRedundancy, NameUndersampling}
}

// New returns the filter registered under name. An empty name selects identity.
func New(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameIdentity:
		return Identity{}, nil
	case NameRedundancy:
		return Redundancy{}, nil
	case NameUndersampling:
		return Undersampling{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
}

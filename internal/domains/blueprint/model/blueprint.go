package model

import (
	"encoding/json"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a blueprint. Two blueprints with the same key are the same
// blueprint regardless of their points.
type Key struct {
	Author string
	Name   string
}

// String renders the key as author/name
func (k Key) String() string {
	return k.Author + "/" + k.Name
}

// Blueprint is a named, author-owned ordered sequence of points.
// Fields are unexported so the point slice can only grow through AddPoint.
type Blueprint struct {
	author string
	name   string
	points []Point
}

// New creates a blueprint owning a private copy of points.
// A nil points slice yields an empty, non-nil sequence.
func New(author, name string, points []Point) Blueprint {
	cp := make([]Point, len(points))
	copy(cp, points)
	return Blueprint{
		author: author,
		name:   name,
		points: cp,
	}
}

func (b Blueprint) Author() string { return b.author }

func (b Blueprint) Name() string { return b.name }

// Points returns a copy of the point sequence in insertion order
func (b Blueprint) Points() []Point {
	cp := make([]Point, len(b.points))
	copy(cp, b.points)
	return cp
}

// Len returns the number of points without copying them
func (b Blueprint) Len() int {
	return len(b.points)
}

// AddPoint appends p to the sequence.
func (b *Blueprint) AddPoint(p Point) {
	b.points = append(b.points, p)
}

// Key returns the (author, name) identity of the blueprint
func (b Blueprint) Key() Key {
	return Key{Author: b.author, Name: b.name}
}

// Equal reports whether both blueprints share author and name.
// Points do not take part in equality.
func (b Blueprint) Equal(other Blueprint) bool {
	return b.Key() == other.Key()
}

// Hash is consistent with Equal: it only covers author and name.
func (b Blueprint) Hash() uint64 {
	return HashKey(b.Key())
}

// HashKey hashes a key. A NUL separator keeps ("ab","c") and ("a","bc") apart.
func HashKey(k Key) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(k.Author)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(k.Name)
	return d.Sum64()
}

// WithPoints returns a new blueprint with the same identity and the given points.
func (b Blueprint) WithPoints(points []Point) Blueprint {
	return New(b.author, b.name, points)
}

// blueprintJSON is the wire shape of a blueprint
type blueprintJSON struct {
	Author string  `json:"author"`
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// MarshalJSON renders {"author","name","points"}; points is never null.
func (b Blueprint) MarshalJSON() ([]byte, error) {
	return json.Marshal(blueprintJSON{
		Author: b.author,
		Name:   b.name,
		Points: b.Points(),
	})
}

// UnmarshalJSON is used by the cache layer to restore blueprints.
func (b *Blueprint) UnmarshalJSON(data []byte) error {
	var raw blueprintJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = New(raw.Author, raw.Name, raw.Points)
	return nil
}

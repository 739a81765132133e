// Package models holds the value types shared by the extraction and
// analysis packages: drawing entities, pattern match results, and the
// resolved circuit/device records built from them.
package models

import "math"

// Point is a 2D drawing coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Bounds is an axis-aligned rectangle delimiting a drawing region.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Contains reports whether the point falls inside the bounds. Edges are
// inclusive.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Entity is one piece of text extracted from a drawing: a text entity's
// content or an inserted block's name and attributes, with its position
// and source layer.
type Entity struct {
	Text       string            `json:"text"`
	Position   Point             `json:"position"`
	Layer      string            `json:"layer,omitempty"`
	BlockName  string            `json:"block_name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// World is an ordered collection of shapes tested by linear scan.
// It is itself a Shape, so worlds can be nested.
type World struct {
	shapes []Shape
}

// NewWorld creates a world containing the given shapes
func NewWorld(shapes ...Shape) *World {
	w := &World{shapes: make([]Shape, 0, len(shapes))}
	w.Add(shapes...)
	return w
}

// Add appends shapes to the world
func (w *World) Add(shapes ...Shape) {
	w.shapes = append(w.shapes, shapes...)
}

// Len returns the number of shapes in the world
func (w *World) Len() int {
	return len(w.shapes)
}

// Shapes returns the shapes in insertion order
func (w *World) Shapes() []Shape {
	return w.shapes
}

// Hit tests every shape and returns the closest hit within (tMin, tMax).
// The upper bound shrinks to each accepted hit, so nearer surfaces win
// regardless of insertion order.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range w.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

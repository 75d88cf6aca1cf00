// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/motionmatch/pkg/math"

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints).
func GenerateBBoxWireframeVertices(lo, hi math.Vec3) []math.Vec3 {
	corner := func(x, y, z bool) math.Vec3 {
		v := lo
		if x {
			v.X = hi.X
		}
		if y {
			v.Y = hi.Y
		}
		if z {
			v.Z = hi.Z
		}
		return v
	}
	return []math.Vec3{
		// Bottom face
		corner(false, false, false), corner(true, false, false),
		corner(true, false, false), corner(true, true, false),
		corner(true, true, false), corner(false, true, false),
		corner(false, true, false), corner(false, false, false),
		// Top face
		corner(false, false, true), corner(true, false, true),
		corner(true, false, true), corner(true, true, true),
		corner(true, true, true), corner(false, true, true),
		corner(false, true, true), corner(false, false, true),
		// Vertical edges
		corner(false, false, false), corner(false, false, true),
		corner(true, false, false), corner(true, false, true),
		corner(true, true, false), corner(true, true, true),
		corner(false, true, false), corner(false, true, true),
	}
}

// GenerateMarkerVertices creates a wireframe cube of edge size centred on p.
func GenerateMarkerVertices(p math.Vec3, size float32) []math.Vec3 {
	half := math.Vec3{X: size / 2, Y: size / 2, Z: size / 2}
	return GenerateBBoxWireframeVertices(p.Sub(half), p.Add(half))
}

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultMarkerSize is the edge length of point markers.
const DefaultMarkerSize = 4.0

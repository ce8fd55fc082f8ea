// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package overlay

import (
	"math"

	"github.com/ctessum/geom"
)

// DefaultTolerance is the snapping tolerance used when an Operation
// does not set one. Two vertices closer than the tolerance are treated
// as coincident.
const DefaultTolerance = 1e-9

func distance(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func pointsEqual(a, b geom.Point, tol float64) bool {
	return distance(a, b) <= tol
}

// segmentIntersection returns the intersection of segments a0-a1 and
// b0-b1, if any, along with the parameters of the intersection on each
// segment. Parallel and collinear pairs report no intersection;
// coincident geometry is resolved by vertex snapping and duplicate-arc
// removal instead.
func segmentIntersection(a0, a1, b0, b1 geom.Point) (p geom.Point, t, u float64, ok bool) {
	rx, ry := a1.X-a0.X, a1.Y-a0.Y
	sx, sy := b1.X-b0.X, b1.Y-b0.Y
	denom := rx*sy - ry*sx
	if math.Abs(denom) < 1e-14 {
		return geom.Point{}, 0, 0, false
	}
	qpx, qpy := b0.X-a0.X, b0.Y-a0.Y
	t = (qpx*sy - qpy*sx) / denom
	u = (qpx*ry - qpy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return geom.Point{}, 0, 0, false
	}
	return geom.Point{X: a0.X + t*rx, Y: a0.Y + t*ry}, t, u, true
}

// signedDoubleArea returns twice the signed area of the ring described
// by path. Positive for counter-clockwise rings in a y-up coordinate
// system. The ring may be open or closed; a closing vertex equal to the
// first contributes nothing.
func signedDoubleArea(path []geom.Point) float64 {
	var sum float64
	n := len(path)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += path[i].X*path[j].Y - path[j].X*path[i].Y
	}
	return sum
}

func isClockwise(path []geom.Point) bool {
	return signedDoubleArea(path) < 0
}

// turnAngle returns the signed turning angle from the incoming travel
// direction din to the outgoing direction dout, positive for clockwise
// (rightward) turns. The rightmost-turn rule selects the maximum.
func turnAngle(din, dout geom.Point) float64 {
	cross := din.X*dout.Y - din.Y*dout.X
	dot := din.X*dout.X + din.Y*dout.Y
	return -math.Atan2(cross, dot)
}

func pathLength(path []geom.Point) float64 {
	var sum float64
	for i := 1; i < len(path); i++ {
		sum += distance(path[i-1], path[i])
	}
	return sum
}

// interiorPoint returns a point strictly inside the ring described by
// path (which must be closed), chosen close to the ring's boundary.
// Staying near the boundary matters: a ring may enclose islands
// belonging to other records, and a deep candidate such as a centroid
// could land inside one of them and misclassify the ring's own region.
// Candidates are edge midpoints nudged sideways by a small fraction of
// the edge length, then centroids of consecutive vertex triples, then
// midpoints of vertex-to-vertex chords.
func interiorPoint(path []geom.Point) (geom.Point, bool) {
	poly := geom.Polygon{geom.Path(path)}
	n := len(path) - 1 // ignore the closing vertex
	if n < 3 {
		return geom.Point{}, false
	}
	for _, scale := range []float64{1e-6, 1e-3} {
		for i := 0; i < n; i++ {
			p, q := path[i], path[i+1]
			if p == q {
				continue
			}
			mx, my := (p.X+q.X)/2, (p.Y+q.Y)/2
			// Edge normal scaled to a fraction of the edge length; both
			// sides are tried since the ring's orientation is not known
			// here.
			nx, ny := (q.Y-p.Y)*scale, (p.X-q.X)*scale
			for _, c := range []geom.Point{
				{X: mx + nx, Y: my + ny},
				{X: mx - nx, Y: my - ny},
			} {
				if c.Within(poly) == geom.Inside {
					return c, true
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		prev := path[(i+n-1)%n]
		v := path[i]
		next := path[(i+1)%n]
		c := geom.Point{X: (prev.X + v.X + next.X) / 3, Y: (prev.Y + v.Y + next.Y) / 3}
		if c.Within(poly) == geom.Inside {
			return c, true
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			m := geom.Point{X: (path[i].X + path[j].X) / 2, Y: (path[i].Y + path[j].Y) / 2}
			if m.Within(poly) == geom.Inside {
				return m, true
			}
		}
	}
	return geom.Point{}, false
}

// pointBounds returns a degenerate bounding box expanded by pad on each
// side, for radius queries against an rtree.
func pointBounds(p geom.Point, pad float64) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: p.X - pad, Y: p.Y - pad},
		Max: geom.Point{X: p.X + pad, Y: p.Y + pad},
	}
}

func boundsOverlap(a, b *geom.Bounds) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}

// boundsStrictlyContains reports whether inner lies strictly inside
// outer on all four sides. Equal extents do not qualify; this keeps a
// ring from being filed as a hole of itself.
func boundsStrictlyContains(outer, inner *geom.Bounds) bool {
	return inner.Min.X > outer.Min.X && inner.Max.X < outer.Max.X &&
		inner.Min.Y > outer.Min.Y && inner.Max.Y < outer.Max.Y
}

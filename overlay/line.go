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

import "github.com/ctessum/geom"

// source tags a line with the input collection it came from.
type source uint8

const (
	sourceA source = iota
	sourceB
)

// line is an ordered vertex run extracted from one input record: a
// whole polyline, one polygon ring, or, after splitting, an arc of the
// arrangement. Lines are never mutated after creation; splitting
// produces new lines sharing no backing storage with the original.
type line struct {
	vertices []geom.Point
	rec      int  // index of the originating record in its collection
	src      source
	hole     bool // ring was a polygon hole
	closed   bool // first and last vertex coincide
	shared   bool // had a coincident twin in the other source
	b        *geom.Bounds
}

func newLine(vertices []geom.Point, rec int, src source, hole bool, tol float64) *line {
	l := &line{
		vertices: vertices,
		rec:      rec,
		src:      src,
		hole:     hole,
		b:        boundsOfPoints(vertices),
	}
	if len(vertices) >= 3 {
		l.closed = pointsEqual(vertices[0], vertices[len(vertices)-1], tol)
	}
	return l
}

func (l *line) first() geom.Point { return l.vertices[0] }
func (l *line) last() geom.Point  { return l.vertices[len(l.vertices)-1] }

func (l *line) length() float64 { return pathLength(l.vertices) }

// slice returns a new line over a copied sub-run [i, j] (inclusive).
func (l *line) slice(i, j int, tol float64) *line {
	v := make([]geom.Point, j-i+1)
	copy(v, l.vertices[i:j+1])
	return newLine(v, l.rec, l.src, l.hole, tol)
}

// reversed returns the vertex sequence in reverse order.
func (l *line) reversed() []geom.Point {
	v := make([]geom.Point, len(l.vertices))
	for i, p := range l.vertices {
		v[len(v)-1-i] = p
	}
	return v
}

// equalWithin reports whether two lines describe the same vertex
// sequence, forward or reversed, within the tolerance.
func (l *line) equalWithin(m *line, tol float64) bool {
	n := len(l.vertices)
	if n != len(m.vertices) {
		return false
	}
	forward, reverse := true, true
	for i := 0; i < n; i++ {
		if forward && !pointsEqual(l.vertices[i], m.vertices[i], tol) {
			forward = false
		}
		if reverse && !pointsEqual(l.vertices[i], m.vertices[n-1-i], tol) {
			reverse = false
		}
		if !forward && !reverse {
			return false
		}
	}
	return true
}

// compact drops consecutive exactly-duplicated vertices. Returns nil
// when fewer than two distinct vertices remain.
func (l *line) compact(tol float64) *line {
	v := l.vertices[:1:1]
	for _, p := range l.vertices[1:] {
		if p != v[len(v)-1] {
			v = append(v, p)
		}
	}
	if len(v) < 2 {
		return nil
	}
	if len(v) == len(l.vertices) {
		return l
	}
	return newLine(v, l.rec, l.src, l.hole, tol)
}

// ringSet holds the original rings of one input polygon record: one
// entry per ring (outer plus holes), the per-ring hole flag, and the
// record's bounding box. It is read-only during overlay and serves the
// containment tests of the ring classifier.
type ringSet struct {
	rings []geom.Path
	holes []bool
	rec   int
	b     *geom.Bounds
}

func newRingSet(rec int) *ringSet {
	return &ringSet{rec: rec, b: geom.NewBounds()}
}

func (rs *ringSet) add(ring geom.Path, hole bool) {
	rs.rings = append(rs.rings, ring)
	rs.holes = append(rs.holes, hole)
	rs.b.Extend(boundsOfPoints(ring))
}

// contains tests pt against every ring of the set, reporting whether it
// lies inside a solid ring and whether it lies inside a hole.
func (rs *ringSet) contains(pt geom.Point) (solid, hole bool) {
	if !boundsOverlap(rs.b, pointBounds(pt, 0)) {
		return false, false
	}
	for i, r := range rs.rings {
		if pt.Within(geom.Polygon{r}) == geom.Inside {
			if rs.holes[i] {
				hole = true
			} else {
				solid = true
			}
		}
	}
	return solid, hole
}

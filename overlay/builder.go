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
	"sort"

	"github.com/ctessum/geom"
)

// arcBuilder flattens the rings and lines of both input collections
// into tagged vertex runs and splits them into arcs at junction
// vertices. A junction is detected where the count of coincident
// vertices from other runs changes between consecutive vertices: a
// step change marks entering or leaving a region of overlap.
type arcBuilder struct {
	tol   float64
	lines []*line

	// Original polygon rings per source, for the ring classifier.
	rings [2][]*ringSet
}

func newArcBuilder(tol float64) *arcBuilder {
	return &arcBuilder{tol: tol}
}

// closeRing returns ring with an explicit closing vertex.
func closeRing(ring geom.Path, tol float64) []geom.Point {
	v := make([]geom.Point, len(ring))
	copy(v, ring)
	if len(v) > 0 && !pointsEqual(v[0], v[len(v)-1], tol) {
		v = append(v, v[0])
	}
	return v
}

// addPolygon registers one polygon's rings, flattening each into a
// closed line. Holes are recognized by winding opposite to the first
// ring.
func (b *arcBuilder) addPolygon(p geom.Polygon, rec int, src source) {
	if len(p) == 0 {
		return
	}
	rs := b.recordRings(rec, src)
	outerCW := isClockwise(p[0])
	for _, ring := range p {
		v := closeRing(ring, b.tol)
		if len(v) < 4 {
			continue
		}
		hole := isClockwise(ring) != outerCW
		rs.add(geom.Path(v), hole)
		b.lines = append(b.lines, newLine(v, rec, src, hole, b.tol))
	}
}

func (b *arcBuilder) addMultiPolygon(mp geom.MultiPolygon, rec int, src source) {
	for _, p := range mp {
		b.addPolygon(p, rec, src)
	}
}

func (b *arcBuilder) addLineString(ls geom.LineString, rec int, src source) {
	if len(ls) < 2 {
		return
	}
	v := make([]geom.Point, len(ls))
	copy(v, ls)
	b.lines = append(b.lines, newLine(v, rec, src, false, b.tol))
}

func (b *arcBuilder) addMultiLineString(mls geom.MultiLineString, rec int, src source) {
	for _, ls := range mls {
		b.addLineString(ls, rec, src)
	}
}

func (b *arcBuilder) recordRings(rec int, src source) *ringSet {
	sets := b.rings[src]
	if n := len(sets); n > 0 && sets[n-1].rec == rec {
		return sets[n-1]
	}
	rs := newRingSet(rec)
	b.rings[src] = append(b.rings[src], rs)
	return rs
}

// build splits every registered line into arcs at its junction
// vertices. A line with no junctions yields exactly one arc (itself).
// Arcs reduced below two distinct vertices are discarded.
func (b *arcBuilder) build() []*line {
	idx := NewPointIndex()
	for li, l := range b.lines {
		n := len(l.vertices)
		if l.closed {
			n-- // the closing vertex duplicates the first
		}
		for vi := 0; vi < n; vi++ {
			idx.Add(l.vertices[vi], int32(li))
		}
	}

	var arcs []*line
	for li, l := range b.lines {
		counts := b.neighborCounts(idx, li, l)
		var pieces []*line
		if l.closed {
			pieces = b.splitClosed(l, counts)
		} else {
			pieces = b.splitOpen(l, counts)
		}
		for _, a := range pieces {
			if a = a.compact(b.tol); a != nil {
				arcs = append(arcs, a)
			}
		}
	}
	return arcs
}

// neighborCounts returns, per distinct vertex, the number of vertices
// of other lines coincident with it.
func (b *arcBuilder) neighborCounts(idx *PointIndex, li int, l *line) []int {
	n := len(l.vertices)
	if l.closed {
		n--
	}
	counts := make([]int, n)
	for vi := 0; vi < n; vi++ {
		c := 0
		for _, e := range idx.Search(l.vertices[vi], b.tol) {
			if e.Data.(int32) != int32(li) {
				c++
			}
		}
		counts[vi] = c
	}
	return counts
}

// junctionIndices returns the sorted vertex indices where a line must
// be cut, given its per-vertex coincidence counts. At a count
// transition the junction is the vertex with the higher count: it is
// the last vertex still inside the coincident run, so the run itself
// becomes a separate arc that duplicate resolution can match.
func junctionIndices(counts []int, closed bool) []int {
	m := len(counts)
	set := make(map[int]bool)
	start := 1
	if closed {
		start = 0
	}
	for i := start; i < m; i++ {
		prev := i - 1
		if i == 0 {
			prev = m - 1
		}
		switch {
		case counts[i] == counts[prev]:
		case counts[i] > counts[prev]:
			set[i] = true
		default:
			set[prev] = true
		}
	}
	junc := make([]int, 0, len(set))
	for i := range set {
		junc = append(junc, i)
	}
	sort.Ints(junc)
	return junc
}

func (b *arcBuilder) splitOpen(l *line, counts []int) []*line {
	cuts := []int{0}
	for _, j := range junctionIndices(counts, false) {
		if j > 0 && j < len(counts)-1 {
			cuts = append(cuts, j)
		}
	}
	cuts = append(cuts, len(counts)-1)
	var out []*line
	for i := 1; i < len(cuts); i++ {
		out = append(out, l.slice(cuts[i-1], cuts[i], b.tol))
	}
	return out
}

func (b *arcBuilder) splitClosed(l *line, counts []int) []*line {
	m := len(counts) // distinct vertices; l.vertices[m] closes the ring
	junc := junctionIndices(counts, true)
	if len(junc) == 0 {
		return []*line{l}
	}

	// Rotate the ring so it starts at the first junction, then cut at
	// each remaining junction. A single junction yields one closed arc
	// whose endpoints both sit on the junction.
	rot := make([]geom.Point, m+1)
	for i := 0; i <= m; i++ {
		rot[i] = l.vertices[(junc[0]+i)%m]
	}
	offs := make([]int, 0, len(junc)+1)
	for _, j := range junc {
		offs = append(offs, (j-junc[0]+m)%m)
	}
	sort.Ints(offs)
	offs = append(offs, m)

	rl := newLine(rot, l.rec, l.src, l.hole, b.tol)
	var out []*line
	for i := 1; i < len(offs); i++ {
		out = append(out, rl.slice(offs[i-1], offs[i], b.tol))
	}
	return out
}

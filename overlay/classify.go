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

// classifiedRing couples a traced ring with its containment votes: for
// each source, whether the ring's interior point lies inside that
// source's solid geometry without being cancelled by a hole, and the
// record that contains it.
type classifiedRing struct {
	ring     *ringCandidate
	interior geom.Point
	ok       bool // interior point found; degenerate rings report false
	inside   [2]bool
	rec      [2]int
}

// classifyRing computes the interior point of a candidate and tests it
// against every original ring of both sources.
func classifyRing(r *ringCandidate, rings *[2][]*ringSet) *classifiedRing {
	cr := &classifiedRing{ring: r, rec: [2]int{-1, -1}}
	if len(r.vertices) < 4 {
		return cr
	}
	ip, ok := interiorPoint(r.vertices)
	if !ok {
		return cr
	}
	cr.interior, cr.ok = ip, true
	for s := 0; s < 2; s++ {
		cr.inside[s], cr.rec[s] = voteSource(rings[s], ip)
	}
	return cr
}

// voteSource reports whether pt is interior to the source described by
// sets: inside at least one solid ring and not inside any hole. The
// winning record is the first whose solid ring contains pt.
func voteSource(sets []*ringSet, pt geom.Point) (bool, int) {
	solid, hole := false, false
	rec := -1
	for _, rs := range sets {
		s, h := rs.contains(pt)
		if s && !solid {
			solid = true
			rec = rs.rec
		}
		if h {
			hole = true
		}
	}
	if !solid || hole {
		return false, -1
	}
	return true, rec
}

// keep applies the overlay predicate to a ring's containment votes.
func (t OpType) keep(inA, inB bool) bool {
	switch t {
	case OpUnion:
		return inA || inB
	case OpIntersection:
		return inA && inB
	case OpErase:
		return inA && !inB
	default: // OpSymmetricDifference
		return inA != inB
	}
}

// winner selects the source whose record's attributes an emitted ring
// carries. The first input takes precedence when both contain it.
func (t OpType) winner(cr *classifiedRing) (source, int) {
	if cr.inside[sourceA] {
		return sourceA, cr.rec[sourceA]
	}
	return sourceB, cr.rec[sourceB]
}

// outPolygon is one accepted output boundary with any holes attached
// to it.
type outPolygon struct {
	outer []geom.Point
	holes [][]geom.Point
	sig   string
	b     *geom.Bounds
	src   source
	rec   int
	area  float64
}

func newOutPolygon(cr *classifiedRing, src source, rec int) *outPolygon {
	outer := snapClosed(orientRing(cr.ring.vertices, true))
	return &outPolygon{
		outer: outer,
		sig:   cr.ring.sig,
		b:     boundsOfPoints(outer),
		src:   src,
		rec:   rec,
		area:  math.Abs(signedDoubleArea(outer)) / 2,
	}
}

// snapClosed forces the closing vertex to equal the first exactly.
// Tracing closes rings within the tolerance, not bit for bit.
func snapClosed(v []geom.Point) []geom.Point {
	if n := len(v); n > 1 && v[n-1] != v[0] {
		v[n-1] = v[0]
	}
	return v
}

// orientRing returns the ring with the requested winding, copying only
// when a reversal is needed. Output outer rings wind clockwise, holes
// counter-clockwise.
func orientRing(v []geom.Point, clockwise bool) []geom.Point {
	if isClockwise(v) == clockwise {
		return v
	}
	r := make([]geom.Point, len(v))
	for i, p := range v {
		r[len(v)-1-i] = p
	}
	return r
}

// assignHulls attaches each hull candidate to the smallest accepted
// output polygon that strictly contains it, as an additional ring
// (hole). Candidates contained by nothing are dropped; a ring can
// never become a hole of itself.
func assignHulls(outs []*outPolygon, hulls []*classifiedRing) {
	for _, h := range hulls {
		if !h.ok {
			continue
		}
		hb := boundsOfPoints(h.ring.vertices)
		var best *outPolygon
		for _, o := range outs {
			if o.sig == h.ring.sig {
				continue
			}
			if !boundsStrictlyContains(o.b, hb) {
				continue
			}
			if h.interior.Within(geom.Polygon{geom.Path(o.outer)}) != geom.Inside {
				continue
			}
			if best == nil || o.area < best.area {
				best = o
			}
		}
		if best != nil {
			best.holes = append(best.holes, snapClosed(orientRing(h.ring.vertices, false)))
		}
	}
}

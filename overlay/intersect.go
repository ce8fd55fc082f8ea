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
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
)

// arcSpatial adapts an arc for rtree storage. The rtree stores
// geom.Geom values, so the adapter carries the full interface; only
// Bounds drives index placement.
type arcSpatial struct {
	arc *line
	idx int
}

func (s *arcSpatial) Bounds() *geom.Bounds { return s.arc.b }

// Len returns the number of vertices in the indexed arc.
func (s *arcSpatial) Len() int { return len(s.arc.vertices) }

// Points returns an iterator over the arc's vertices.
func (s *arcSpatial) Points() func() geom.Point {
	i := 0
	return func() geom.Point {
		p := s.arc.vertices[i]
		i++
		return p
	}
}

// Similar reports whether g indexes an arc with the same vertex run
// within tolerance.
func (s *arcSpatial) Similar(g geom.Geom, tolerance float64) bool {
	o, ok := g.(*arcSpatial)
	return ok && s.arc.equalWithin(o.arc, tolerance)
}

// Transform shifts the indexed arc's vertices according to t.
func (s *arcSpatial) Transform(t proj.Transformer) (geom.Geom, error) {
	if t == nil {
		return s, nil
	}
	v := make([]geom.Point, len(s.arc.vertices))
	var err error
	for i, p := range s.arc.vertices {
		v[i].X, v[i].Y, err = t(p.X, p.Y)
		if err != nil {
			return nil, err
		}
	}
	a := newLine(v, s.arc.rec, s.arc.src, s.arc.hole, DefaultTolerance)
	return &arcSpatial{arc: a, idx: s.idx}, nil
}

func arcTree(arcs []*line) *rtree.Rtree {
	t := rtree.NewTree(25, 50)
	for i, a := range arcs {
		t.Insert(&arcSpatial{arc: a, idx: i})
	}
	return t
}

// splitPoint marks a vertex to insert into an arc: after segment seg,
// at parameter t along it.
type splitPoint struct {
	seg int
	t   float64
	p   geom.Point
}

// resolveCrossings finds every pairwise arc crossing and splits both
// arcs at the intersection point, so that afterwards no two arcs cross
// without sharing an endpoint. Both halves of a crossing receive the
// identical inserted coordinate.
func resolveCrossings(arcs []*line, tol float64) []*line {
	tree := arcTree(arcs)
	splits := make([][]splitPoint, len(arcs))

	for i, a := range arcs {
		for _, s := range tree.SearchIntersect(a.b) {
			j := s.(*arcSpatial).idx
			if j <= i {
				continue
			}
			crossArcs(a, arcs[j], i, j, splits, tol)
		}
	}

	var out []*line
	for i, a := range arcs {
		for _, piece := range applySplits(a, splits[i], tol) {
			if piece = piece.compact(tol); piece != nil {
				out = append(out, piece)
			}
		}
	}
	return out
}

func crossArcs(a, b *line, ai, bi int, splits [][]splitPoint, tol float64) {
	for si := 0; si < len(a.vertices)-1; si++ {
		a0, a1 := a.vertices[si], a.vertices[si+1]
		segB := boundsOfPoints([]geom.Point{a0, a1})
		if !boundsOverlap(segB, b.b) {
			continue
		}
		for sj := 0; sj < len(b.vertices)-1; sj++ {
			b0, b1 := b.vertices[sj], b.vertices[sj+1]
			p, t, u, ok := segmentIntersection(a0, a1, b0, b1)
			if !ok {
				continue
			}
			// Snap to a coincident existing vertex so both arcs cut at
			// the identical coordinate.
			switch {
			case pointsEqual(p, a0, tol):
				p = a0
			case pointsEqual(p, a1, tol):
				p = a1
			case pointsEqual(p, b0, tol):
				p = b0
			case pointsEqual(p, b1, tol):
				p = b1
			}
			// An arc is cut unless the crossing sits on one of its own
			// endpoints, which are graph nodes already.
			if !pointsEqual(p, a.first(), tol) && !pointsEqual(p, a.last(), tol) {
				splits[ai] = append(splits[ai], splitPoint{seg: si, t: t, p: p})
			}
			if !pointsEqual(p, b.first(), tol) && !pointsEqual(p, b.last(), tol) {
				splits[bi] = append(splits[bi], splitPoint{seg: sj, t: u, p: p})
			}
		}
	}
}

// applySplits cuts arc a at each recorded split point, producing one
// sub-arc per span. A split coincident with an interior vertex cuts at
// that vertex without inserting a duplicate.
func applySplits(a *line, sp []splitPoint, tol float64) []*line {
	if len(sp) == 0 {
		return []*line{a}
	}
	sort.Slice(sp, func(i, j int) bool {
		if sp[i].seg != sp[j].seg {
			return sp[i].seg < sp[j].seg
		}
		return sp[i].t < sp[j].t
	})

	type vtx struct {
		p   geom.Point
		cut bool
	}
	verts := []vtx{{p: a.vertices[0]}}
	k := 0
	for si := 0; si < len(a.vertices)-1; si++ {
		for ; k < len(sp) && sp[k].seg == si; k++ {
			p := sp[k].p
			if pointsEqual(p, verts[len(verts)-1].p, tol) {
				verts[len(verts)-1].cut = true
				continue
			}
			verts = append(verts, vtx{p: p, cut: true})
		}
		next := a.vertices[si+1]
		if pointsEqual(next, verts[len(verts)-1].p, tol) {
			continue
		}
		verts = append(verts, vtx{p: next})
	}
	// Arc endpoints are nodes already.
	verts[0].cut = false
	verts[len(verts)-1].cut = false

	var pieces []*line
	start := 0
	for i := 1; i < len(verts); i++ {
		if !verts[i].cut && i != len(verts)-1 {
			continue
		}
		v := make([]geom.Point, 0, i-start+1)
		for _, w := range verts[start : i+1] {
			v = append(v, w.p)
		}
		if len(v) >= 2 {
			pieces = append(pieces, newLine(v, a.rec, a.src, a.hole, tol))
		}
		start = i
	}
	return pieces
}

// resolveDuplicates removes coincident arcs. Duplicates within a source
// always collapse to one. Across sources the behavior is operation
// dependent: symmetric difference cancels both copies (geometry present
// in only one input survives); the other operations keep a single copy
// marked as shared.
func resolveDuplicates(arcs []*line, op OpType, tol float64) []*line {
	removed := make([]bool, len(arcs))
	tree := arcTree(arcs)

	match := func(i int, sameSrc bool, fn func(i, j int)) {
		a := arcs[i]
		cands := tree.SearchIntersect(a.b)
		// Deterministic order regardless of rtree internals.
		idxs := make([]int, 0, len(cands))
		for _, s := range cands {
			idxs = append(idxs, s.(*arcSpatial).idx)
		}
		sort.Ints(idxs)
		for _, j := range idxs {
			if j <= i || removed[j] || removed[i] {
				continue
			}
			b := arcs[j]
			if (a.src == b.src) != sameSrc {
				continue
			}
			if a.equalWithin(b, tol) {
				fn(i, j)
			}
		}
	}

	for i := range arcs {
		if removed[i] {
			continue
		}
		match(i, true, func(i, j int) { removed[j] = true })
	}
	for i := range arcs {
		if removed[i] {
			continue
		}
		match(i, false, func(i, j int) {
			if op == OpSymmetricDifference {
				removed[i] = true
				removed[j] = true
			} else {
				arcs[i].shared = true
				removed[j] = true
			}
		})
	}

	var out []*line
	for i, a := range arcs {
		if !removed[i] {
			out = append(out, a)
		}
	}
	return out
}

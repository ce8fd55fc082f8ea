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
	"container/heap"

	"github.com/ctessum/geom"
)

// Endnodes are numbered 2*arc for the start of an arc and 2*arc+1 for
// its end, so the opposite end of any endnode is found by flipping the
// low bit.

func endnodeStart(arc int) int32 { return int32(2 * arc) }
func endnodeEnd(arc int) int32   { return int32(2*arc + 1) }
func endnodeArc(n int32) int     { return int(n >> 1) }
func otherEnd(n int32) int32     { return n ^ 1 }

// adjEntry is one reachable neighboring endnode together with the
// turning angle from the owning arc's incoming direction to the
// neighbor's outgoing direction, positive clockwise.
type adjEntry struct {
	node  int32
	angle float64
}

// endnodeGraph is the planar graph of arcs: a flat adjacency table
// addressed by endnode id, plus the dangling classification. It is
// built once per overlay invocation and read-only afterwards.
type endnodeGraph struct {
	arcs     []*line
	lengths  []float64
	adj      [][]adjEntry
	dangling []bool
}

// newEndnodeGraph links every arc endpoint to the endpoints of other
// arcs coincident with it within the tolerance, then classifies and
// disconnects dangling arcs.
func newEndnodeGraph(arcs []*line, tol float64) *endnodeGraph {
	g := &endnodeGraph{
		arcs:     arcs,
		lengths:  make([]float64, len(arcs)),
		adj:      make([][]adjEntry, 2*len(arcs)),
		dangling: make([]bool, len(arcs)),
	}
	idx := NewPointIndex()
	for i, a := range arcs {
		g.lengths[i] = a.length()
		if a.closed {
			// A closed arc is a complete ring already; it is seeded
			// into tracing directly rather than through the graph.
			continue
		}
		idx.Add(a.first(), endnodeStart(i))
		idx.Add(a.last(), endnodeEnd(i))
	}
	for i, a := range arcs {
		if a.closed {
			continue
		}
		g.linkEndnode(idx, endnodeStart(i), a.first(), tol)
		g.linkEndnode(idx, endnodeEnd(i), a.last(), tol)
	}
	g.classifyDangling()
	g.scrubDangling()
	return g
}

// linkEndnode records, for endnode n, every endnode of a different arc
// coincident with it, tagged with the turning angle from n's incoming
// direction to the neighbor's outgoing direction. An arc's own far end
// is excluded.
func (g *endnodeGraph) linkEndnode(idx *PointIndex, n int32, pt geom.Point, tol float64) {
	inX, inY := g.incomingDir(n)
	din := geom.Point{X: inX, Y: inY}
	for _, e := range idx.Search(pt, tol) {
		m := e.Data.(int32)
		if endnodeArc(m) == endnodeArc(n) {
			continue
		}
		outX, outY := g.outgoingDir(m)
		g.adj[n] = append(g.adj[n], adjEntry{
			node:  m,
			angle: turnAngle(din, geom.Point{X: outX, Y: outY}),
		})
	}
}

// incomingDir is the direction of travel along endnode n's own arc
// arriving at n.
func (g *endnodeGraph) incomingDir(n int32) (dx, dy float64) {
	a := g.arcs[endnodeArc(n)]
	v := a.vertices
	if n&1 == 0 { // arriving at the start means walking the arc backwards
		return v[0].X - v[1].X, v[0].Y - v[1].Y
	}
	k := len(v)
	return v[k-1].X - v[k-2].X, v[k-1].Y - v[k-2].Y
}

// outgoingDir is the direction of travel leaving endnode n's point
// into its arc.
func (g *endnodeGraph) outgoingDir(n int32) (dx, dy float64) {
	a := g.arcs[endnodeArc(n)]
	v := a.vertices
	if n&1 == 0 {
		return v[1].X - v[0].X, v[1].Y - v[0].Y
	}
	k := len(v)
	return v[k-2].X - v[k-1].X, v[k-2].Y - v[k-1].Y
}

// classifyDangling marks every acyclic arc: an arc with an unconnected
// endpoint, or one whose end-endnode cannot reach its start-endnode
// through the rest of the graph.
func (g *endnodeGraph) classifyDangling() {
	for i := range g.arcs {
		g.dangling[i] = g.isDangling(i)
	}
}

// scrubDangling removes every adjacency entry that touches a dangling
// arc. Dangling arcs take no part in ring tracing.
func (g *endnodeGraph) scrubDangling() {
	for n, entries := range g.adj {
		if g.dangling[endnodeArc(int32(n))] {
			g.adj[n] = nil
			continue
		}
		kept := entries[:0]
		for _, e := range entries {
			if !g.dangling[endnodeArc(e.node)] {
				kept = append(kept, e)
			}
		}
		g.adj[n] = kept
	}
}

// searchItem is one frontier entry of the dangling-arc search.
type searchItem struct {
	node int32
	dist float64
}

// searchQueue orders the frontier by accumulated arc length, so
// shorter paths are explored first. On equal length the larger endnode
// id pops first; this tie-break decides which of two equal-length
// paths classifies an arc and must stay stable.
type searchQueue []searchItem

func (q searchQueue) Len() int { return len(q) }
func (q searchQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node > q[j].node
}
func (q searchQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *searchQueue) Push(x interface{}) { *q = append(*q, x.(searchItem)) }
func (q *searchQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// isDangling runs a length-ordered search from the arc's end-endnode
// looking for its start-endnode, using a previous-endnode map in place
// of a visited set. The arc itself is never traversed, so the only way
// back is through a genuine cycle.
func (g *endnodeGraph) isDangling(arc int) bool {
	start, end := endnodeStart(arc), endnodeEnd(arc)
	if len(g.adj[start]) == 0 || len(g.adj[end]) == 0 {
		return true
	}

	prev := map[int32]int32{end: end}
	q := &searchQueue{{node: end, dist: 0}}
	heap.Init(q)
	for q.Len() > 0 {
		cur := heap.Pop(q).(searchItem)
		for _, e := range g.adj[cur.node] {
			if e.node == start {
				return false
			}
			j := endnodeArc(e.node)
			if j == arc {
				continue // doubling back on the arc itself
			}
			far := otherEnd(e.node)
			if _, seen := prev[far]; seen {
				continue
			}
			prev[far] = cur.node
			heap.Push(q, searchItem{node: far, dist: cur.dist + g.lengths[j]})
		}
	}
	return true
}

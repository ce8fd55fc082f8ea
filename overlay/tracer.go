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
	"strconv"
	"strings"

	"github.com/ctessum/geom"
)

// ringCandidate is one closed loop traced from the arrangement: its
// realized vertex sequence plus the sorted set of constituent arcs
// used for deduplication.
type ringCandidate struct {
	vertices  []geom.Point
	arcs      []int
	sig       string
	clockwise bool
}

func newRingCandidate(vertices []geom.Point, arcs []int) *ringCandidate {
	return &ringCandidate{
		vertices:  vertices,
		arcs:      arcs,
		sig:       arcSignature(arcs),
		clockwise: isClockwise(vertices),
	}
}

// arcSignature renders the sorted arc-index set; two traces of the
// same loop share a signature regardless of direction or start arc.
func arcSignature(arcs []int) string {
	s := append([]int(nil), arcs...)
	sort.Ints(s)
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// traceRing walks one face of the arrangement starting from the given
// arc. With fromEnd set the arc is traversed forward and the walk
// seeks its start-endnode; otherwise the arc is traversed in reverse
// and the walk seeks its end-endnode. At each junction the neighbor
// with the maximum turning angle is taken (the rightmost-turn rule).
//
// A nil candidate with nil error means the walk legally aborted (it
// would have revisited an endnode with no way back). A zero-option
// junction is reported as ErrMalformedTopology: dangling-arc removal
// is supposed to make that unreachable.
func (g *endnodeGraph) traceRing(arc int, fromEnd bool) (*ringCandidate, error) {
	var cur, target int32
	var vertices []geom.Point
	if fromEnd {
		vertices = append(vertices, g.arcs[arc].vertices...)
		cur, target = endnodeEnd(arc), endnodeStart(arc)
	} else {
		vertices = g.arcs[arc].reversed()
		cur, target = endnodeStart(arc), endnodeEnd(arc)
	}
	arcsUsed := []int{arc}
	prev := map[int32]int32{cur: cur}

	for steps := 0; steps <= 2*len(g.arcs); steps++ {
		options := g.adj[cur]
		if len(options) == 0 {
			return nil, ErrMalformedTopology
		}
		best := options[0]
		for _, e := range options[1:] {
			if e.angle > best.angle {
				best = e
			}
		}
		n := best.node
		if n == target {
			return newRingCandidate(vertices, arcsUsed), nil
		}
		far := otherEnd(n)
		if _, seen := prev[n]; seen {
			return nil, nil
		}
		if _, seen := prev[far]; seen {
			return nil, nil
		}
		prev[n] = cur
		prev[far] = n

		j := endnodeArc(n)
		av := g.arcs[j].vertices
		if n&1 == 0 {
			vertices = append(vertices, av[1:]...)
		} else {
			for i := len(av) - 2; i >= 0; i-- {
				vertices = append(vertices, av[i])
			}
		}
		arcsUsed = append(arcsUsed, j)
		cur = far
	}
	return nil, nil
}

// closedArcRings returns the ready-made rings of arcs that close on
// themselves: such arcs never enter the endnode graph, so both of
// their faces are seeded here directly.
func closedArcRings(arcs []*line, closedIdx []int) []*ringCandidate {
	var out []*ringCandidate
	for _, i := range closedIdx {
		a := arcs[i]
		if len(a.vertices) < 4 {
			continue
		}
		fwd := append([]geom.Point(nil), a.vertices...)
		out = append(out,
			newRingCandidate(fwd, []int{i}),
			newRingCandidate(a.reversed(), []int{i}))
	}
	return out
}

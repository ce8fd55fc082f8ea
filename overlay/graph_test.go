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
	"testing"

	"github.com/ctessum/geom"
)

func arcOf(pts ...geom.Point) *line {
	return newLine(pts, 0, sourceA, false, DefaultTolerance)
}

func TestDanglingClassification(t *testing.T) {
	// A triangle of three arcs with a spur hanging off one corner. The
	// triangle arcs are cyclic; the spur is dangling and must be
	// disconnected from the adjacency table.
	arcs := []*line{
		arcOf(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}),
		arcOf(geom.Point{X: 10, Y: 0}, geom.Point{X: 5, Y: 8}),
		arcOf(geom.Point{X: 5, Y: 8}, geom.Point{X: 0, Y: 0}),
		arcOf(geom.Point{X: 10, Y: 0}, geom.Point{X: 20, Y: 0}), // spur
	}
	g := newEndnodeGraph(arcs, DefaultTolerance)
	want := []bool{false, false, false, true}
	for i, w := range want {
		if g.dangling[i] != w {
			t.Errorf("dangling[%d] = %v, want %v", i, g.dangling[i], w)
		}
	}
	for n, entries := range g.adj {
		for _, e := range entries {
			if g.dangling[endnodeArc(e.node)] {
				t.Errorf("adj[%d] still points at dangling arc %d", n, endnodeArc(e.node))
			}
		}
	}
}

func TestDanglingChain(t *testing.T) {
	// A chain of arcs reaching a cycle is dangling all the way: removal
	// of the outermost spur exposes the next.
	arcs := []*line{
		arcOf(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}),
		arcOf(geom.Point{X: 10, Y: 0}, geom.Point{X: 5, Y: 8}),
		arcOf(geom.Point{X: 5, Y: 8}, geom.Point{X: 0, Y: 0}),
		arcOf(geom.Point{X: 10, Y: 0}, geom.Point{X: 20, Y: 0}),
		arcOf(geom.Point{X: 20, Y: 0}, geom.Point{X: 30, Y: 0}),
	}
	g := newEndnodeGraph(arcs, DefaultTolerance)
	want := []bool{false, false, false, true, true}
	for i, w := range want {
		if g.dangling[i] != w {
			t.Errorf("dangling[%d] = %v, want %v", i, g.dangling[i], w)
		}
	}
}

func TestClosedArcsSkipGraph(t *testing.T) {
	// A closed arc takes no part in the graph; its endpoints must not
	// appear in any adjacency list of other arcs.
	arcs := []*line{
		arcOf(geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 5}, geom.Point{X: 5, Y: 5}, geom.Point{X: 0, Y: 0}),
		arcOf(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}),
		arcOf(geom.Point{X: 10, Y: 0}, geom.Point{X: 0, Y: 0}),
	}
	g := newEndnodeGraph(arcs, DefaultTolerance)
	for n, entries := range g.adj {
		for _, e := range entries {
			if endnodeArc(e.node) == 0 {
				t.Errorf("adj[%d] links to the closed arc", n)
			}
		}
	}
	if g.dangling[1] || g.dangling[2] {
		t.Error("two-arc cycle classified dangling")
	}
}

func TestTraceRingTriangle(t *testing.T) {
	arcs := []*line{
		arcOf(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}),
		arcOf(geom.Point{X: 10, Y: 0}, geom.Point{X: 5, Y: 8}),
		arcOf(geom.Point{X: 5, Y: 8}, geom.Point{X: 0, Y: 0}),
	}
	g := newEndnodeGraph(arcs, DefaultTolerance)
	fwd, err := g.traceRing(0, true)
	if err != nil {
		t.Fatal(err)
	}
	if fwd == nil {
		t.Fatal("forward trace aborted, want a ring")
	}
	rev, err := g.traceRing(0, false)
	if err != nil {
		t.Fatal(err)
	}
	if rev == nil {
		t.Fatal("reverse trace aborted, want a ring")
	}
	if fwd.sig != rev.sig {
		t.Errorf("signatures differ: %q vs %q", fwd.sig, rev.sig)
	}
	if fwd.clockwise == rev.clockwise {
		t.Error("both traces have the same winding, want opposite")
	}
	if got, want := len(fwd.vertices), 4; got != want {
		t.Errorf("traced ring has %d vertices, want %d", got, want)
	}
	if fwd.vertices[0] != fwd.vertices[len(fwd.vertices)-1] {
		t.Errorf("traced ring is not closed: %v", fwd.vertices)
	}
}

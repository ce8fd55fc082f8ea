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

func TestBuildNoJunctions(t *testing.T) {
	ab := newArcBuilder(DefaultTolerance)
	ab.addPolygon(square(0, 0, 10, 10), 0, sourceA)
	arcs := ab.build()
	if len(arcs) != 1 {
		t.Fatalf("build returned %d arcs, want 1", len(arcs))
	}
	if !arcs[0].closed {
		t.Error("lone ring arc is not closed")
	}
	if got, want := len(arcs[0].vertices), 5; got != want {
		t.Errorf("arc has %d vertices, want %d", got, want)
	}
}

func TestBuildSharedEdge(t *testing.T) {
	// Two squares sharing the full edge x=10. The shared edge must come
	// out as one arc from each source, equal up to direction, so
	// duplicate resolution can cancel or collapse the pair.
	ab := newArcBuilder(DefaultTolerance)
	ab.addPolygon(square(0, 0, 10, 10), 0, sourceA)
	ab.addPolygon(square(10, 0, 20, 10), 0, sourceB)
	arcs := ab.build()
	if len(arcs) != 4 {
		t.Fatalf("build returned %d arcs, want 4", len(arcs))
	}
	var shared []*line
	for _, a := range arcs {
		if len(a.vertices) == 2 {
			shared = append(shared, a)
		}
	}
	if len(shared) != 2 {
		t.Fatalf("found %d two-vertex arcs, want 2 (the shared edge from each source)", len(shared))
	}
	if !shared[0].equalWithin(shared[1], DefaultTolerance) {
		t.Errorf("shared-edge arcs differ: %v vs %v", shared[0].vertices, shared[1].vertices)
	}
	if shared[0].src == shared[1].src {
		t.Error("shared-edge arcs came from the same source")
	}
}

func TestBuildIdempotent(t *testing.T) {
	// Arcs are already split at every junction, so feeding build's
	// output back through a fresh builder must reproduce it unchanged.
	ab := newArcBuilder(DefaultTolerance)
	ab.addPolygon(square(0, 0, 10, 10), 0, sourceA)
	ab.addPolygon(square(40, 0, 50, 10), 1, sourceA)
	ab.addPolygon(square(10, 0, 20, 10), 0, sourceB)
	first := ab.build()

	again := newArcBuilder(DefaultTolerance)
	for _, a := range first {
		again.addLineString(geom.LineString(a.vertices), a.rec, a.src)
	}
	second := again.build()
	if len(second) != len(first) {
		t.Fatalf("rebuild produced %d arcs, want %d", len(second), len(first))
	}
	for i := range first {
		if !first[i].equalWithin(second[i], DefaultTolerance) {
			t.Errorf("arc %d changed on rebuild: %v vs %v", i, first[i].vertices, second[i].vertices)
		}
	}
}

func TestBuildOpenLineJunction(t *testing.T) {
	// Line B touches line A at A's middle vertex. A must split there.
	ab := newArcBuilder(DefaultTolerance)
	ab.addLineString(geom.LineString{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}, 0, sourceA)
	ab.addLineString(geom.LineString{{X: 5, Y: 0}, {X: 5, Y: 5}}, 0, sourceB)
	arcs := ab.build()
	if len(arcs) != 3 {
		t.Fatalf("build returned %d arcs, want 3", len(arcs))
	}
	hits := 0
	for _, a := range arcs {
		if a.first() == (geom.Point{X: 5, Y: 0}) || a.last() == (geom.Point{X: 5, Y: 0}) {
			hits++
		}
	}
	if hits != 3 {
		t.Errorf("%d arcs end at the junction, want 3", hits)
	}
}

func TestRecordRings(t *testing.T) {
	ab := newArcBuilder(DefaultTolerance)
	ab.addPolygon(square(0, 0, 1, 1), 0, sourceA)
	ab.addPolygon(square(2, 0, 3, 1), 1, sourceA)
	ab.addPolygon(square(4, 0, 5, 1), 0, sourceB)
	if got := len(ab.rings[sourceA]); got != 2 {
		t.Errorf("source A has %d ring sets, want 2", got)
	}
	if got := len(ab.rings[sourceB]); got != 1 {
		t.Errorf("source B has %d ring sets, want 1", got)
	}
	solid, hole := ab.rings[sourceA][0].contains(geom.Point{X: 0.5, Y: 0.5})
	if !solid || hole {
		t.Errorf("contains(center) = %v, %v, want true, false", solid, hole)
	}
}

func TestAddPolygonHole(t *testing.T) {
	p := square(0, 0, 10, 10)
	p = append(p, reversePath(square(2, 2, 8, 8)[0]))
	ab := newArcBuilder(DefaultTolerance)
	ab.addPolygon(p, 0, sourceA)
	if got := len(ab.lines); got != 2 {
		t.Fatalf("addPolygon registered %d lines, want 2", got)
	}
	if ab.lines[0].hole {
		t.Error("outer ring flagged as hole")
	}
	if !ab.lines[1].hole {
		t.Error("opposite-winding inner ring not flagged as hole")
	}
	solid, hole := ab.rings[sourceA][0].contains(geom.Point{X: 5, Y: 5})
	if !solid || !hole {
		t.Errorf("contains(hole center) = %v, %v, want true, true", solid, hole)
	}
}

func reversePath(p geom.Path) geom.Path {
	r := make(geom.Path, len(p))
	for i, pt := range p {
		r[len(p)-1-i] = pt
	}
	return r
}

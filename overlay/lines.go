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

// overlayLines overlays two polyline collections. Polylines are split
// into arcs at junctions and crossings exactly like polygon rings, but
// no faces exist to trace: the operation predicate applies directly to
// the surviving arcs.
//
// Under symmetric difference, duplicate resolution has already
// cancelled arcs present in both inputs, so every survivor is kept.
// Union keeps every survivor as well (shared arcs collapsed to one).
// Intersection keeps only shared arcs; erase keeps the first input's
// unshared arcs.
func (op *Operation) overlayLines(a, b Collection) ([]Feature, error) {
	tol := op.tolerance()
	ab := newArcBuilder(tol)
	for rec, f := range a.Features {
		addLineal(ab, f.Geom, rec, sourceA)
	}
	for rec, f := range b.Features {
		addLineal(ab, f.Geom, rec, sourceB)
	}
	op.progress(10)

	arcs := ab.build()
	op.progress(35)
	arcs = resolveCrossings(arcs, tol)
	op.progress(60)
	arcs = resolveDuplicates(arcs, op.Type, tol)
	op.logf("%d line arcs after crossing and duplicate resolution", len(arcs))
	op.progress(80)

	var feats []Feature
	for _, arc := range arcs {
		switch op.Type {
		case OpIntersection:
			if !arc.shared {
				continue
			}
		case OpErase:
			if arc.src != sourceA || arc.shared {
				continue
			}
		}
		ls := make(geom.LineString, len(arc.vertices))
		copy(ls, arc.vertices)
		feats = append(feats, Feature{
			Geom:   ls,
			Fields: recordFields(a, b, arc.src, arc.rec),
		})
	}
	return feats, nil
}

func addLineal(ab *arcBuilder, g geom.Geom, rec int, src source) {
	switch t := g.(type) {
	case geom.LineString:
		ab.addLineString(t, rec, src)
	case geom.MultiLineString:
		ab.addMultiLineString(t, rec, src)
	}
}

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

// overlayPoints overlays two point collections by coincidence within
// the tolerance: a point of one input matches when the other input has
// a point at the same location.
//
// Symmetric difference keeps points present in exactly one input
// (coincident pairs annihilate). Union keeps everything, collapsing a
// coincident pair to the first input's point. Intersection keeps the
// first input's points that have a match; erase keeps those that do
// not. Features whose every vertex is dropped are omitted.
func (op *Operation) overlayPoints(a, b Collection) ([]Feature, error) {
	tol := op.tolerance()
	idxA := pointSourceIndex(a)
	idxB := pointSourceIndex(b)
	op.progress(40)

	matched := func(idx *PointIndex, p geom.Point) bool {
		return len(idx.Search(p, tol)) > 0
	}

	var feats []Feature
	keepA := func(p geom.Point) bool {
		m := matched(idxB, p)
		switch op.Type {
		case OpIntersection:
			return m
		case OpUnion:
			return true
		default: // symmetric difference, erase
			return !m
		}
	}
	for _, f := range a.Features {
		if g := filterPoints(f.Geom, keepA); g != nil {
			feats = append(feats, Feature{Geom: g, Fields: f.Fields})
		}
	}
	op.progress(70)

	if op.Type == OpSymmetricDifference || op.Type == OpUnion {
		keepB := func(p geom.Point) bool {
			return !matched(idxA, p)
		}
		for _, f := range b.Features {
			if g := filterPoints(f.Geom, keepB); g != nil {
				feats = append(feats, Feature{Geom: g, Fields: f.Fields})
			}
		}
	}
	return feats, nil
}

func pointSourceIndex(c Collection) *PointIndex {
	idx := NewPointIndex()
	for rec, f := range c.Features {
		switch t := f.Geom.(type) {
		case geom.Point:
			idx.Add(t, int32(rec))
		case geom.MultiPoint:
			for _, p := range t {
				idx.Add(p, int32(rec))
			}
		}
	}
	return idx
}

// filterPoints applies keep to every vertex of a point geometry,
// preserving the geometry type. Nil means nothing survived.
func filterPoints(g geom.Geom, keep func(geom.Point) bool) geom.Geom {
	switch t := g.(type) {
	case geom.Point:
		if keep(t) {
			return t
		}
	case geom.MultiPoint:
		var mp geom.MultiPoint
		for _, p := range t {
			if keep(p) {
				mp = append(mp, p)
			}
		}
		if len(mp) > 0 {
			return mp
		}
	}
	return nil
}

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

func TestPointsCancelWithinTolerance(t *testing.T) {
	// Coincidence within the tolerance counts as the same point.
	a := named("a", geom.Point{X: 1, Y: 1})
	b := named("b", geom.Point{X: 1 + 1e-10, Y: 1})
	out, err := SymmetricDifference(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Features) != 0 {
		t.Errorf("got %d features, want 0", len(out.Features))
	}
}

func TestPointsSymmetricDifference(t *testing.T) {
	a := coll(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0})
	b := named("x", geom.Point{X: 1, Y: 0})
	out, err := SymmetricDifference(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(out.Features))
	}
	if got := out.Features[0].Geom.(geom.Point); got != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("surviving point = %v, want (0, 0)", got)
	}
}

func TestPointsOperations(t *testing.T) {
	a := named("a", geom.MultiPoint{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
	b := named("b", geom.MultiPoint{{X: 1, Y: 0}, {X: 3, Y: 0}})
	tests := []struct {
		op    OpType
		wantA int // surviving vertices from a's feature
		wantB int // surviving vertices from b's feature
	}{
		{OpSymmetricDifference, 2, 1},
		{OpUnion, 3, 1},
		{OpIntersection, 1, 0},
		{OpErase, 2, 0},
	}
	for _, test := range tests {
		op := &Operation{Type: test.op}
		out, err := op.Overlay(a, b)
		if err != nil {
			t.Fatalf("%v: %v", test.op, err)
		}
		gotA, gotB := 0, 0
		for _, f := range out.Features {
			mp := f.Geom.(geom.MultiPoint)
			if f.Fields["NAME"] == "a" {
				gotA = len(mp)
			} else {
				gotB = len(mp)
			}
		}
		if gotA != test.wantA || gotB != test.wantB {
			t.Errorf("%v: surviving vertices = %d/%d, want %d/%d",
				test.op, gotA, gotB, test.wantA, test.wantB)
		}
	}
}

func TestPointsDropEmptyFeatures(t *testing.T) {
	a := named("a", geom.MultiPoint{{X: 0, Y: 0}})
	b := named("b", geom.MultiPoint{{X: 0, Y: 0}})
	op := &Operation{Type: OpErase}
	out, err := op.Overlay(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Features) != 0 {
		t.Errorf("got %d features, want 0", len(out.Features))
	}
}

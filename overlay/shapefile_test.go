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
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
)

func TestShapefileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.shp")
	in := Collection{Features: []Feature{
		{Geom: square(0, 0, 10, 10), Fields: map[string]string{"NAME": "alpha", "CODE": "1"}},
		{Geom: square(20, 0, 30, 10), Fields: map[string]string{"NAME": "beta", "CODE": "2"}},
	}}
	if err := WriteShapefile(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadShapefile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Features) != len(in.Features) {
		t.Fatalf("read %d features, want %d", len(out.Features), len(in.Features))
	}
	for i, f := range out.Features {
		for _, name := range []string{"NAME", "CODE"} {
			if got, want := f.Fields[name], in.Features[i].Fields[name]; got != want {
				t.Errorf("feature %d field %s = %q, want %q", i, name, got, want)
			}
		}
		got, ok := f.Geom.(geom.Polygonal)
		if !ok {
			t.Fatalf("feature %d decoded as %T, want polygonal", i, f.Geom)
		}
		want := polyArea(in.Features[i].Geom.(geom.Polygon))
		if a := math.Abs(got.Area()); math.Abs(a-want) > 1e-9 {
			t.Errorf("feature %d area = %v, want %v", i, a, want)
		}
	}
}

func TestReadShapefileMissing(t *testing.T) {
	if _, err := ReadShapefile(filepath.Join(t.TempDir(), "nope.shp")); err == nil {
		t.Error("reading a missing shapefile did not fail")
	}
}

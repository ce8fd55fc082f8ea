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
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
)

// PointIndex stores a collection of point/data pairs and answers
// radius queries. It backs coincidence snapping, junction detection,
// and endnode graph construction.
type PointIndex struct {
	tree *rtree.Rtree
	n    int
}

// IndexedPoint is one entry of a PointIndex. It implements geom.Geom
// as a single-point geometry so the rtree can store it directly.
type IndexedPoint struct {
	Point geom.Point
	Data  interface{}
}

// Bounds returns the entry's degenerate bounding box.
func (ip *IndexedPoint) Bounds() *geom.Bounds {
	return &geom.Bounds{Min: ip.Point, Max: ip.Point}
}

// Len returns the number of points in the entry (always 1).
func (ip *IndexedPoint) Len() int { return 1 }

// Points returns an iterator for the entry's single point.
func (ip *IndexedPoint) Points() func() geom.Point {
	return func() geom.Point { return ip.Point }
}

// Similar reports whether g is an entry at the same location within
// tolerance. The payload is not compared.
func (ip *IndexedPoint) Similar(g geom.Geom, tolerance float64) bool {
	o, ok := g.(*IndexedPoint)
	return ok && pointsEqual(ip.Point, o.Point, tolerance)
}

// Transform shifts the entry's point according to t, keeping its
// payload.
func (ip *IndexedPoint) Transform(t proj.Transformer) (geom.Geom, error) {
	g, err := ip.Point.Transform(t)
	if err != nil {
		return nil, err
	}
	return &IndexedPoint{Point: g.(geom.Point), Data: ip.Data}, nil
}

// NewPointIndex creates an empty PointIndex.
func NewPointIndex() *PointIndex {
	return &PointIndex{tree: rtree.NewTree(25, 50)}
}

// Add adds a point and associated data to the index.
func (p *PointIndex) Add(pt geom.Point, data interface{}) {
	p.tree.Insert(&IndexedPoint{Point: pt, Data: data})
	p.n++
}

// NumPoints returns the number of points in the index.
func (p *PointIndex) NumPoints() int { return p.n }

// Search returns every entry within radius of pt. The rtree prunes by
// bounding box; candidates are then filtered by true distance.
func (p *PointIndex) Search(pt geom.Point, radius float64) []*IndexedPoint {
	var out []*IndexedPoint
	for _, s := range p.tree.SearchIntersect(pointBounds(pt, radius)) {
		ip := s.(*IndexedPoint)
		if distance(pt, ip.Point) <= radius {
			out = append(out, ip)
		}
	}
	return out
}

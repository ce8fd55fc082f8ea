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
	"errors"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

var (
	// ErrShapeTypeMismatch is returned when the two input collections
	// carry different base shape types.
	ErrShapeTypeMismatch = errors.New("overlay: input shape types differ")

	// ErrNoFeatures is returned when an input collection contains no
	// usable feature.
	ErrNoFeatures = errors.New("overlay: input collection has no usable features")

	// ErrMalformedTopology is returned when ring tracing reaches an
	// endnode with no adjacency options. Dangling-arc removal makes
	// this unreachable for well-formed input; it is reported rather
	// than silently emitting a malformed polygon.
	ErrMalformedTopology = errors.New("overlay: ring tracing found no adjacency where one was expected")
)

// Feature is one input or output record: a geometry plus its attribute
// record. Attribute values are kept as decoded strings, matching the
// shapefile field model.
type Feature struct {
	Geom   geom.Geom
	Fields map[string]string
}

// Collection is an ordered sequence of features sharing a spatial
// reference. The spatial reference is propagated opaquely to the
// output; the engine never interprets it.
type Collection struct {
	Features []Feature
	SR       *proj.SR
}

// shapeClass is the closed set of base shape types the engine
// dispatches over.
type shapeClass int

const (
	classNone shapeClass = iota
	classPoint
	classLine
	classPolygon
)

func classOf(g geom.Geom) shapeClass {
	switch g.(type) {
	case geom.Point, geom.MultiPoint:
		return classPoint
	case geom.LineString, geom.MultiLineString:
		return classLine
	case geom.Polygon, geom.MultiPolygon:
		return classPolygon
	}
	return classNone
}

// collectionClass returns the base shape type shared by every usable
// feature of c.
func (c Collection) collectionClass() (shapeClass, error) {
	class := classNone
	for _, f := range c.Features {
		if f.Geom == nil {
			continue
		}
		fc := classOf(f.Geom)
		if fc == classNone {
			continue
		}
		if class == classNone {
			class = fc
		} else if class != fc {
			return classNone, ErrShapeTypeMismatch
		}
	}
	if class == classNone {
		return classNone, ErrNoFeatures
	}
	return class, nil
}

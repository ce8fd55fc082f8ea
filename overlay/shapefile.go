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
	"fmt"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// ReadShapefile decodes every record of a shapefile into a Collection,
// keeping all attribute fields as strings. The spatial reference is
// taken from the companion .prj file when one exists.
func ReadShapefile(path string) (Collection, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return Collection{}, fmt.Errorf("overlay: opening %s: %w", path, err)
	}
	defer d.Close()

	fields := d.Reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	var c Collection
	for {
		g, vals, more := d.DecodeRowFields(names...)
		if !more {
			break
		}
		c.Features = append(c.Features, Feature{Geom: g, Fields: vals})
	}
	if err := d.Error(); err != nil {
		return Collection{}, fmt.Errorf("overlay: reading %s: %w", path, err)
	}
	if sr, err := d.SR(); err == nil {
		c.SR = sr
	}
	return c, nil
}

// WriteShapefile encodes a collection to a shapefile. The field schema
// is the union of the attribute names of all features, written as
// string fields in sorted order; the shape type follows the first
// non-nil geometry.
func WriteShapefile(path string, c Collection) error {
	var names []string
	seen := make(map[string]bool)
	for _, f := range c.Features {
		for name := range f.Fields {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	st, err := shapeTypeOf(c)
	if err != nil {
		return err
	}
	fields := make([]goshp.Field, len(names))
	for i, name := range names {
		fields[i] = goshp.StringField(name, 80)
	}
	e, err := shp.NewEncoderFromFields(path, st, fields...)
	if err != nil {
		return fmt.Errorf("overlay: creating %s: %w", path, err)
	}
	for _, f := range c.Features {
		if f.Geom == nil {
			continue
		}
		vals := make([]interface{}, len(names))
		for i, name := range names {
			vals[i] = f.Fields[name]
		}
		if err := e.EncodeFields(f.Geom, vals...); err != nil {
			e.Close()
			return fmt.Errorf("overlay: writing %s: %w", path, err)
		}
	}
	e.Close()
	return nil
}

func shapeTypeOf(c Collection) (goshp.ShapeType, error) {
	class, err := c.collectionClass()
	if err != nil {
		return goshp.NULL, err
	}
	switch class {
	case classPoint:
		for _, f := range c.Features {
			if _, ok := f.Geom.(geom.MultiPoint); ok {
				return goshp.MULTIPOINT, nil
			}
		}
		return goshp.POINT, nil
	case classLine:
		return goshp.POLYLINE, nil
	default:
		return goshp.POLYGON, nil
	}
}

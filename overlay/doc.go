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

/*
Package overlay computes Boolean set operations between two collections
of planar vector features.

The engine reconstructs the arrangement induced by the edges of both
inputs: rings and lines are split into arcs at junction vertices and at
segment crossings, arc endpoints are linked into an endnode graph with
turning angles, dangling arcs are removed, and the faces of the
arrangement are traced by the rightmost-turn rule. Each traced ring is
classified against the original inputs by point-in-polygon containment,
and the overlay predicate (symmetric difference, union, intersection,
or erase) decides whether it becomes an output boundary or a hole of
another output feature.

Coordinates are compared with a snapping tolerance rather than exact
predicates; the tolerance is carried in Operation and defaults to
DefaultTolerance. Geometry is exchanged as github.com/ctessum/geom
values, so the package interoperates directly with shapefile and other
codecs built on that library.
*/
package overlay

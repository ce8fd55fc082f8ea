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
	"runtime"
	"sync"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// OpType selects the set operation an overlay computes.
type OpType int

const (
	// OpSymmetricDifference keeps geometry covered by exactly one input.
	OpSymmetricDifference OpType = iota
	// OpUnion keeps geometry covered by either input.
	OpUnion
	// OpIntersection keeps geometry covered by both inputs.
	OpIntersection
	// OpErase keeps geometry of the first input not covered by the
	// second.
	OpErase
)

func (t OpType) String() string {
	switch t {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpErase:
		return "erase"
	default:
		return "symmetric difference"
	}
}

// Operation holds the parameters of one overlay computation. The zero
// value computes a symmetric difference with the default tolerance on
// all CPUs.
type Operation struct {
	// Type is the set operation to compute.
	Type OpType

	// Tolerance is the coincidence tolerance; vertices closer than this
	// are one point. Zero or negative selects DefaultTolerance.
	Tolerance float64

	// Workers bounds the number of concurrent ring-tracing goroutines.
	// Zero or negative selects runtime.NumCPU().
	Workers int

	// Verbose enables progress logging through Log.
	Verbose bool

	// Log receives progress messages when Verbose is set. Nil selects
	// the standard logger.
	Log logrus.FieldLogger

	// Progress, when non-nil, is called with a completion percentage as
	// the computation advances.
	Progress func(percent int)
}

// SymmetricDifference overlays two collections with the default
// parameters, keeping the parts of each input not covered by the other.
func SymmetricDifference(a, b Collection) (Collection, error) {
	op := &Operation{Type: OpSymmetricDifference}
	return op.Overlay(a, b)
}

// Overlay computes the operation's set overlay of collections a and b.
// Both collections must share a base shape type; the result carries a's
// spatial reference. Features of the two inputs that do not interact
// pass through with their vertices unchanged.
func (op *Operation) Overlay(a, b Collection) (Collection, error) {
	ca, err := a.collectionClass()
	if err != nil {
		return Collection{}, err
	}
	cb, err := b.collectionClass()
	if err != nil {
		return Collection{}, err
	}
	if ca != cb {
		return Collection{}, ErrShapeTypeMismatch
	}

	op.logf("%s of %d and %d features", op.Type, len(a.Features), len(b.Features))
	out := Collection{SR: a.SR}
	switch ca {
	case classPolygon:
		out.Features, err = op.overlayPolygons(a, b)
	case classLine:
		out.Features, err = op.overlayLines(a, b)
	default:
		out.Features, err = op.overlayPoints(a, b)
	}
	if err != nil {
		return Collection{}, err
	}
	op.progress(100)
	op.logf("done: %d output features", len(out.Features))
	return out, nil
}

func (op *Operation) tolerance() float64 {
	if op.Tolerance > 0 {
		return op.Tolerance
	}
	return DefaultTolerance
}

func (op *Operation) workers() int {
	if op.Workers > 0 {
		return op.Workers
	}
	return runtime.NumCPU()
}

func (op *Operation) progress(pct int) {
	if op.Progress != nil {
		op.Progress(pct)
	}
}

func (op *Operation) logf(format string, args ...interface{}) {
	if !op.Verbose {
		return
	}
	l := op.Log
	if l == nil {
		l = logrus.StandardLogger()
	}
	l.Infof(format, args...)
}

// traceJob is one unit of ring-tracing work: either a walk from one end
// of an open arc, or a ready-made ring seeded from a closed arc.
type traceJob struct {
	arc     int
	fromEnd bool
	seed    *ringCandidate
}

// overlayPolygons runs the full arrangement pipeline: arcs, crossing
// and duplicate resolution, the endnode graph, concurrent ring tracing
// and classification, then a deterministic sequential merge.
func (op *Operation) overlayPolygons(a, b Collection) ([]Feature, error) {
	tol := op.tolerance()
	ab := newArcBuilder(tol)
	for rec, f := range a.Features {
		addPolygonal(ab, f.Geom, rec, sourceA)
	}
	for rec, f := range b.Features {
		addPolygonal(ab, f.Geom, rec, sourceB)
	}
	op.progress(5)

	arcs := ab.build()
	op.logf("split input rings into %d arcs", len(arcs))
	op.progress(20)
	arcs = resolveCrossings(arcs, tol)
	op.progress(35)
	arcs = resolveDuplicates(arcs, op.Type, tol)
	op.logf("%d arcs after crossing and duplicate resolution", len(arcs))
	op.progress(45)

	g := newEndnodeGraph(arcs, tol)
	op.progress(55)

	var jobs []traceJob
	var closedIdx []int
	for i, arc := range arcs {
		if arc.closed {
			closedIdx = append(closedIdx, i)
			continue
		}
		if g.dangling[i] {
			continue
		}
		jobs = append(jobs, traceJob{arc: i, fromEnd: true}, traceJob{arc: i, fromEnd: false})
	}
	for _, rc := range closedArcRings(arcs, closedIdx) {
		jobs = append(jobs, traceJob{seed: rc})
	}
	op.logf("tracing %d ring candidates on %d workers", len(jobs), op.workers())

	results := make([]*classifiedRing, len(jobs))
	errs := make([]error, len(jobs))
	ch := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < op.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range ch {
				j := jobs[k]
				ring := j.seed
				if ring == nil {
					var err error
					ring, err = g.traceRing(j.arc, j.fromEnd)
					if err != nil {
						errs[k] = err
						continue
					}
				}
				if ring != nil {
					results[k] = classifyRing(ring, &ab.rings)
				}
			}
		}()
	}
	for k := range jobs {
		ch <- k
	}
	close(ch)
	wg.Wait()
	op.progress(85)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return op.mergeRings(a, b, arcs, results)
}

// mergeRings walks the classified ring candidates in job order, applies
// the operation predicate and both deduplication sets, caps each arc at
// its two faces, and attaches hull candidates as holes.
func (op *Operation) mergeRings(a, b Collection, arcs []*line, results []*classifiedRing) ([]Feature, error) {
	existingPolygons := make(map[string]bool)
	existingHull := make(map[string]bool)
	assigned := make([]int, len(arcs))
	var outs []*outPolygon
	var hulls []*classifiedRing

	canAssign := func(r *ringCandidate) bool {
		for _, j := range r.arcs {
			if assigned[j] >= 2 {
				return false
			}
		}
		return true
	}
	assign := func(r *ringCandidate) {
		for _, j := range r.arcs {
			assigned[j]++
		}
	}

	for _, cr := range results {
		if cr == nil || !cr.ok {
			continue
		}
		r := cr.ring
		if r.clockwise && op.Type.keep(cr.inside[sourceA], cr.inside[sourceB]) {
			if existingPolygons[r.sig] || !canAssign(r) {
				continue
			}
			existingPolygons[r.sig] = true
			assign(r)
			src, rec := op.Type.winner(cr)
			outs = append(outs, newOutPolygon(cr, src, rec))
			continue
		}
		if existingHull[r.sig] || !canAssign(r) {
			continue
		}
		existingHull[r.sig] = true
		assign(r)
		hulls = append(hulls, cr)
	}
	op.logf("accepted %d rings, %d hull candidates", len(outs), len(hulls))
	assignHulls(outs, hulls)
	op.progress(95)

	feats := make([]Feature, 0, len(outs))
	for _, o := range outs {
		p := geom.Polygon{geom.Path(o.outer)}
		for _, h := range o.holes {
			p = append(p, geom.Path(h))
		}
		feats = append(feats, Feature{Geom: p, Fields: recordFields(a, b, o.src, o.rec)})
	}
	return feats, nil
}

// addPolygonal feeds one polygonal geometry into the arc builder.
func addPolygonal(ab *arcBuilder, g geom.Geom, rec int, src source) {
	switch t := g.(type) {
	case geom.Polygon:
		ab.addPolygon(t, rec, src)
	case geom.MultiPolygon:
		ab.addMultiPolygon(t, rec, src)
	}
}

// recordFields returns the attribute record the given source and index
// refer to.
func recordFields(a, b Collection, src source, rec int) map[string]string {
	c := a
	if src == sourceB {
		c = b
	}
	if rec < 0 || rec >= len(c.Features) {
		return nil
	}
	return c.Features[rec].Fields
}

package overlay

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"

	"github.com/ctessum/geom"
)

// BaseBatchMinMax computes the minimum and maximum values in a slice.
// Used for computing bounding boxes of raw coordinate runs without
// allocating intermediate geometry.
func BaseBatchMinMax[T hwy.Floats](data []T) (minVal, maxVal T) {
	if len(data) == 0 {
		return 0, 0
	}

	// Initialize with the first value broadcast so that the reduction
	// never mixes in lanes that were zero-filled by a masked load.
	initial := data[0]
	vMin := hwy.Set(initial)
	vMax := hwy.Set(initial)

	hwy.ProcessWithTail[T](len(data),
		func(offset int) {
			v := hwy.Load(data[offset:])
			vMin = hwy.Min(vMin, v)
			vMax = hwy.Max(vMax, v)
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			v := hwy.MaskLoad(mask, data[offset:])

			vMinSafe := hwy.IfThenElse(mask, v, vMin)
			vMaxSafe := hwy.IfThenElse(mask, v, vMax)

			vMin = hwy.Min(vMin, vMinSafe)
			vMax = hwy.Max(vMax, vMaxSafe)
		},
	)

	return hwy.ReduceMin(vMin), hwy.ReduceMax(vMax)
}

// boundsOfPoints returns the bounding box of a vertex run, computed as
// two batch reductions over the coordinate slices (SoA layout).
func boundsOfPoints(pts []geom.Point) *geom.Bounds {
	if len(pts) == 0 {
		return geom.NewBounds()
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	xMin, xMax := BaseBatchMinMax(xs)
	yMin, yMax := BaseBatchMinMax(ys)
	return &geom.Bounds{
		Min: geom.Point{X: xMin, Y: yMin},
		Max: geom.Point{X: xMax, Y: yMax},
	}
}

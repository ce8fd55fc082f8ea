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

// Command planarclip computes set overlays of pairs of shapefiles:
// symmetric difference, union, intersection, and erase.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialkit/planar/overlay"
)

var (
	inputA    string
	inputB    string
	output    string
	tolerance float64
	workers   int
	verbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "planarclip",
		Short: "set overlays of vector shapefiles",
		Long: `planarclip overlays two shapefiles of the same shape type and writes
the result to a new shapefile. Inputs may be polygons, polylines, or
points; output attributes are taken from the input that contributed
each piece of geometry.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&inputA, "input", "a", "", "first input shapefile (required)")
	root.PersistentFlags().StringVarP(&inputB, "overlay", "b", "", "second input shapefile (required)")
	root.PersistentFlags().StringVarP(&output, "output", "o", "", "output shapefile (required)")
	root.PersistentFlags().Float64Var(&tolerance, "tolerance", 0, "coincidence tolerance (0 selects the default)")
	root.PersistentFlags().IntVar(&workers, "workers", 0, "worker goroutines (0 selects all CPUs)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress")

	for _, c := range []struct {
		use, short string
		op         overlay.OpType
	}{
		{"symdiff", "keep geometry covered by exactly one input", overlay.OpSymmetricDifference},
		{"union", "keep geometry covered by either input", overlay.OpUnion},
		{"intersect", "keep geometry covered by both inputs", overlay.OpIntersection},
		{"erase", "keep geometry of the first input not covered by the second", overlay.OpErase},
	} {
		op := c.op
		root.AddCommand(&cobra.Command{
			Use:   c.use,
			Short: c.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(op)
			},
		})
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(t overlay.OpType) error {
	if inputA == "" || inputB == "" || output == "" {
		return fmt.Errorf("the --input, --overlay, and --output flags are all required")
	}
	log := logrus.StandardLogger()

	a, err := overlay.ReadShapefile(inputA)
	if err != nil {
		return err
	}
	b, err := overlay.ReadShapefile(inputB)
	if err != nil {
		return err
	}
	if verbose {
		log.WithFields(logrus.Fields{
			"a": len(a.Features),
			"b": len(b.Features),
		}).Info("decoded input features")
	}

	op := &overlay.Operation{
		Type:      t,
		Tolerance: tolerance,
		Workers:   workers,
		Verbose:   verbose,
		Log:       log,
	}
	out, err := op.Overlay(a, b)
	if err != nil {
		return err
	}
	if err := overlay.WriteShapefile(output, out); err != nil {
		return err
	}
	copyProjection(inputA, output)
	if verbose {
		log.WithField("features", len(out.Features)).Info("wrote output")
	}
	return nil
}

// copyProjection carries the first input's .prj companion file over to
// the output, when one exists. The overlay never reprojects.
func copyProjection(in, out string) {
	prj, err := os.ReadFile(replaceExt(in, ".prj"))
	if err != nil {
		return
	}
	os.WriteFile(replaceExt(out, ".prj"), prj, 0o644)
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i] + ext
	}
	return path + ext
}

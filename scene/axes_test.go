/*
 * axes_test.go, part of goCryst.
 *
 * Copyright 2025 The goCryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package scene

import (
	"math"
	"testing"

	cryst "github.com/crystkit/gocryst"
)

func cubicLattice(Te *testing.T, a float64) *cryst.Lattice {
	lat, err := cryst.NewLattice([]float64{a, 0, 0, 0, a, 0, 0, 0, a})
	if err != nil {
		Te.Fatal(err)
	}
	return lat
}

func arrowTip(Te *testing.T, node *Node, i int) []float64 {
	if i >= len(node.Contents) {
		Te.Fatalf("axes node has only %d arrows", len(node.Contents))
	}
	arrow := node.Contents[i]
	if arrow.Type != TypeArrows {
		Te.Fatalf("arrow %d has type %q", i, arrow.Type)
	}
	if len(arrow.PositionPairs) != 1 || len(arrow.PositionPairs[0]) != 2 {
		Te.Fatalf("arrow %d has malformed positionPairs: %v", i, arrow.PositionPairs)
	}
	return arrow.PositionPairs[0][1]
}

func norm3(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func TestAxesLatticeMode(Te *testing.T) {
	sc := &Scene{Name: "test"}
	appendAxes(sc, cubicLattice(Te, 4.0))
	node := sc.FindNode("axes")
	if node == nil {
		Te.Fatal("no axes node appended")
	}
	if !node.Visible {
		Te.Error("axes node should be visible")
	}
	if len(node.Contents) != 3 {
		Te.Fatalf("expected 3 arrows, got %d", len(node.Contents))
	}
	colors := []string{"red", "green", "blue"}
	for i := 0; i < 3; i++ {
		tip := arrowTip(Te, node, i)
		if l := norm3(tip); math.Abs(l-1.6) > 1e-9 {
			Te.Errorf("arrow %d length %f, want 1.6", i, l)
		}
		if node.Contents[i].Color != colors[i] {
			Te.Errorf("arrow %d color %q, want %q", i, node.Contents[i].Color, colors[i])
		}
		if node.Contents[i].HeadLength != 0.32 || node.Contents[i].HeadWidth != 0.18 {
			Te.Errorf("arrow %d head geometry %f/%f", i, node.Contents[i].HeadLength, node.Contents[i].HeadWidth)
		}
		if node.Contents[i].Radius != 0.07 {
			Te.Errorf("arrow %d radius %f", i, node.Contents[i].Radius)
		}
	}
	//the arrows follow the lattice directions, here the Cartesian axes
	tip := arrowTip(Te, node, 0)
	if math.Abs(tip[0]-1.6) > 1e-9 || tip[1] != 0 || tip[2] != 0 {
		Te.Errorf("first arrow tip %v", tip)
	}
}

func TestAxesCartesianMode(Te *testing.T) {
	Te.Setenv(EnvAxesMode, "cartesian")
	//a sheared lattice: in cartesian mode it must be ignored
	lat, err := cryst.NewLattice([]float64{4, 1, 0, 0, 4, 1, 1, 0, 4})
	if err != nil {
		Te.Fatal(err)
	}
	sc := &Scene{}
	appendAxes(sc, lat)
	node := sc.FindNode("axes")
	if node == nil {
		Te.Fatal("no axes node appended")
	}
	want := [][]float64{{1.6, 0, 0}, {0, 1.6, 0}, {0, 0, 1.6}}
	for i := 0; i < 3; i++ {
		tip := arrowTip(Te, node, i)
		for k := 0; k < 3; k++ {
			if math.Abs(tip[k]-want[i][k]) > 1e-9 {
				Te.Errorf("arrow %d tip %v, want %v", i, tip, want[i])
			}
		}
	}
}

func TestAxesEnvOverrides(Te *testing.T) {
	Te.Setenv(EnvAxesScale, "2.5")
	Te.Setenv(EnvAxesHeadLength, "0.5")
	Te.Setenv(EnvAxesHeadWidth, "0.25")
	Te.Setenv(EnvAxesRadius, "0.1")
	sc := &Scene{}
	appendAxes(sc, cubicLattice(Te, 3.0))
	node := sc.FindNode("axes")
	if node == nil {
		Te.Fatal("no axes node appended")
	}
	tip := arrowTip(Te, node, 1)
	if l := norm3(tip); math.Abs(l-2.5) > 1e-9 {
		Te.Errorf("arrow length %f, want 2.5", l)
	}
	a := node.Contents[0]
	if a.HeadLength != 0.5 || a.HeadWidth != 0.25 || a.Radius != 0.1 {
		Te.Errorf("arrow geometry %f/%f/%f", a.HeadLength, a.HeadWidth, a.Radius)
	}
}

func TestAxesZeroLatticeRow(Te *testing.T) {
	lat, err := cryst.NewLattice([]float64{4, 0, 0, 0, 0, 0, 0, 0, 4})
	if err != nil {
		Te.Fatal(err)
	}
	sc := &Scene{}
	appendAxes(sc, lat)
	node := sc.FindNode("axes")
	if node == nil {
		Te.Fatal("no axes node appended")
	}
	tip := arrowTip(Te, node, 1)
	if norm3(tip) != 0 {
		Te.Errorf("degenerate row should give a zero-length arrow, got %v", tip)
	}
}

func TestAxesNilLattice(Te *testing.T) {
	sc := &Scene{Contents: []*Node{{Name: "atoms"}}}
	appendAxes(sc, nil)
	if len(sc.Contents) != 1 {
		Te.Errorf("nil lattice should leave the scene untouched, got %d nodes", len(sc.Contents))
	}
}

func TestAxesBadEnvSkips(Te *testing.T) {
	Te.Setenv(EnvAxesScale, "not-a-number")
	sc := &Scene{}
	appendAxes(sc, cubicLattice(Te, 3.0))
	if sc.FindNode("axes") != nil {
		Te.Error("unparsable config should skip the axes, not add them")
	}
}

func TestAxesOriginFollowsScene(Te *testing.T) {
	sc := &Scene{Origin: []float64{-1, -2, -3}}
	appendAxes(sc, cubicLattice(Te, 3.0))
	node := sc.FindNode("axes")
	if node == nil {
		Te.Fatal("no axes node appended")
	}
	for k, want := range []float64{-1, -2, -3} {
		if node.Origin[k] != want {
			Te.Fatalf("axes origin %v", node.Origin)
		}
	}
}

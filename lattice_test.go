/*
 * lattice_test.go, part of goCryst.
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

package cryst

import (
	"math"
	"testing"
)

func TestLatticeFromParameters(Te *testing.T) {
	lat, err := NewLatticeFromParameters(4, 5, 6, 90, 90, 90)
	if err != nil {
		Te.Fatal(err)
	}
	l := lat.Lengths()
	for i, want := range []float64{4, 5, 6} {
		if math.Abs(l[i]-want) > 1e-9 {
			Te.Errorf("length %d: got %f, want %f", i, l[i], want)
		}
	}
	a := lat.Angles()
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-90) > 1e-9 {
			Te.Errorf("angle %d: got %f", i, a[i])
		}
	}
	if math.Abs(lat.Volume()-120) > 1e-9 {
		Te.Errorf("volume: got %f", lat.Volume())
	}
}

func TestLatticeHexagonal(Te *testing.T) {
	lat, err := NewLatticeFromParameters(3, 3, 5, 90, 90, 120)
	if err != nil {
		Te.Fatal(err)
	}
	l := lat.Lengths()
	if math.Abs(l[0]-3) > 1e-9 || math.Abs(l[1]-3) > 1e-9 || math.Abs(l[2]-5) > 1e-9 {
		Te.Errorf("lengths: got %v", l)
	}
	a := lat.Angles()
	if math.Abs(a[2]-120) > 1e-6 {
		Te.Errorf("gamma: got %f", a[2])
	}
	//hexagonal volume is a*a*c*sqrt(3)/2
	want := 3.0 * 3.0 * 5.0 * math.Sqrt(3) / 2
	if math.Abs(lat.Volume()-want) > 1e-9 {
		Te.Errorf("volume: got %f, want %f", lat.Volume(), want)
	}
}

func TestLatticeCartesian(Te *testing.T) {
	lat, err := NewLattice([]float64{2, 0, 0, 0, 4, 0, 0, 0, 8})
	if err != nil {
		Te.Fatal(err)
	}
	c := lat.Cartesian([]float64{0.5, 0.5, 0.5})
	want := []float64{1, 2, 4}
	for i := 0; i < 3; i++ {
		if math.Abs(c[i]-want[i]) > 1e-9 {
			Te.Errorf("cartesian: got %v, want %v", c, want)
		}
	}
}

func TestLatticeBadParameters(Te *testing.T) {
	if _, err := NewLatticeFromParameters(-1, 5, 6, 90, 90, 90); err == nil {
		Te.Error("expected an error for a negative cell length")
	}
	if _, err := NewLattice([]float64{1, 2, 3}); err == nil {
		Te.Error("expected an error for a short slice")
	}
}

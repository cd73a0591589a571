/*
 * lattice.go, part of goCryst.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Deg2Rad is a multiplication factor to convert degrees to radians.
const Deg2Rad = math.Pi / 180.0

// Lattice represents the periodic cell of a structure. The underlying
// matrix is row-major: each row is one lattice basis vector, in
// Cartesian Angstroms.
type Lattice struct {
	m *mat.Dense //3x3
}

// NewLattice builds a lattice from a row-major 9-element slice.
// It returns an error if the slice doesn't have 9 elements.
func NewLattice(rowmajor []float64) (*Lattice, error) {
	if len(rowmajor) != 9 {
		return nil, fmt.Errorf("NewLattice: need 9 elements, got %d", len(rowmajor))
	}
	d := make([]float64, 9)
	copy(d, rowmajor)
	return &Lattice{m: mat.NewDense(3, 3, d)}, nil
}

// NewLatticeFromParameters builds a lattice from cell lengths (Angstrom) and
// angles (degrees), using the usual crystallographic convention: a along x,
// b in the xy plane.
func NewLatticeFromParameters(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, fmt.Errorf("NewLatticeFromParameters: non-positive cell length (%4.2f %4.2f %4.2f)", a, b, c)
	}
	ca := math.Cos(alpha * Deg2Rad)
	cb := math.Cos(beta * Deg2Rad)
	cg := math.Cos(gamma * Deg2Rad)
	sg := math.Sin(gamma * Deg2Rad)
	if sg == 0 {
		return nil, fmt.Errorf("NewLatticeFromParameters: degenerate gamma angle %4.2f", gamma)
	}
	cxs := (ca - cb*cg) / sg //the x-component term of the c vector, divided by c
	czarg := 1 - cb*cb - cxs*cxs
	if czarg < 0 {
		return nil, fmt.Errorf("NewLatticeFromParameters: inconsistent cell angles (%4.2f %4.2f %4.2f)", alpha, beta, gamma)
	}
	return NewLattice([]float64{
		a, 0, 0,
		b * cg, b * sg, 0,
		c * cb, c * cxs, c * math.Sqrt(czarg),
	})
}

// Copy returns a deep copy of the lattice.
func (L *Lattice) Copy() *Lattice {
	n := mat.NewDense(3, 3, nil)
	n.Copy(L.m)
	return &Lattice{m: n}
}

// Matrix returns the 3x3 basis matrix of the lattice. The caller must not
// modify the returned matrix.
func (L *Lattice) Matrix() *mat.Dense {
	return L.m
}

// Row returns the ith basis vector as a 3-element slice.
// Panics if i is not 0, 1 or 2.
func (L *Lattice) Row(i int) []float64 {
	if i < 0 || i > 2 {
		panic("cryst: requested lattice Row out of bounds")
	}
	return mat.Row(nil, i, L.m)
}

// Cartesian converts a fractional coordinate to Cartesian: frac * M,
// with M the row-major basis matrix.
func (L *Lattice) Cartesian(frac []float64) []float64 {
	v := mat.NewDense(1, 3, []float64{frac[0], frac[1], frac[2]})
	r := mat.NewDense(1, 3, nil)
	r.Mul(v, L.m)
	return mat.Row(nil, 0, r)
}

// Lengths returns the norms of the three basis vectors.
func (L *Lattice) Lengths() [3]float64 {
	var ret [3]float64
	for i := 0; i < 3; i++ {
		ret[i] = mat.Norm(L.m.RowView(i), 2)
	}
	return ret
}

// Angles returns the cell angles alpha, beta, gamma, in degrees.
// A zero-length basis vector yields a zero for the angles involving it.
func (L *Lattice) Angles() [3]float64 {
	l := L.Lengths()
	var ret [3]float64
	pairs := [3][2]int{{1, 2}, {0, 2}, {0, 1}} //alpha is the angle b^c, and so on
	for i, p := range pairs {
		if l[p[0]] == 0 || l[p[1]] == 0 {
			continue
		}
		dot := mat.Dot(L.m.RowView(p[0]), L.m.RowView(p[1]))
		cos := dot / (l[p[0]] * l[p[1]])
		cos = math.Max(-1, math.Min(1, cos)) //numerical noise can push |cos| over 1
		ret[i] = math.Acos(cos) / Deg2Rad
	}
	return ret
}

// Volume returns the cell volume, the absolute value of the determinant
// of the basis matrix.
func (L *Lattice) Volume() float64 {
	return math.Abs(mat.Det(L.m))
}

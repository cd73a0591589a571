/*
 * cryst.go, part of goCryst.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

/**Note: Some accessors here panic instead of returning errors. They are "fundamental"
 * functions: if something goes wrong in them, the program is way-most likely wrong
 * and should crash. The panics are related to out-of-bounds access on a structure.**/

// Atom contains the immutable, per-species information of an atomic site:
// everything except for the position, which lives in the Site.
type Atom struct {
	Symbol    string  //element symbol, e.g. "Si"
	Label     string  //site label from the source file, e.g. "Si1". May be empty.
	Occupancy float64 //site occupancy, 1.0 if the file doesn't say otherwise.
	Charge    float64
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("cryst: attempted to copy a nil atom")
	}
	at := new(Atom)
	*at = *A
	return at
}

// Site is one atomic site of a periodic structure: an Atom plus its
// fractional coordinate in the lattice basis.
type Site struct {
	*Atom
	Frac []float64 //fractional coordinate, len 3
}

// Copy returns a deep copy of the site.
func (S *Site) Copy() *Site {
	f := make([]float64, 3)
	copy(f, S.Frac)
	return &Site{Atom: S.Atom.Copy(), Frac: f}
}

// Structure is a set of atomic sites, optionally periodic. A nil Lattice
// means a bare (non-periodic) collection of sites whose Frac coordinates
// are taken as Cartesian.
type Structure struct {
	Lattice *Lattice
	Sites   []*Site
}

// NewStructure assembles a structure from a lattice and sites. It returns an
// error on a nil or empty site list. The lattice may be nil.
func NewStructure(lat *Lattice, sites []*Site) (*Structure, error) {
	if len(sites) == 0 {
		return nil, fmt.Errorf("NewStructure: supplied an empty site list")
	}
	for i, v := range sites {
		if v == nil || v.Atom == nil || len(v.Frac) != 3 {
			return nil, fmt.Errorf("NewStructure: malformed site %d", i)
		}
	}
	return &Structure{Lattice: lat, Sites: sites}, nil
}

// Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.Sites)
}

// Site returns the site corresponding to the index i.
// Panics if out of range.
func (S *Structure) Site(i int) *Site {
	if i < 0 || i >= S.Len() {
		panic("cryst: requested Site out of bounds")
	}
	return S.Sites[i]
}

// AppendSite appends a site at the end of the structure.
func (S *Structure) AppendSite(s *Site) {
	S.Sites = append(S.Sites, s)
}

// Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	ns := &Structure{Sites: make([]*Site, S.Len())}
	if S.Lattice != nil {
		ns.Lattice = S.Lattice.Copy()
	}
	for i, v := range S.Sites {
		ns.Sites[i] = v.Copy()
	}
	return ns
}

// CartesianCoords returns a Len x 3 matrix with the Cartesian coordinates of
// every site, in site order. With a nil lattice the fractional coordinates
// are returned as they are.
func (S *Structure) CartesianCoords() *mat.Dense {
	ret := mat.NewDense(S.Len(), 3, nil)
	for i, v := range S.Sites {
		if S.Lattice == nil {
			ret.SetRow(i, v.Frac)
			continue
		}
		ret.SetRow(i, S.Lattice.Cartesian(v.Frac))
	}
	return ret
}

// Species returns the distinct element symbols present in the structure,
// in order of first appearance.
func (S *Structure) Species() []string {
	seen := make(map[string]bool)
	ret := make([]string, 0, 4)
	for _, v := range S.Sites {
		if !seen[v.Symbol] {
			seen[v.Symbol] = true
			ret = append(ret, v.Symbol)
		}
	}
	return ret
}

// Formula returns a plain chemical formula for the structure ("Si3 O6"),
// with the element symbols sorted alphabetically.
func (S *Structure) Formula() string {
	count := make(map[string]int)
	for _, v := range S.Sites {
		count[v.Symbol]++
	}
	symbols := make([]string, 0, len(count))
	for k := range count {
		symbols = append(symbols, k)
	}
	sort.Strings(symbols)
	parts := make([]string, 0, len(symbols))
	for _, v := range symbols {
		parts = append(parts, fmt.Sprintf("%s%d", v, count[v]))
	}
	return strings.Join(parts, " ")
}

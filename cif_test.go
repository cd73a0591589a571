/*
 * cif_test.go, part of goCryst.
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

const cscl = `data_CsCl
_cell_length_a    4.11
_cell_length_b    4.11
_cell_length_c    4.11
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
loop_
_atom_site_label
_atom_site_type_symbol
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
Cs1 Cs 0.0 0.0 0.0
Cl1 Cl 0.5 0.5 0.5
`

func TestCIFStringRead(Te *testing.T) {
	s, err := CIFStringRead(cscl)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 2 {
		Te.Errorf("expected 2 sites, got %d", s.Len())
	}
	if s.Lattice == nil {
		Te.Fatal("expected a lattice")
	}
	l := s.Lattice.Lengths()
	for i := 0; i < 3; i++ {
		if math.Abs(l[i]-4.11) > 1e-6 {
			Te.Errorf("cell length %d: got %f", i, l[i])
		}
	}
	if s.Site(0).Symbol != "Cs" || s.Site(1).Symbol != "Cl" {
		Te.Errorf("wrong species: %s %s", s.Site(0).Symbol, s.Site(1).Symbol)
	}
	if s.Formula() != "Cl1 Cs1" {
		Te.Errorf("wrong formula %q", s.Formula())
	}
}

func TestCIFFileRead(Te *testing.T) {
	s, err := CIFFileRead("test/NaCl.cif")
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 8 {
		Te.Errorf("expected 8 sites, got %d", s.Len())
	}
	//the file carries comments, quoted items and occupancies; make sure
	//they ended up where they should
	if s.Site(0).Occupancy != 1.0 {
		Te.Errorf("occupancy not read: %f", s.Site(0).Occupancy)
	}
	vol := s.Lattice.Volume()
	want := 5.6402 * 5.6402 * 5.6402
	if math.Abs(vol-want) > 1e-3 {
		Te.Errorf("cell volume: got %f, want %f", vol, want)
	}
}

func TestCIFSymmetryExpansion(Te *testing.T) {
	content := `data_sym
_cell_length_a    6.0
_cell_length_b    6.0
_cell_length_c    6.0
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
loop_
_symmetry_equiv_pos_as_xyz
'x, y, z'
'-x, -y, -z'
'x+1/2, y+1/2, z'
loop_
_atom_site_label
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
C1 0.25 0.25 0.25
`
	s, err := CIFStringRead(content)
	if err != nil {
		Te.Fatal(err)
	}
	//(0.25 0.25 0.25), (0.75 0.75 0.75) and (0.75 0.75 0.25)
	if s.Len() != 3 {
		Te.Fatalf("expected 3 expanded sites, got %d", s.Len())
	}
	want := [][]float64{{0.25, 0.25, 0.25}, {0.75, 0.75, 0.75}, {0.75, 0.75, 0.25}}
	for i, w := range want {
		for k := 0; k < 3; k++ {
			if math.Abs(s.Site(i).Frac[k]-w[k]) > 1e-6 {
				Te.Errorf("site %d: got %v, want %v", i, s.Site(i).Frac, w)
			}
		}
	}
	for _, site := range s.Sites {
		if site.Symbol != "C" {
			Te.Errorf("symbol not derived from label: %q", site.Symbol)
		}
	}
}

func TestCIFEquivalentPositionsDeduplicated(Te *testing.T) {
	content := `data_dedup
_cell_length_a    4.0
_cell_length_b    4.0
_cell_length_c    4.0
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
loop_
_symmetry_equiv_pos_as_xyz
'x, y, z'
'-x, -y, -z'
loop_
_atom_site_label
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
Fe1 0.0 0.0 0.0
`
	s, err := CIFStringRead(content)
	if err != nil {
		Te.Fatal(err)
	}
	//-0 wraps onto 0, so the inversion image collapses onto the original
	if s.Len() != 1 {
		Te.Errorf("expected 1 site after dedup, got %d", s.Len())
	}
}

func TestCIFMalformed(Te *testing.T) {
	for _, content := range []string{
		"",
		"this is not a cif at all",
		"data_x\n_cell_length_a banana\n",
		cscl[:150], //cell but no atom sites
	} {
		_, err := CIFStringRead(content)
		if err == nil {
			Te.Errorf("expected an error for %q", content)
			continue
		}
		if ErrorStatus(err) != 400 {
			Te.Errorf("expected status 400, got %d (%v)", ErrorStatus(err), err)
		}
	}
}

func TestCIFNumberWithUncertainty(Te *testing.T) {
	f, err := cifFloat("4.916(2)")
	if err != nil {
		Te.Fatal(err)
	}
	if f != 4.916 {
		Te.Errorf("got %f", f)
	}
}

func TestSymOpParsing(Te *testing.T) {
	op, err := parseSymOp("-y+1/2, x-y, z+0.25")
	if err != nil {
		Te.Fatal(err)
	}
	got := op.apply([]float64{0.1, 0.2, 0.3})
	want := []float64{0.3, 0.9, 0.55} //(-0.2+0.5, 0.1-0.2 wrapped, 0.3+0.25)
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			Te.Errorf("component %d: got %f, want %f", i, got[i], want[i])
		}
	}
	if _, err := parseSymOp("x, y"); err == nil {
		Te.Error("expected an error for a 2-component op")
	}
}

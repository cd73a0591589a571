/*
 * poscar_test.go, part of goCryst.
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
	"strings"
	"testing"
)

func TestPoscarFileRead(Te *testing.T) {
	s, err := PoscarFileRead("test/POSCAR")
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 8 {
		Te.Errorf("expected 8 sites, got %d", s.Len())
	}
	if s.Site(0).Symbol != "Na" || s.Site(7).Symbol != "Cl" {
		Te.Errorf("wrong species order: %s %s", s.Site(0).Symbol, s.Site(7).Symbol)
	}
	l := s.Lattice.Lengths()
	if math.Abs(l[0]-5.6402) > 1e-6 {
		Te.Errorf("cell length: got %f", l[0])
	}
}

func TestPoscarDirectCartesianParity(Te *testing.T) {
	direct := `Si cubic
1.0
  4.0 0.0 0.0
  0.0 4.0 0.0
  0.0 0.0 4.0
Si
2
Direct
  0.0  0.0  0.0
  0.25 0.25 0.25
`
	cart := `Si cubic
1.0
  4.0 0.0 0.0
  0.0 4.0 0.0
  0.0 0.0 4.0
Si
2
Cartesian
  0.0 0.0 0.0
  1.0 1.0 1.0
`
	sd, err := PoscarRead(strings.NewReader(direct))
	if err != nil {
		Te.Fatal(err)
	}
	sc, err := PoscarRead(strings.NewReader(cart))
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(sd.Site(i).Frac[k]-sc.Site(i).Frac[k]) > 1e-9 {
				Te.Errorf("site %d: direct %v vs cartesian %v", i, sd.Site(i).Frac, sc.Site(i).Frac)
			}
		}
	}
}

func TestPoscarScaleAndSelectiveDynamics(Te *testing.T) {
	content := `scaled cell
2.0
  1.0 0.0 0.0
  0.0 1.0 0.0
  0.0 0.0 1.0
Fe
1
Selective dynamics
Direct
  0.5 0.5 0.5 T T F
`
	s, err := PoscarRead(strings.NewReader(content))
	if err != nil {
		Te.Fatal(err)
	}
	l := s.Lattice.Lengths()
	if math.Abs(l[0]-2.0) > 1e-9 {
		Te.Errorf("scale not applied: %f", l[0])
	}
	if s.Site(0).Frac[0] != 0.5 {
		Te.Errorf("coordinates misread: %v", s.Site(0).Frac)
	}
}

func TestPoscarNegativeScaleIsVolume(Te *testing.T) {
	content := `volume-scaled
-8.0
  1.0 0.0 0.0
  0.0 1.0 0.0
  0.0 0.0 1.0
W
1
Direct
  0.0 0.0 0.0
`
	s, err := PoscarRead(strings.NewReader(content))
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(s.Lattice.Volume()-8.0) > 1e-9 {
		Te.Errorf("volume: got %f, want 8", s.Lattice.Volume())
	}
}

func TestPoscarMalformed(Te *testing.T) {
	for _, content := range []string{
		"",
		"just a comment\n",
		"c\nnot-a-number\n1 0 0\n0 1 0\n0 0 1\nSi\n1\nDirect\n0 0 0\n",
		"c\n1.0\n1 0 0\n0 1 0\n0 0 1\n8\nDirect\n0 0 0\n", //VASP 4, no species
		"c\n1.0\n1 0 0\n0 1 0\n0 0 1\nSi\n2\nDirect\n0 0 0\n", //missing coords
	} {
		_, err := PoscarRead(strings.NewReader(content))
		if err == nil {
			Te.Errorf("expected an error for %q", content)
			continue
		}
		if ErrorStatus(err) != 400 {
			Te.Errorf("expected status 400, got %d (%v)", ErrorStatus(err), err)
		}
	}
}

/*
 * legend_test.go, part of goCryst.
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

package legend

import (
	"testing"

	cryst "github.com/crystkit/gocryst"
)

func nacl(Te *testing.T) *cryst.Structure {
	lat, err := cryst.NewLattice([]float64{5.64, 0, 0, 0, 5.64, 0, 0, 0, 5.64})
	if err != nil {
		Te.Fatal(err)
	}
	s, err := cryst.NewStructure(lat, []*cryst.Site{
		{Atom: &cryst.Atom{Symbol: "Na", Occupancy: 1}, Frac: []float64{0, 0, 0}},
		{Atom: &cryst.Atom{Symbol: "Cl", Occupancy: 1}, Frac: []float64{0.5, 0.5, 0.5}},
	})
	if err != nil {
		Te.Fatal(err)
	}
	return s
}

func TestUniformScheme(Te *testing.T) {
	l := New(nacl(Te), SchemeUniform)
	if l.RadiusOf("Na") != 0.5 || l.RadiusOf("Cl") != 0.5 {
		Te.Errorf("uniform radii: %f %f", l.RadiusOf("Na"), l.RadiusOf("Cl"))
	}
	if l.ColorOf("Na") != cryst.ColorOf("Na") {
		Te.Errorf("color: %s", l.ColorOf("Na"))
	}
}

func TestCovalentScheme(Te *testing.T) {
	l := New(nacl(Te), SchemeCovalent)
	if l.RadiusOf("Na") != cryst.CovalentRadius("Na") {
		Te.Errorf("covalent radius: %f", l.RadiusOf("Na"))
	}
	if l.RadiusOf("Cl") == l.RadiusOf("Na") {
		Te.Error("expected distinct covalent radii")
	}
}

func TestVdwSchemeIsShrunk(Te *testing.T) {
	l := New(nacl(Te), SchemeVdw)
	if l.RadiusOf("Na") >= cryst.VdwRadius("Na") {
		Te.Errorf("vdW radius not shrunk: %f", l.RadiusOf("Na"))
	}
}

func TestUnknownSchemeAndSpecies(Te *testing.T) {
	l := New(nacl(Te), "banana")
	if l.RadiusOf("Na") != 0.5 {
		Te.Errorf("unknown scheme should fall back to uniform, got %f", l.RadiusOf("Na"))
	}
	//a species the structure doesn't carry still resolves
	if l.RadiusOf("Xx") != 0.5 {
		Te.Errorf("unknown species radius: %f", l.RadiusOf("Xx"))
	}
	if l.ColorOf("Xx") == "" {
		Te.Error("unknown species should get the fallback color")
	}
}

func TestComposition(Te *testing.T) {
	l := New(nacl(Te), SchemeUniform)
	comp := l.Composition()
	if len(comp) != 2 {
		Te.Fatalf("composition size: %d", len(comp))
	}
	if comp["Na"] != cryst.ColorOf("Na") || comp["Cl"] != cryst.ColorOf("Cl") {
		Te.Errorf("composition colors: %v", comp)
	}
}

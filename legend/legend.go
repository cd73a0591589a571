/*
 * legend.go, part of goCryst.
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

//Package legend assigns display colors and radii to the atomic species of a
//structure, for use by the scene serializer and by viewer-side legend widgets.
package legend

import (
	cryst "github.com/crystkit/gocryst"
)

//The radius schemes understood by New. An unknown scheme silently falls
//back to SchemeUniform.
const (
	SchemeUniform = "uniform"
	SchemeAtomic  = "atomic"
	SchemeCovalent = "covalent"
	SchemeVdw     = "van_der_waals"
)

//display radius of SchemeUniform, and the radius of species missing from
//the data tables under any scheme.
const uniformRadius = 0.5

//vdW spheres drawn at full size swallow the bonds, so they get shrunk.
const vdwScale = 0.5

// Legend maps the species of one structure to display colors and radii.
type Legend struct {
	Scheme string
	colors map[string]string
	radii  map[string]float64
}

// New builds the legend of a structure under the given radius scheme.
// Species missing from the radius tables get the uniform radius; species
// missing from the color table get the fallback color.
func New(s *cryst.Structure, scheme string) *Legend {
	l := &Legend{
		Scheme: scheme,
		colors: make(map[string]string),
		radii:  make(map[string]float64),
	}
	for _, sym := range s.Species() {
		l.colors[sym] = cryst.ColorOf(sym)
		l.radii[sym] = radiusFor(sym, scheme)
	}
	return l
}

func radiusFor(symbol, scheme string) float64 {
	var r float64
	switch scheme {
	case SchemeAtomic, SchemeCovalent:
		//the covalent radius is the best stand-in we carry for both
		r = cryst.CovalentRadius(symbol)
	case SchemeVdw:
		r = cryst.VdwRadius(symbol) * vdwScale
	}
	if r == 0 {
		r = uniformRadius
	}
	return r
}

// ColorOf returns the display color of a species as "#rrggbb".
func (l *Legend) ColorOf(symbol string) string {
	if c, ok := l.colors[symbol]; ok {
		return c
	}
	return cryst.ColorOf(symbol)
}

// RadiusOf returns the display radius of a species, in Angstrom.
func (l *Legend) RadiusOf(symbol string) float64 {
	if r, ok := l.radii[symbol]; ok {
		return r
	}
	return radiusFor(symbol, l.Scheme)
}

// Composition returns the species-to-color mapping, for the viewer's
// legend widget. The caller owns the returned map.
func (l *Legend) Composition() map[string]string {
	ret := make(map[string]string, len(l.colors))
	for k, v := range l.colors {
		ret[k] = v
	}
	return ret
}

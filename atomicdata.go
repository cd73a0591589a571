/*
 * atomicdata.go, part of goCryst.
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

//A map for assigning mass to elements.
//Note that just elements common in inorganic and bio structures are present.
var symbolMass = map[string]float64{
	"H":  1.0,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.1,
	"Ca": 40.08,
	"Ti": 47.87,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Ga": 69.72,
	"As": 74.92,
	"Se": 78.96,
	"Br": 79.904,
	"Sr": 87.62,
	"Zr": 91.22,
	"Ag": 107.87,
	"I":  126.90,
	"Cs": 132.91,
	"Ba": 137.33,
	"W":  183.84,
	"Pt": 195.08,
	"Au": 196.97,
	"Pb": 207.2,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Ti": 1.60,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.50, //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"As": 1.19,
	"Se": 1.20,
	"Br": 1.20,
	"Sr": 1.95,
	"Zr": 1.75,
	"Ag": 1.45,
	"I":  1.39,
	"Cs": 2.44,
	"Ba": 2.15,
	"W":  1.62,
	"Pt": 1.36,
	"Au": 1.36,
	"Pb": 1.46,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556,
//metal radii from 10.1023/A:1011625728803
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"Li": 1.81,
	"Be": 1.53,
	"B":  1.92,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"Na": 2.27,
	"Mg": 1.73,
	"Al": 1.84,
	"Si": 2.10,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"K":  2.75,
	"Ca": 2.31,
	"Ti": 2.15,
	"Cr": 1.97,
	"Mn": 1.96,
	"Fe": 1.96,
	"Co": 1.95,
	"Ni": 1.94,
	"Cu": 2.00,
	"Zn": 2.02,
	"Ga": 1.87,
	"As": 1.85,
	"Se": 1.90,
	"Br": 1.83,
	"Sr": 2.49,
	"Zr": 2.36,
	"Ag": 2.03,
	"I":  1.98,
	"Cs": 3.43,
	"Ba": 2.68,
	"W":  2.18,
	"Pt": 2.09,
	"Au": 2.17,
	"Pb": 2.02,
}

//A map from element symbols to display colors, following the
//Jmol/CPK coloring convention. Species not in the map get
//displayed with fallbackColor.
var symbolColor = map[string]string{
	"H":  "#ffffff",
	"Li": "#cc80ff",
	"Be": "#c2ff00",
	"B":  "#ffb5b5",
	"C":  "#909090",
	"N":  "#3050f8",
	"O":  "#ff0d0d",
	"F":  "#90e050",
	"Na": "#ab5cf2",
	"Mg": "#8aff00",
	"Al": "#bfa6a6",
	"Si": "#f0c8a0",
	"P":  "#ff8000",
	"S":  "#ffff30",
	"Cl": "#1ff01f",
	"K":  "#8f40d4",
	"Ca": "#3dff00",
	"Ti": "#bfc2c7",
	"Cr": "#8a99c7",
	"Mn": "#9c7ac7",
	"Fe": "#e06633",
	"Co": "#f090a0",
	"Ni": "#50d050",
	"Cu": "#c88033",
	"Zn": "#7d80b0",
	"Ga": "#c28f8f",
	"As": "#bd80e3",
	"Se": "#ffa100",
	"Br": "#a62929",
	"Sr": "#00ff00",
	"Zr": "#94e0e0",
	"Ag": "#c0c0c0",
	"I":  "#940094",
	"Cs": "#57178f",
	"Ba": "#00c900",
	"W":  "#2194d6",
	"Pt": "#d0d0e0",
	"Au": "#ffd123",
	"Pb": "#575961",
}

const fallbackColor = "#ff55ff"

// MassOf returns the atomic mass of the given element symbol, or 0 if
// the element is not tabulated.
func MassOf(symbol string) float64 {
	return symbolMass[symbol]
}

// CovalentRadius returns the covalent radius of the given element symbol,
// in Angstrom, or 0 if the element is not tabulated.
func CovalentRadius(symbol string) float64 {
	return symbolCovrad[symbol]
}

// VdwRadius returns the van der Waals radius of the given element symbol,
// in Angstrom, or 0 if the element is not tabulated.
func VdwRadius(symbol string) float64 {
	return symbolVdwrad[symbol]
}

// ColorOf returns the Jmol/CPK display color of the given element symbol
// as a "#rrggbb" string. Unknown species get a fixed fallback color.
func ColorOf(symbol string) string {
	if c, ok := symbolColor[symbol]; ok {
		return c
	}
	return fallbackColor
}

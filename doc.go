/*
 * doc.go, part of goCryst.
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

/*Package cryst provides the periodic-structure data model of the goCryst library,
together with readers for some of the file formats used in crystallography.

	**goCryst capabilities**

    Reads CIF files (cell parameters, atom sites and symmetry operations,
	with expansion of the symmetry-equivalent positions).

    Reads VASP POSCAR/CONTCAR files, both "Direct" and "Cartesian",
	with or without selective dynamics.

    Reads gzip- and zstd-compressed versions of the above transparently.

    Builds a bond graph over the atomic sites of a periodic structure
	using a minimum-distance criterium (package graph).

    Assigns display colors and radii to atomic species under several
	radius schemes (package legend).

    Serializes a bonded structure into the declarative JSON scene format
	consumed by web-based 3D viewers, including unit-cell and
	coordinate-axes decorations (package scene).

    Serves the conversion over HTTP (package web, cmd/gocrystd).

The fundamental units are Angstroms for distances and degrees for the
cell angles. Lattices are row-major: each row of the 3x3 matrix is one
lattice basis vector in Cartesian coordinates.
*/
package cryst

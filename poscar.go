/*
 * poscar.go, part of goCryst.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// PoscarFileRead reads a VASP POSCAR/CONTCAR file and returns the structure
// it describes. On an unparseable file it returns a 400-class *Error.
func PoscarFileRead(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewBadRequest("Unable to parse VASP POSCAR/CONTCAR file.", err)
	}
	defer f.Close()
	s, err := PoscarRead(f)
	if err != nil {
		return nil, ErrDecorate(err, "PoscarFileRead")
	}
	return s, nil
}

// PoscarRead reads a VASP 5 POSCAR/CONTCAR document from r: comment line,
// scale factor (a negative scale is interpreted as a target cell volume),
// three lattice rows, the species line, the per-species counts, an optional
// "Selective dynamics" line, and "Direct" or "Cartesian" coordinates.
// On malformed content it returns a 400-class *Error.
func PoscarRead(r io.Reader) (*Structure, error) {
	s, err := poscarRead(bufio.NewReader(r))
	if err != nil {
		return nil, NewBadRequest("Unable to parse VASP POSCAR/CONTCAR file.", err)
	}
	return s, nil
}

func poscarRead(in *bufio.Reader) (*Structure, error) {
	next := func() ([]string, error) {
		for {
			line, err := in.ReadString('\n')
			t := strings.TrimSpace(line)
			if t != "" {
				return strings.Fields(t), nil
			}
			if err != nil {
				return nil, fmt.Errorf("poscar: unexpected end of file")
			}
		}
	}
	if _, err := next(); err != nil { //comment line
		return nil, err
	}
	sf, err := next()
	if err != nil {
		return nil, err
	}
	scale, err := strconv.ParseFloat(sf[0], 64)
	if err != nil {
		return nil, fmt.Errorf("poscar: couldn't parse the scale factor from %q: %w", sf[0], err)
	}
	basis := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		row, err := next()
		if err != nil {
			return nil, err
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("poscar: lattice row %d has %d fields", i+1, len(row))
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("poscar: couldn't parse lattice row %d: %w", i+1, err)
			}
			basis = append(basis, v)
		}
	}
	lat, err := NewLattice(basis)
	if err != nil {
		return nil, err
	}
	if scale < 0 {
		//negative scale means the desired cell volume
		vol := lat.Volume()
		if vol == 0 {
			return nil, fmt.Errorf("poscar: negative scale with a zero-volume cell")
		}
		scale = math.Cbrt(-scale / vol)
	}
	if scale != 1.0 {
		lat.m.Scale(scale, lat.m)
	}

	species, err := next()
	if err != nil {
		return nil, err
	}
	if _, err2 := strconv.Atoi(species[0]); err2 == nil {
		//VASP 4 files have no species line. Without the potcar there are no
		//symbols to recover, so we reject rather than guess.
		return nil, fmt.Errorf("poscar: missing species line (VASP 4 format is not supported)")
	}
	counts, err := next()
	if err != nil {
		return nil, err
	}
	if len(counts) != len(species) {
		return nil, fmt.Errorf("poscar: %d species but %d counts", len(species), len(counts))
	}
	total := 0
	ncounts := make([]int, len(counts))
	for i, c := range counts {
		n, err := strconv.Atoi(c)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("poscar: bad atom count %q", c)
		}
		ncounts[i] = n
		total += n
	}

	mode, err := next()
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(tl(mode[0]), "s") { //selective dynamics
		if mode, err = next(); err != nil {
			return nil, err
		}
	}
	cartesian := strings.HasPrefix(tl(mode[0]), "c") || strings.HasPrefix(tl(mode[0]), "k")
	if !cartesian && !strings.HasPrefix(tl(mode[0]), "d") {
		return nil, fmt.Errorf("poscar: unknown coordinate mode %q", mode[0])
	}

	sites := make([]*Site, 0, total)
	for i, sym := range species {
		symbol := normalizeSymbol(sym)
		if symbol == "" {
			return nil, fmt.Errorf("poscar: bad species symbol %q", sym)
		}
		for j := 0; j < ncounts[i]; j++ {
			row, err := next()
			if err != nil {
				return nil, fmt.Errorf("poscar: missing coordinates for atom %d: %w", len(sites)+1, err)
			}
			if len(row) < 3 {
				return nil, fmt.Errorf("poscar: coordinate line %d has %d fields", len(sites)+1, len(row))
			}
			c := make([]float64, 3)
			for k := 0; k < 3; k++ {
				v, err := strconv.ParseFloat(row[k], 64)
				if err != nil {
					return nil, fmt.Errorf("poscar: couldn't parse coordinates for atom %d: %w", len(sites)+1, err)
				}
				c[k] = v
			}
			if cartesian {
				c = cartToFrac(lat, c[0]*scale, c[1]*scale, c[2]*scale)
			}
			at := &Atom{Symbol: symbol, Label: fmt.Sprintf("%s%d", symbol, j+1), Occupancy: 1.0}
			sites = append(sites, &Site{Atom: at, Frac: c})
		}
	}
	return NewStructure(lat, sites)
}

//converts a Cartesian position to fractional coordinates: cart * M^-1.
func cartToFrac(lat *Lattice, x, y, z float64) []float64 {
	var inv mat.Dense
	if err := inv.Inverse(lat.m); err != nil {
		//a singular lattice leaves the coordinates as given
		return []float64{x, y, z}
	}
	v := mat.NewDense(1, 3, []float64{x, y, z})
	r := mat.NewDense(1, 3, nil)
	r.Mul(v, &inv)
	return mat.Row(nil, 0, r)
}

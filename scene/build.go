/*
 * build.go, part of goCryst.
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

package scene

import (
	"fmt"
	"sort"

	cryst "github.com/crystkit/gocryst"
	"github.com/crystkit/gocryst/graph"
	"github.com/crystkit/gocryst/legend"
)

//tolerance for deciding that a fractional coordinate sits on a cell boundary.
const boundaryTol = 1e-5

const unitCellColor = "#bbbbbb"
const unitCellRadius = 0.02

// Options are the rendering flags of the serializer. The zero value is NOT
// the default; use DefaultOptions.
type Options struct {
	//DrawImageAtoms also draws the periodic copies of sites sitting on the
	//cell boundary, so all corners and faces of the cell look populated.
	DrawImageAtoms bool
	//BondedSitesOutsideCell draws sites outside the unit cell when a bond
	//reaches them.
	BondedSitesOutsideCell bool
	//HideIncompleteEdges drops bonds whose far endpoint is not drawn.
	HideIncompleteEdges bool
}

// DefaultOptions returns the flags used by the public conversion entry
// points: image atoms on, outside bonded sites on, incomplete edges hidden.
func DefaultOptions() Options {
	return Options{
		DrawImageAtoms:         true,
		BondedSitesOutsideCell: true,
		HideIncompleteEdges:    true,
	}
}

//one sphere to draw: a site (or one of its periodic copies) at a Cartesian
//position.
type drawnSite struct {
	symbol string
	pos    []float64
}

//renderState accumulates the geometry while walking the graph.
type renderState struct {
	g     *graph.StructureGraph
	leg   *legend.Legend
	opt   Options
	sites []drawnSite
	drawn map[string]bool //position-key set of every drawn sphere
	segs  []bondSegment
}

type bondSegment struct {
	from, to []float64
	color    string
}

func posKey(p []float64) string {
	return fmt.Sprintf("%.4f,%.4f,%.4f", p[0], p[1], p[2])
}

// FromGraph serializes a bonded structure into a scene. The scene contains
// an "atoms" node (spheres grouped by species), a "bonds" node (half-bond
// cylinders colored per endpoint species), and, for periodic structures, a
// "unit_cell" node with the twelve cell edges. The origin is the negated
// geometric center of everything drawn.
func FromGraph(g *graph.StructureGraph, leg *legend.Legend, opt Options) (*Scene, error) {
	if g == nil || leg == nil {
		return nil, fmt.Errorf("scene: nil graph or legend")
	}
	st := &renderState{g: g, leg: leg, opt: opt, drawn: make(map[string]bool)}
	st.placeSites()
	st.placeBonds()

	s := &Scene{Name: g.Structure.Formula(), Visible: true}
	s.Contents = append(s.Contents, st.atomsNode(), st.bondsNode())
	if cell := unitCellNode(g.Structure.Lattice); cell != nil {
		s.Contents = append(s.Contents, cell)
	}
	s.Origin = st.origin()
	return s, nil
}

func (st *renderState) draw(symbol string, pos []float64) {
	k := posKey(pos)
	if st.drawn[k] {
		return
	}
	st.drawn[k] = true
	st.sites = append(st.sites, drawnSite{symbol: symbol, pos: pos})
}

//placeSites draws every site, plus the boundary images when requested.
func (st *renderState) placeSites() {
	lat := st.g.Structure.Lattice
	for i := 0; i < st.g.Len(); i++ {
		n := st.g.Site(i)
		st.draw(n.Symbol, n.Cart)
		if !st.opt.DrawImageAtoms || lat == nil {
			continue
		}
		for _, sh := range boundaryShifts(n.Frac) {
			st.draw(n.Symbol, shiftPos(n.Cart, lat, sh))
		}
	}
}

//boundaryShifts lists the image shifts that keep a boundary site on the
//cell surface: +1 along axes where the fractional coordinate is ~0, -1
//where it is ~1, and all combinations thereof.
func boundaryShifts(frac []float64) []graph.Shift {
	var per [3][]int
	for i := 0; i < 3; i++ {
		per[i] = []int{0}
		if frac[i] < boundaryTol {
			per[i] = append(per[i], 1)
		} else if frac[i] > 1-boundaryTol {
			per[i] = append(per[i], -1)
		}
	}
	ret := make([]graph.Shift, 0, 7)
	for _, a := range per[0] {
		for _, b := range per[1] {
			for _, c := range per[2] {
				if a == 0 && b == 0 && c == 0 {
					continue
				}
				ret = append(ret, graph.Shift{a, b, c})
			}
		}
	}
	return ret
}

func shiftPos(cart []float64, lat *cryst.Lattice, sh graph.Shift) []float64 {
	ret := []float64{cart[0], cart[1], cart[2]}
	for i := 0; i < 3; i++ {
		if sh[i] == 0 {
			continue
		}
		row := lat.Row(i)
		for k := 0; k < 3; k++ {
			ret[k] += float64(sh[i]) * row[k]
		}
	}
	return ret
}

//placeBonds emits the half-bond segments: each bond splits at its midpoint,
//with each half colored after its own endpoint.
func (st *renderState) placeBonds() {
	lat := st.g.Structure.Lattice
	for _, b := range st.g.Bonds {
		st.placeBond(b.At1.Symbol, b.At2.Symbol, b.At1.Cart, b.ImagePos(lat))
		//replicate the bond on the drawn periodic copies of its near endpoint,
		//so image atoms don't dangle bondless
		if !st.opt.DrawImageAtoms || lat == nil {
			continue
		}
		for _, sh := range boundaryShifts(b.At1.Frac) {
			from := shiftPos(b.At1.Cart, lat, sh)
			to := shiftPos(b.ImagePos(lat), lat, sh)
			if st.drawn[posKey(to)] {
				st.placeBond(b.At1.Symbol, b.At2.Symbol, from, to)
			}
		}
	}
}

func (st *renderState) placeBond(sym1, sym2 string, from, to []float64) {
	if !st.drawn[posKey(to)] {
		if st.opt.BondedSitesOutsideCell {
			st.draw(sym2, to)
		} else if st.opt.HideIncompleteEdges {
			return
		}
	}
	mid := []float64{(from[0] + to[0]) / 2, (from[1] + to[1]) / 2, (from[2] + to[2]) / 2}
	st.segs = append(st.segs,
		bondSegment{from: from, to: mid, color: st.leg.ColorOf(sym1)},
		bondSegment{from: mid, to: to, color: st.leg.ColorOf(sym2)},
	)
}

//atomsNode groups the drawn spheres by species, one primitive per species.
func (st *renderState) atomsNode() *Node {
	bySpecies := make(map[string][][]float64)
	for _, d := range st.sites {
		bySpecies[d.symbol] = append(bySpecies[d.symbol], d.pos)
	}
	symbols := make([]string, 0, len(bySpecies))
	for s := range bySpecies {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	node := &Node{Name: "atoms", Visible: true}
	for _, sym := range symbols {
		node.Contents = append(node.Contents, &Node{
			Type:      TypeSpheres,
			Positions: bySpecies[sym],
			Color:     st.leg.ColorOf(sym),
			Radius:    st.leg.RadiusOf(sym),
			Clickable: true,
		})
	}
	return node
}

//bondsNode groups the half-bond cylinders by color.
func (st *renderState) bondsNode() *Node {
	byColor := make(map[string][][][]float64)
	for _, seg := range st.segs {
		byColor[seg.color] = append(byColor[seg.color], [][]float64{seg.from, seg.to})
	}
	colors := make([]string, 0, len(byColor))
	for c := range byColor {
		colors = append(colors, c)
	}
	sort.Strings(colors)
	node := &Node{Name: "bonds", Visible: true}
	for _, c := range colors {
		node.Contents = append(node.Contents, &Node{
			Type:          TypeCylinders,
			PositionPairs: byColor[c],
			Color:         c,
			Radius:        0.1,
		})
	}
	return node
}

//unitCellNode draws the twelve edges of the cell as line segments.
//Returns nil for non-periodic structures.
func unitCellNode(lat *cryst.Lattice) *Node {
	if lat == nil {
		return nil
	}
	corner := func(a, b, c float64) []float64 {
		return lat.Cartesian([]float64{a, b, c})
	}
	//pairs of corners differing along exactly one axis
	var lines [][]float64
	for _, e := range [][2][3]float64{
		{{0, 0, 0}, {1, 0, 0}}, {{0, 0, 0}, {0, 1, 0}}, {{0, 0, 0}, {0, 0, 1}},
		{{1, 0, 0}, {1, 1, 0}}, {{1, 0, 0}, {1, 0, 1}},
		{{0, 1, 0}, {1, 1, 0}}, {{0, 1, 0}, {0, 1, 1}},
		{{0, 0, 1}, {1, 0, 1}}, {{0, 0, 1}, {0, 1, 1}},
		{{1, 1, 0}, {1, 1, 1}}, {{1, 0, 1}, {1, 1, 1}}, {{0, 1, 1}, {1, 1, 1}},
	} {
		lines = append(lines, corner(e[0][0], e[0][1], e[0][2]), corner(e[1][0], e[1][1], e[1][2]))
	}
	return &Node{
		Name:    "unit_cell",
		Visible: true,
		Contents: []*Node{{
			Type:      TypeLines,
			Positions: lines,
			Color:     unitCellColor,
			Radius:    unitCellRadius,
		}},
	}
}

//origin is the negated geometric center of everything drawn.
func (st *renderState) origin() []float64 {
	if len(st.sites) == 0 {
		return []float64{0, 0, 0}
	}
	var c [3]float64
	for _, d := range st.sites {
		for i := 0; i < 3; i++ {
			c[i] += d.pos[i]
		}
	}
	n := float64(len(st.sites))
	return []float64{-c[0] / n, -c[1] / n, -c[2] / n}
}

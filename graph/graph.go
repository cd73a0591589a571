package graph

import (
	"fmt"
	"math"

	cryst "github.com/crystkit/gocryst"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/mat"
)

//constants for the distance heuristics. tooclose is from DOI:10.1186/1758-2946-3-33.
const (
	tooclose = 0.63 //overlapping sites are geometry errors, not bonds
	defTol   = 0.1  //bond everything within minDist*(1+defTol)
	defCut   = 6.0  //hard ceiling for any bond, Angstrom
)

// Shift is a periodic image offset, in whole cells along each lattice vector.
type Shift [3]int

func (s Shift) zero() bool {
	return s[0] == 0 && s[1] == 0 && s[2] == 0
}

func (s Shift) neg() Shift {
	return Shift{-s[0], -s[1], -s[2]}
}

// Node is one atomic site of the graph. It implements gonum's graph.Node,
// with the site index as the node ID.
type Node struct {
	*cryst.Site
	Index int
	Cart  []float64 //Cartesian position of the site inside the cell
	Bonds []*Bond
}

func (n *Node) ID() int64 {
	return int64(n.Index)
}

// Bond is one inferred bond. The far endpoint may live in a periodic image
// of the cell, recorded in Shift; a bond with At1 == At2 and a non-zero
// shift connects a site to its own image. Bonds implement gonum's
// graph.WeightedEdge with the bond distance as the weight.
type Bond struct {
	Index    int
	At1, At2 *Node
	Shift    Shift //image shift of At2 relative to At1's cell
	Dist     float64
}

func (b *Bond) From() graph.Node {
	return b.At1
}

func (b *Bond) To() graph.Node {
	return b.At2
}

// ReversedEdge swaps the endpoints in place, bonds are not directional.
func (b *Bond) ReversedEdge() graph.Edge {
	b.At1, b.At2 = b.At2, b.At1
	b.Shift = b.Shift.neg()
	return b
}

func (b *Bond) Weight() float64 {
	return b.Dist
}

// Cross returns the atom at the other end of the bond from origin.
func (b *Bond) Cross(origin *Node) *Node {
	if origin.Index == b.At1.Index {
		return b.At2
	}
	if origin.Index == b.At2.Index {
		return b.At1
	}
	panic("graph: trying to cross a bond from a node not present in it")
}

// Nodes implements gonum's graph.Nodes over a slice of sites.
type Nodes struct {
	nodes []*Node
	curr  int
}

func (a *Nodes) Len() int {
	return len(a.nodes) - a.curr
}

func (a *Nodes) Reset() {
	a.curr = 0
}

func (a *Nodes) Next() bool {
	if a.curr >= len(a.nodes) {
		return false
	}
	a.curr++
	return true
}

func (a *Nodes) Node() graph.Node {
	return a.nodes[a.curr-1]
}

// StructureGraph is a bond graph over the sites of a periodic structure.
// It implements gonum's graph.Undirected and graph.Weighted interfaces;
// image self-bonds are kept in Bonds but, being self loops, are not visible
// through the graph interfaces.
type StructureGraph struct {
	Structure *cryst.Structure
	nodes     []*Node
	Bonds     []*Bond
}

func (g *StructureGraph) Node(id int64) graph.Node {
	if id < 0 || id >= int64(len(g.nodes)) {
		return nil
	}
	return g.nodes[id]
}

// Site returns the graph node for the ith site. Panics if out of range.
func (g *StructureGraph) Site(i int) *Node {
	if i < 0 || i >= len(g.nodes) {
		panic("graph: requested Site out of bounds")
	}
	return g.nodes[i]
}

func (g *StructureGraph) Len() int {
	return len(g.nodes)
}

func (g *StructureGraph) Nodes() graph.Nodes {
	return &Nodes{nodes: g.nodes}
}

func (g *StructureGraph) From(id int64) graph.Nodes {
	ret := make([]*Node, 0, 8)
	for _, b := range g.Bonds {
		if b.At1.ID() == b.At2.ID() {
			continue
		}
		if b.At1.ID() == id {
			ret = append(ret, b.At2)
		} else if b.At2.ID() == id {
			ret = append(ret, b.At1)
		}
	}
	return &Nodes{nodes: ret}
}

func (g *StructureGraph) HasEdgeBetween(xid, yid int64) bool {
	return g.WeightedEdgeBetween(xid, yid) != nil
}

func (g *StructureGraph) WeightedEdgeBetween(xid, yid int64) graph.WeightedEdge {
	if xid == yid {
		return nil
	}
	for _, b := range g.Bonds {
		if (b.At1.ID() == xid && b.At2.ID() == yid) || (b.At1.ID() == yid && b.At2.ID() == xid) {
			return b
		}
	}
	return nil
}

func (g *StructureGraph) Edge(uid, vid int64) graph.Edge {
	return g.WeightedEdgeBetween(uid, vid)
}

func (g *StructureGraph) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	return g.WeightedEdgeBetween(uid, vid)
}

func (g *StructureGraph) EdgeBetween(xid, yid int64) graph.Edge {
	return g.WeightedEdgeBetween(xid, yid)
}

func (g *StructureGraph) Weight(xid, yid int64) (w float64, ok bool) {
	if xid == yid {
		return 0, true
	}
	b := g.WeightedEdgeBetween(xid, yid)
	if b == nil {
		return -1, false
	}
	return b.Weight(), true
}

// Options tune the minimum-distance strategy.
type Options struct {
	//Tol is the relative tolerance over the nearest-neighbour distance:
	//every neighbour within minDist*(1+Tol) becomes a bond. Default 0.1.
	Tol float64
	//Cutoff is the hard maximum bond length in Angstrom. Default 6.0.
	Cutoff float64
}

//a candidate neighbour of a site, possibly in a periodic image.
type neighbour struct {
	j     int
	shift Shift
	dist  float64
}

// FromMinDistNN builds the bond graph of a structure with a minimum-distance
// nearest-neighbour heuristic: for each site, the shortest distance to any
// other site (searching the surrounding periodic images) sets the local
// bonding scale, and every neighbour within that distance times (1+tol)
// gets a bond. Structures with a nil lattice are treated as non-periodic.
// It returns an error on overlapping sites, never on an unbonded structure.
func FromMinDistNN(s *cryst.Structure, opts ...Options) (*StructureGraph, error) {
	opt := Options{Tol: defTol, Cutoff: defCut}
	if len(opts) > 0 {
		if opts[0].Tol > 0 {
			opt.Tol = opts[0].Tol
		}
		if opts[0].Cutoff > 0 {
			opt.Cutoff = opts[0].Cutoff
		}
	}
	g := &StructureGraph{Structure: s}
	cart := s.CartesianCoords()
	for i := 0; i < s.Len(); i++ {
		g.nodes = append(g.nodes, &Node{Site: s.Site(i), Index: i, Cart: mat.Row(nil, i, cart)})
	}
	shifts := imageShifts(s.Lattice)
	for i := 0; i < s.Len(); i++ {
		cands, err := neighboursOf(g, i, shifts, opt.Cutoff)
		if err != nil {
			return nil, err
		}
		if len(cands) == 0 {
			continue //an isolated site is fine, it just renders unbonded
		}
		minDist := cands[0].dist
		for _, c := range cands {
			if c.dist < minDist {
				minDist = c.dist
			}
		}
		for _, c := range cands {
			if c.dist <= minDist*(1+opt.Tol) {
				g.addBond(i, c)
			}
		}
	}
	return g, nil
}

//the image shifts searched for neighbours: just the home cell for
//non-periodic structures, the 3x3x3 block around it otherwise.
func imageShifts(lat *cryst.Lattice) []Shift {
	if lat == nil {
		return []Shift{{0, 0, 0}}
	}
	ret := make([]Shift, 0, 27)
	for a := -1; a <= 1; a++ {
		for b := -1; b <= 1; b++ {
			for c := -1; c <= 1; c++ {
				ret = append(ret, Shift{a, b, c})
			}
		}
	}
	return ret
}

func neighboursOf(g *StructureGraph, i int, shifts []Shift, cutoff float64) ([]neighbour, error) {
	s := g.Structure
	pi := g.nodes[i].Cart
	ret := make([]neighbour, 0, 12)
	for j := 0; j < s.Len(); j++ {
		for _, sh := range shifts {
			if j == i && sh.zero() {
				continue
			}
			pj := imagePos(g.nodes[j].Cart, s.Lattice, sh)
			d := dist3(pi, pj)
			if d <= tooclose {
				return nil, cryst.NewInternal(
					fmt.Sprintf("Overlapping sites %d (%s) and %d (%s): d=%4.2f.",
						i, g.nodes[i].Symbol, j, g.nodes[j].Symbol, d), nil)
			}
			if d <= cutoff {
				ret = append(ret, neighbour{j: j, shift: sh, dist: d})
			}
		}
	}
	return ret, nil
}

//addBond records a bond unless its canonical twin is already present.
func (g *StructureGraph) addBond(i int, c neighbour) {
	for _, b := range g.Bonds {
		if b.At1.Index == c.j && b.At2.Index == i && b.Shift == c.shift.neg() {
			return
		}
		if b.At1.Index == i && b.At2.Index == c.j && b.Shift == c.shift {
			return
		}
	}
	b := &Bond{
		Index: len(g.Bonds),
		At1:   g.nodes[i],
		At2:   g.nodes[c.j],
		Shift: c.shift,
		Dist:  c.dist,
	}
	b.At1.Bonds = append(b.At1.Bonds, b)
	if b.At2 != b.At1 {
		b.At2.Bonds = append(b.At2.Bonds, b)
	}
	g.Bonds = append(g.Bonds, b)
}

// ImagePos returns the Cartesian position of the far endpoint of a bond,
// i.e. At2 displaced by the bond's image shift.
func (b *Bond) ImagePos(lat *cryst.Lattice) []float64 {
	return imagePos(b.At2.Cart, lat, b.Shift)
}

func imagePos(cart []float64, lat *cryst.Lattice, sh Shift) []float64 {
	ret := []float64{cart[0], cart[1], cart[2]}
	if lat == nil || sh.zero() {
		return ret
	}
	for i := 0; i < 3; i++ {
		row := lat.Row(i)
		for k := 0; k < 3; k++ {
			ret[k] += float64(sh[i]) * row[k]
		}
	}
	return ret
}

func dist3(a, b []float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

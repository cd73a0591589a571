/*
 * cif.go, part of goCryst.
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
	"unicode"
)

var tl func(string) string = strings.ToLower

//fractional tolerance used when deduplicating symmetry-equivalent positions
const fracTol = 1e-3

// CIFFileRead reads a CIF file and returns the first structure described in
// it. On an unparseable file it returns a 400-class *Error.
func CIFFileRead(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewBadRequest("Unable to parse CIF file.", err)
	}
	defer f.Close()
	s, err := CIFRead(f)
	if err != nil {
		return nil, ErrDecorate(err, "CIFFileRead")
	}
	return s, nil
}

// CIFStringRead reads CIF content given as a string.
func CIFStringRead(content string) (*Structure, error) {
	s, err := CIFRead(strings.NewReader(content))
	if err != nil {
		return nil, ErrDecorate(err, "CIFStringRead")
	}
	return s, nil
}

// CIFRead reads a CIF document from r. It parses the cell parameters, the
// atom-site loop and the symmetry-operation loop of the first data block,
// and returns the structure with all symmetry-equivalent positions expanded.
// On malformed content it returns a 400-class *Error.
func CIFRead(r io.Reader) (*Structure, error) {
	doc, err := cifParse(bufio.NewReader(r))
	if err != nil {
		return nil, NewBadRequest("Unable to parse CIF content.", err)
	}
	s, err := doc.structure()
	if err != nil {
		return nil, NewBadRequest("Unable to parse CIF content.", err)
	}
	return s, nil
}

//cifDoc is one parsed data block: the free key-value items plus the loops.
type cifDoc struct {
	items map[string]string
	loops []*cifLoop
}

type cifLoop struct {
	tags map[string]int //lowercased tag -> column, the pdbx header-map idiom
	rows [][]string
}

// get returns the column corresponding to the given tag in the loop,
// or -1 if the tag is not present.
func (l *cifLoop) get(tag string) int {
	if i, ok := l.tags[tag]; ok {
		return i
	}
	return -1
}

func (l *cifLoop) has(tag string) bool {
	return l.get(tag) >= 0
}

func cifParse(in *bufio.Reader) (*cifDoc, error) {
	doc := &cifDoc{items: make(map[string]string)}
	var loop *cifLoop
	var inheader bool //are we reading the _tag header of a loop?
	hp := strings.HasPrefix
	for {
		rawline, err := in.ReadString('\n')
		if rawline == "" && err != nil {
			break
		}
		line := cifStripComment(rawline)
		t := strings.TrimSpace(line)
		if t == "" {
			if err != nil {
				break
			}
			continue
		}
		switch {
		case hp(t, ";"):
			//semicolon text field. We keep none of them, but we have to
			//swallow the whole block so its lines aren't taken for data.
			if err2 := cifSkipTextField(in); err2 != nil {
				return nil, err2
			}
		case hp(tl(t), "data_"):
			if len(doc.items) > 0 || len(doc.loops) > 0 {
				return doc, nil //just the first data block
			}
			loop, inheader = nil, false
		case hp(tl(t), "loop_"):
			loop = &cifLoop{tags: make(map[string]int)}
			doc.loops = append(doc.loops, loop)
			inheader = true
		case hp(t, "_"):
			fields := cifFields(t)
			tag := tl(fields[0])
			if inheader && len(fields) == 1 {
				loop.tags[tag] = len(loop.tags)
			} else {
				//a free item ends any loop in progress
				loop, inheader = nil, false
				val := ""
				if len(fields) > 1 {
					val = fields[1]
				} else {
					//the value may be on the following line(s)
					v, err2 := cifNextValue(in)
					if err2 != nil {
						return nil, fmt.Errorf("cifParse: missing value for item %s: %w", tag, err2)
					}
					val = v
				}
				doc.items[tag] = val
			}
		default:
			inheader = false
			if loop == nil {
				return nil, fmt.Errorf("cifParse: stray data line %q", t)
			}
			loop.rows = append(loop.rows, cifFields(t))
		}
		if err != nil {
			break
		}
	}
	if len(doc.items) == 0 && len(doc.loops) == 0 {
		return nil, fmt.Errorf("cifParse: no CIF content found")
	}
	return doc, nil
}

//reads until the closing ';' of a semicolon text field.
func cifSkipTextField(in *bufio.Reader) error {
	for {
		line, err := in.ReadString('\n')
		if strings.TrimSpace(line) == ";" {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cifSkipTextField: unterminated text field")
		}
	}
}

//reads the value of an item whose tag stood alone on its line.
func cifNextValue(in *bufio.Reader) (string, error) {
	for {
		line, err := in.ReadString('\n')
		t := strings.TrimSpace(cifStripComment(line))
		if strings.HasPrefix(t, ";") {
			if err2 := cifSkipTextField(in); err2 != nil {
				return "", err2
			}
			return "", nil //multiline values are dropped, none is structural
		}
		if t != "" {
			return cifFields(t)[0], nil
		}
		if err != nil {
			return "", err
		}
	}
}

//removes a trailing comment, respecting quotes.
func cifStripComment(line string) string {
	quote := byte(0)
	for i := 0; i < len(line); i++ {
		switch {
		case quote != 0:
			if line[i] == quote {
				quote = 0
			}
		case line[i] == '\'' || line[i] == '"':
			quote = line[i]
		case line[i] == '#':
			return line[:i]
		}
	}
	return line
}

//splits a CIF data line into fields, honoring single and double quotes.
func cifFields(line string) []string {
	ret := make([]string, 0, 8)
	var cur strings.Builder
	quote := byte(0)
	flush := func() {
		if cur.Len() > 0 {
			ret = append(ret, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				flush()
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return ret
}

//parses a CIF number, stripping the "(3)" standard-uncertainty suffix.
func cifFloat(s string) (float64, error) {
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return strconv.ParseFloat(s, 64)
}

func (doc *cifDoc) cellParam(tag string) (float64, error) {
	v, ok := doc.items[tag]
	if !ok {
		return 0, fmt.Errorf("cif: missing cell item %s", tag)
	}
	f, err := cifFloat(v)
	if err != nil {
		return 0, fmt.Errorf("cif: couldn't parse %s from %q: %w", tag, v, err)
	}
	return f, nil
}

func (doc *cifDoc) lattice() (*Lattice, error) {
	var p [6]float64
	tags := []string{
		"_cell_length_a", "_cell_length_b", "_cell_length_c",
		"_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma",
	}
	var err error
	for i, t := range tags {
		if p[i], err = doc.cellParam(t); err != nil {
			return nil, err
		}
	}
	return NewLatticeFromParameters(p[0], p[1], p[2], p[3], p[4], p[5])
}

//the loop holding the atomic sites is the one carrying fractional coordinates.
func (doc *cifDoc) siteLoop() *cifLoop {
	for _, l := range doc.loops {
		if l.has("_atom_site_fract_x") {
			return l
		}
	}
	return nil
}

func (doc *cifDoc) symOps() ([]*symOp, error) {
	var loop *cifLoop
	var tag string
	for _, l := range doc.loops {
		for _, t := range []string{"_symmetry_equiv_pos_as_xyz", "_space_group_symop_operation_xyz"} {
			if l.has(t) {
				loop, tag = l, t
				break
			}
		}
		if loop != nil {
			break
		}
	}
	if loop == nil {
		op, _ := parseSymOp("x, y, z")
		return []*symOp{op}, nil
	}
	col := loop.get(tag)
	ops := make([]*symOp, 0, len(loop.rows))
	for _, row := range loop.rows {
		//rows of this loop may carry a leading numeric id; the xyz triplet was
		//quoted in the source so it survives as a single field.
		var expr string
		for i := len(row) - 1; i >= 0; i-- {
			if strings.ContainsAny(tl(row[i]), "xyz") {
				expr = row[i]
				break
			}
		}
		if expr == "" && col < len(row) {
			expr = row[col]
		}
		op, err := parseSymOp(expr)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		op, _ := parseSymOp("x, y, z")
		ops = append(ops, op)
	}
	return ops, nil
}

func (doc *cifDoc) structure() (*Structure, error) {
	lat, err := doc.lattice()
	if err != nil {
		return nil, err
	}
	loop := doc.siteLoop()
	if loop == nil {
		return nil, fmt.Errorf("cif: no _atom_site loop with fractional coordinates")
	}
	ops, err := doc.symOps()
	if err != nil {
		return nil, err
	}
	sites := make([]*Site, 0, len(loop.rows)*len(ops))
	for n, row := range loop.rows {
		at, frac, err := cifFillSite(row, loop)
		if err != nil {
			return nil, fmt.Errorf("cif: couldn't read atom site %d: %w", n+1, err)
		}
		for _, op := range ops {
			f := op.apply(frac)
			if !fracSeen(sites, at.Symbol, f) {
				sites = append(sites, &Site{Atom: at.Copy(), Frac: f})
			}
		}
	}
	if len(sites) == 0 {
		return nil, fmt.Errorf("cif: empty _atom_site loop")
	}
	return NewStructure(lat, sites)
}

func cifFillSite(row []string, loop *cifLoop) (*Atom, []float64, error) {
	get := func(tag string) string {
		k := loop.get(tag)
		if k >= 0 && k < len(row) {
			return row[k]
		}
		return ""
	}
	at := new(Atom)
	at.Label = get("_atom_site_label")
	at.Symbol = normalizeSymbol(get("_atom_site_type_symbol"))
	if at.Symbol == "" {
		at.Symbol = symbolFromLabel(at.Label)
	}
	if at.Symbol == "" {
		return nil, nil, fmt.Errorf("no element symbol in row %v", row)
	}
	at.Occupancy = 1.0
	if o := get("_atom_site_occupancy"); o != "" && o != "." && o != "?" {
		oc, err := cifFloat(o)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't parse occupancy from %q: %w", o, err)
		}
		at.Occupancy = oc
	}
	frac := make([]float64, 3)
	for i, tag := range []string{"_atom_site_fract_x", "_atom_site_fract_y", "_atom_site_fract_z"} {
		v := get(tag)
		if v == "" {
			return nil, nil, fmt.Errorf("missing %s", tag)
		}
		f, err := cifFloat(v)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't parse %s from %q: %w", tag, v, err)
		}
		frac[i] = f
	}
	return at, frac, nil
}

//reports whether an equivalent position of the same species is already present,
//comparing coordinates modulo one cell.
func fracSeen(sites []*Site, symbol string, f []float64) bool {
	for _, s := range sites {
		if s.Symbol != symbol {
			continue
		}
		same := true
		for i := 0; i < 3; i++ {
			d := math.Abs(s.Frac[i] - f[i])
			if math.Min(d, 1-d) > fracTol {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

//normalizeSymbol maps "si", "SI2+", "O2-" and the like to a bare element
//symbol with standard capitalization, or "" if nothing survives.
func normalizeSymbol(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			break
		}
	}
	t := b.String()
	if t == "" {
		return ""
	}
	t = strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
	if len(t) > 2 {
		t = t[:2]
	}
	if _, ok := symbolMass[t]; !ok && len(t) == 2 {
		//"Cl1" vs "C1": prefer the tabulated one-letter symbol
		if _, ok1 := symbolMass[t[:1]]; ok1 {
			return t[:1]
		}
	}
	return t
}

func symbolFromLabel(label string) string {
	return normalizeSymbol(label)
}

/*symOp is one crystallographic symmetry operation in the "x, y+1/2, -z"
notation: an affine map over fractional coordinates.*/
type symOp struct {
	rot   [3][3]float64
	trans [3]float64
}

// parseSymOp parses a symmetry operation expression. Each of the three
// comma-separated components is a sum of terms: optionally signed x/y/z
// (with an optional rational or decimal coefficient) and rational or
// decimal constants.
func parseSymOp(expr string) (*symOp, error) {
	comps := strings.Split(tl(expr), ",")
	if len(comps) != 3 {
		return nil, fmt.Errorf("symop %q: need 3 components, got %d", expr, len(comps))
	}
	op := new(symOp)
	for i, comp := range comps {
		if err := parseSymOpComp(strings.TrimSpace(comp), &op.rot[i], &op.trans[i]); err != nil {
			return nil, fmt.Errorf("symop %q: %w", expr, err)
		}
	}
	return op, nil
}

func parseSymOpComp(comp string, row *[3]float64, trans *float64) error {
	if comp == "" {
		return fmt.Errorf("empty component")
	}
	//split into signed terms
	terms := make([]string, 0, 3)
	start := 0
	for i, r := range comp {
		if i > 0 && (r == '+' || r == '-') {
			terms = append(terms, strings.TrimSpace(comp[start:i]))
			start = i
		}
	}
	terms = append(terms, strings.TrimSpace(comp[start:]))
	for _, term := range terms {
		if term == "" || term == "+" || term == "-" {
			return fmt.Errorf("malformed term in %q", comp)
		}
		sign := 1.0
		if term[0] == '+' {
			term = strings.TrimSpace(term[1:])
		} else if term[0] == '-' {
			sign = -1.0
			term = strings.TrimSpace(term[1:])
		}
		axis := -1
		for j, a := range []string{"x", "y", "z"} {
			if strings.Contains(term, a) {
				axis = j
				term = strings.TrimSpace(strings.Replace(term, a, "", 1))
				break
			}
		}
		coeff := 1.0
		if term != "" {
			term = strings.TrimSuffix(strings.TrimSpace(term), "*")
			c, err := parseRational(term)
			if err != nil {
				return fmt.Errorf("bad coefficient %q: %w", term, err)
			}
			coeff = c
		}
		if axis >= 0 {
			row[axis] += sign * coeff
		} else {
			*trans += sign * coeff
		}
	}
	return nil
}

//parses "1/2" or "0.5".
func parseRational(s string) (float64, error) {
	if n, d, ok := strings.Cut(s, "/"); ok {
		num, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
		den, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			return 0, err
		}
		if den == 0 {
			return 0, fmt.Errorf("zero denominator in %q", s)
		}
		return num / den, nil
	}
	return strconv.ParseFloat(s, 64)
}

//apply maps a fractional coordinate through the operation and wraps the
//result into [0, 1).
func (op *symOp) apply(f []float64) []float64 {
	ret := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v := op.trans[i]
		for j := 0; j < 3; j++ {
			v += op.rot[i][j] * f[j]
		}
		v = v - math.Floor(v)
		if v > 1-fracTol { //0.9999... is the same position as 0
			v = 0
		}
		ret[i] = v
	}
	return ret
}

/*
 * pharmagist.go, part of gopharm.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * Gopharm is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */

package pharm

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// PharmagistNames are the atom names and types used for each feature kind in PharmaGist
// mol2 files.
var PharmagistNames = nameTable{
	HBAcceptor:     "ACC",
	HBDonor:        "DON",
	AromaticRing:   "AR",
	Hydrophobic:    "HYD",
	PositiveCharge: "CAT",
	NegativeCharge: "ANI",
	ExcludedVolume: "EXC",
	IncludedVolume: "INC",
}

// DefaultPharmagistRadius is the radius, in angstroms, given to features read from
// mol2 files that don't carry one.
const DefaultPharmagistRadius = 1.0

const (
	tripos       = "@<TRIPOS>"
	triposMol    = "@<TRIPOS>MOLECULE"
	triposDummy  = "Du"
	triposAtom   = "ATOM"
	triposBond   = "BOND"
	pharmagistTy = "SMALL"
)

// EncodePharmagist returns a mol2 file with one molecule per pharmacophore in records,
// all named name. The radius of each feature is stored in the charge column and its
// direction, if any, as a dummy atom bonded to the feature, 1 angstrom away from it.
func EncodePharmagist(name string, records ...[]*Point) ([]byte, error) {
	if name == "" {
		name = defaultPharmagistName
	}
	var out bytes.Buffer
	for _, points := range records {
		atoms := 0
		bonds := 0
		for _, p := range points {
			atoms++
			if p.HasDirection() {
				atoms++
				bonds++
			}
		}
		fmt.Fprintf(&out, "%s\n%s\n%5d %5d 0 0 0\n%s\nUSER_CHARGES\n\n", triposMol, name, atoms, bonds, pharmagistTy)
		fmt.Fprintf(&out, "%s%s\n", tripos, triposAtom)
		id := 1
		bondlines := make([]string, 0, bonds)
		for _, p := range points {
			g := genericFeature(p)
			tag := PharmagistNames[g.Kind]
			writeMol2Atom(&out, id, tag, g.Center, tag, g.Radius)
			if g.HasDirection {
				var tip [3]float64
				for j := range tip {
					tip[j] = g.Center[j] + g.Direction[j]
				}
				writeMol2Atom(&out, id+1, triposDummy, tip, triposDummy, 0)
				bondlines = append(bondlines, fmt.Sprintf("%6d%6d%6d 1", len(bondlines)+1, id, id+1))
				id++
			}
			id++
		}
		if len(bondlines) > 0 {
			fmt.Fprintf(&out, "%s%s\n", tripos, triposBond)
			for _, b := range bondlines {
				fmt.Fprintln(&out, b)
			}
		}
		fmt.Fprintln(&out)
	}
	return out.Bytes(), nil
}

func writeMol2Atom(out *bytes.Buffer, id int, name string, c [3]float64, atype string, charge float64) {
	fmt.Fprintf(out, "%7d %-4s %12.6f %12.6f %12.6f %-5s %4d %-4s %10.6f\n", id, name, c[0], c[1], c[2], atype, 1, name, charge)
}

// DecodePharmagistAll reads every pharmacophore in a PharmaGist mol2 file.
func DecodePharmagistAll(data []byte) ([][]*Point, error) {
	blocks, err := mol2Records(data)
	if err != nil {
		return nil, errDecorate(err, "DecodePharmagistAll")
	}
	ret := make([][]*Point, 0, len(blocks))
	for i, b := range blocks {
		points, err := decodeMol2Record(b, i)
		if err != nil {
			return nil, errDecorate(err, "DecodePharmagistAll")
		}
		ret = append(ret, points)
	}
	return ret, nil
}

// DecodePharmagist reads the pharmacophore in the position index (0-based) of a
// PharmaGist mol2 file.
func DecodePharmagist(data []byte, index int) ([]*Point, error) {
	blocks, err := mol2Records(data)
	if err != nil {
		return nil, errDecorate(err, "DecodePharmagist")
	}
	if index < 0 || index >= len(blocks) {
		return nil, newError(ErrInvalidIndex, "DecodePharmagist", "pharmacophore %d requested, file has %d", index, len(blocks))
	}
	points, err := decodeMol2Record(blocks[index], index)
	if err != nil {
		return nil, errDecorate(err, "DecodePharmagist")
	}
	return points, nil
}

// mol2Records splits a mol2 file in molecule records, each one a slice with the
// lines that follow the MOLECULE tag.
func mol2Records(data []byte) ([][]string, error) {
	ret := make([][]string, 0, 2)
	var curr []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == triposMol {
			if curr != nil {
				ret = append(ret, curr)
			}
			curr = make([]string, 0, 16)
			continue
		}
		if curr == nil {
			//comments before the first record
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return nil, newError(ErrMalformedFormat, "mol2Records", "unexpected text before the first molecule: %q", line)
		}
		curr = append(curr, line)
	}
	if err := sc.Err(); err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "mol2Records", "reading")
	}
	if curr != nil {
		ret = append(ret, curr)
	}
	if len(ret) == 0 {
		return nil, newError(ErrMalformedFormat, "mol2Records", "no %s records", triposMol)
	}
	return ret, nil
}

type mol2Atom struct {
	id     int
	atype  string
	coords [3]float64
	charge float64
}

func decodeMol2Record(lines []string, index int) ([]*Point, error) {
	if len(lines) < 2 {
		return nil, newError(ErrMalformedFormat, "decodeMol2Record", "record %d: truncated header", index)
	}
	counts := strings.Fields(lines[1])
	if len(counts) < 1 {
		return nil, newError(ErrMalformedFormat, "decodeMol2Record", "record %d: missing atom count", index)
	}
	natoms, err := strconv.Atoi(counts[0])
	if err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "decodeMol2Record", "record %d: atom count", index)
	}
	atoms := make([]*mol2Atom, 0, natoms)
	byID := make(map[int]*mol2Atom, natoms)
	bonds := make([][2]int, 0, natoms/2)
	section := ""
	for _, line := range lines[2:] {
		if strings.HasPrefix(line, tripos) {
			section = strings.TrimPrefix(line, tripos)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch section {
		case triposAtom:
			a, err := readMol2Atom(fields)
			if err != nil {
				return nil, wrapError(ErrMalformedFormat, err, "decodeMol2Record", "record %d: atom line %q", index, line)
			}
			if _, ok := byID[a.id]; ok {
				return nil, newError(ErrMalformedFormat, "decodeMol2Record", "record %d: repeated atom id %d", index, a.id)
			}
			atoms = append(atoms, a)
			byID[a.id] = a
		case triposBond:
			if len(fields) < 3 {
				return nil, newError(ErrMalformedFormat, "decodeMol2Record", "record %d: bond line %q", index, line)
			}
			a1, err1 := strconv.Atoi(fields[1])
			a2, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, newError(ErrMalformedFormat, "decodeMol2Record", "record %d: bond line %q", index, line)
			}
			bonds = append(bonds, [2]int{a1, a2})
		}
	}
	if len(atoms) != natoms {
		return nil, newError(ErrMalformedFormat, "decodeMol2Record", "record %d: %d atoms declared, %d read", index, natoms, len(atoms))
	}
	dirs, err := mol2Directions(byID, bonds)
	if err != nil {
		return nil, errDecorate(err, "decodeMol2Record")
	}
	points := make([]*Point, 0, len(atoms))
	for _, a := range atoms {
		if a.atype == triposDummy {
			continue
		}
		kind, ok := PharmagistNames.kind(a.atype)
		if !ok {
			return nil, newError(ErrUnknownFeatureName, "decodeMol2Record", "record %d: atom type %q", index, a.atype)
		}
		radius := a.charge
		if radius <= 0 {
			logger.Warn("feature without radius, using default", zap.Int("record", index), zap.Int("atom", a.id), zap.Float64("radius", DefaultPharmagistRadius))
			radius = DefaultPharmagistRadius
		}
		p, err := decodedPoint(kind, a.coords, radius, dirs[a.id])
		if err != nil {
			return nil, errDecorate(err, "decodeMol2Record")
		}
		points = append(points, p)
	}
	return points, nil
}

// readMol2Atom parses the fields of an atom line. The substructure and charge
// columns are optional.
func readMol2Atom(fields []string) (*mol2Atom, error) {
	if len(fields) < 6 {
		return nil, errors.Newf("expected at least 6 fields, got %d", len(fields))
	}
	a := new(mol2Atom)
	errs := make([]error, 4)
	a.id, errs[0] = strconv.Atoi(fields[0])
	for j := 0; j < 3; j++ {
		a.coords[j], errs[j+1] = strconv.ParseFloat(fields[2+j], 64)
	}
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	a.atype = fields[5]
	if len(fields) >= 9 {
		c, err := strconv.ParseFloat(fields[8], 64)
		if err != nil {
			return nil, err
		}
		a.charge = c
	}
	return a, nil
}

// mol2Directions returns the direction of each feature atom bonded to a dummy atom,
// by atom id.
func mol2Directions(byID map[int]*mol2Atom, bonds [][2]int) (map[int][]float64, error) {
	dirs := make(map[int][]float64)
	used := make(map[int]bool)
	for _, b := range bonds {
		a1, ok1 := byID[b[0]]
		a2, ok2 := byID[b[1]]
		if !ok1 || !ok2 {
			return nil, newError(ErrMalformedFormat, "mol2Directions", "bond %d-%d refers to missing atoms", b[0], b[1])
		}
		if a1.atype == triposDummy {
			a1, a2 = a2, a1
		}
		if a2.atype != triposDummy || a1.atype == triposDummy {
			return nil, newError(ErrMalformedFormat, "mol2Directions", "bond %d-%d is not between a feature and a dummy atom", b[0], b[1])
		}
		if _, ok := dirs[a1.id]; ok || used[a2.id] {
			return nil, newError(ErrMalformedFormat, "mol2Directions", "more than one direction for atom %d", a1.id)
		}
		used[a2.id] = true
		dirs[a1.id] = []float64{a2.coords[0] - a1.coords[0], a2.coords[1] - a1.coords[1], a2.coords[2] - a1.coords[2]}
	}
	for id, a := range byID {
		if a.atype == triposDummy && !used[id] {
			return nil, newError(ErrMalformedFormat, "mol2Directions", "dummy atom %d not bonded to a feature", id)
		}
	}
	return dirs, nil
}

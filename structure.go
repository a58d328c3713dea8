/*
 * structure.go, part of gopharm.
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
	"strconv"
	"strings"

	v3 "github.com/rmera/gopharm/v3"
)

// Structure is a molecular system (a ligand or a receptor) associated to a pharmacophore.
type Structure interface {
	//Number of atoms in the structure
	Len() int
}

// StructureParser builds a Structure from the text embedded in a pharmacophore file.
type StructureParser interface {
	ParseStructure(block string) (Structure, error)
}

// Atom contains the information of an atom read from a PDB block, except for its coordinates.
type Atom struct {
	Name      string
	ID        int
	MolName   string
	MolID     int
	Chain     byte
	Occupancy float64
	Bfactor   float64
	Symbol    string
	Het       bool // is hetatm in the pdb file?
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

// Molecule is the default Structure: a set of atoms and their coordinates, in angstroms.
type Molecule struct {
	Atoms  []*Atom
	Coords *v3.Matrix
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int { return len(M.Atoms) }

// Atom returns the ith atom of the molecule.
func (M *Molecule) Atom(i int) *Atom { return M.Atoms[i] }

// Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	ret := &Molecule{Atoms: make([]*Atom, len(M.Atoms))}
	for i, a := range M.Atoms {
		ret.Atoms[i] = a.Copy()
	}
	if M.Coords != nil {
		ret.Coords = M.Coords.Copy()
	}
	return ret
}

// PDBParser reads the ATOM and HETATM records of a PDB block. Only the first
// model is read.
type PDBParser struct{}

// ParseStructure returns a *Molecule with the atoms in the PDB text block.
func (PDBParser) ParseStructure(block string) (Structure, error) {
	mol := &Molecule{Atoms: make([]*Atom, 0)}
	coords := make([]float64, 0, 30)
	sc := bufio.NewScanner(strings.NewReader(block))
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		atom, c, err := readPDBLine(line, lineno)
		if err != nil {
			return nil, errDecorate(err, "PDBParser.ParseStructure")
		}
		mol.Atoms = append(mol.Atoms, atom)
		coords = append(coords, c...)
	}
	if err := sc.Err(); err != nil {
		return nil, wrapError(ErrStructureParse, err, "PDBParser.ParseStructure", "reading block")
	}
	if len(mol.Atoms) == 0 {
		return nil, newError(ErrStructureParse, "PDBParser.ParseStructure", "no atoms in block")
	}
	var err error
	mol.Coords, err = v3.NewMatrix(coords)
	if err != nil {
		return nil, wrapError(ErrStructureParse, err, "PDBParser.ParseStructure", "building coordinates")
	}
	return mol, nil
}

// readPDBLine parses an ATOM or HETATM line. It returns an Atom with all the information
// in the line except for the coordinates, which are returned separately.
func readPDBLine(line string, lineno int) (*Atom, []float64, error) {
	if len(line) < 54 {
		return nil, nil, newError(ErrStructureParse, "readPDBLine", "line %d too short", lineno)
	}
	//accumulate errors to check at the end of the line.
	err := make([]error, 5)
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.Chain = line[21]
	atom.MolID, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	//The rest of the fields are optional.
	//No error checking, missing fields just stay zero.
	if len(line) >= 60 {
		atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		atom.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
	}
	if atom.Symbol == "" {
		atom.Symbol = symbolFromName(atom.Name)
	}
	for _, e := range err {
		if e != nil {
			return nil, nil, wrapError(ErrStructureParse, e, "readPDBLine", "line %d", lineno)
		}
	}
	return atom, coords, nil
}

// symbolFromName tries to guess a chemical element symbol from a PDB atom name.
// It only deals with some common bio-elements, and returns an empty string
// when it can't guess.
func symbolFromName(name string) string {
	if name == "" {
		return ""
	}
	//I think only Hs can have 4-char names in amber.
	if len(name) == 4 || name[0] == 'H' {
		return "H"
	}
	switch name {
	case "CU":
		return "Cu"
	case "CO":
		return "Co"
	case "CL":
		return "Cl"
	case "NA":
		return "Na"
	case "SE":
		return "Se"
	case "ZN":
		return "Zn"
	}
	switch name[0] {
	case 'C', 'N', 'O', 'P', 'S':
		return name[:1]
	}
	return ""
}

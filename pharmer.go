/*
 * pharmer.go, part of gopharm.
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
	"encoding/json"

	"go.uber.org/zap"
)

// PharmerNames are the names used for each feature kind in pharmer files.
var PharmerNames = nameTable{
	HBAcceptor:     "HydrogenAcceptor",
	HBDonor:        "HydrogenDonor",
	AromaticRing:   "Aromatic",
	Hydrophobic:    "Hydrophobic",
	PositiveCharge: "PositiveIon",
	NegativeCharge: "NegativeIon",
	ExcludedVolume: "ExclusionSphere",
	IncludedVolume: "InclusionSphere",
}

// Associated contains the molecular systems embedded in a pharmacophore file, as text
// (PDB blocks, for pharmer). Empty strings mean no structure.
type Associated struct {
	Ligand   string
	Receptor string
}

type pharmerVector struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

type pharmerPoint struct {
	Name     string         `json:"name"`
	Svector  *pharmerVector `json:"svector"`
	Hasvec   bool           `json:"hasvec"`
	X        *float64       `json:"x"`
	Y        *float64       `json:"y"`
	Z        *float64       `json:"z"`
	Radius   *float64       `json:"radius"`
	Enabled  bool           `json:"enabled"`
	VectorOn int            `json:"vector_on"`
	Minsize  string         `json:"minsize"`
	Maxsize  string         `json:"maxsize"`
	Selected bool           `json:"selected"`
}

type pharmerFile struct {
	Points   *[]pharmerPoint `json:"points"`
	Ligand   string          `json:"ligand,omitempty"`
	Receptor string          `json:"receptor,omitempty"`
}

// DecodePharmer reads the points, and the associated ligand and receptor, if any, from
// a pharmer JSON document.
func DecodePharmer(data []byte) ([]*Point, Associated, error) {
	var f pharmerFile
	var assoc Associated
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, assoc, wrapError(ErrMalformedFormat, err, "DecodePharmer", "invalid JSON")
	}
	if f.Points == nil {
		return nil, assoc, newError(ErrMalformedFormat, "DecodePharmer", "no points array")
	}
	points := make([]*Point, 0, len(*f.Points))
	for i, e := range *f.Points {
		kind, ok := PharmerNames.kind(e.Name)
		if !ok {
			return nil, assoc, newError(ErrUnknownFeatureName, "DecodePharmer", "point %d: %q", i, e.Name)
		}
		if e.X == nil || e.Y == nil || e.Z == nil || e.Radius == nil {
			return nil, assoc, newError(ErrMalformedFormat, "DecodePharmer", "point %d: missing center or radius", i)
		}
		var dir []float64
		if e.Hasvec {
			v := e.Svector
			if v == nil || v.X == nil || v.Y == nil || v.Z == nil {
				return nil, assoc, newError(ErrMalformedFormat, "DecodePharmer", "point %d: hasvec set without svector", i)
			}
			dir = []float64{*v.X, *v.Y, *v.Z}
		}
		p, err := decodedPoint(kind, [3]float64{*e.X, *e.Y, *e.Z}, *e.Radius, dir)
		if err != nil {
			return nil, assoc, errDecorate(err, "DecodePharmer")
		}
		points = append(points, p)
	}
	assoc.Ligand = f.Ligand
	assoc.Receptor = f.Receptor
	logger.Debug("pharmer decoded", zap.Int("points", len(points)), zap.Bool("ligand", assoc.Ligand != ""), zap.Bool("receptor", assoc.Receptor != ""))
	return points, assoc, nil
}

// EncodePharmer returns the pharmer JSON document for the given points and associated
// structures.
func EncodePharmer(points []*Point, assoc Associated) ([]byte, error) {
	pp := make([]pharmerPoint, 0, len(points))
	for _, p := range points {
		g := genericFeature(p)
		e := pharmerPoint{
			Name:    PharmerNames[g.Kind],
			Svector: newPharmerVector(1, 0, 0),
			X:       ptr(g.Center[0]),
			Y:       ptr(g.Center[1]),
			Z:       ptr(g.Center[2]),
			Radius:  ptr(g.Radius),
			Enabled: true,
		}
		if g.HasDirection {
			e.Hasvec = true
			e.Svector = newPharmerVector(g.Direction[0], g.Direction[1], g.Direction[2])
		}
		pp = append(pp, e)
	}
	f := pharmerFile{Points: &pp, Ligand: assoc.Ligand, Receptor: assoc.Receptor}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "EncodePharmer", "marshaling")
	}
	return data, nil
}

func newPharmerVector(x, y, z float64) *pharmerVector {
	return &pharmerVector{X: ptr(x), Y: ptr(y), Z: ptr(z)}
}

func ptr(f float64) *float64 { return &f }

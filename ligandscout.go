/*
 * ligandscout.go, part of gopharm.
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
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// LigandScoutNames are the names used for each feature kind in LigandScout files.
// Volumes are not named in LigandScout, the names for excluded and included volumes
// are the values of the "type" attribute of volume elements.
var LigandScoutNames = nameTable{
	HBAcceptor:     "HBA",
	HBDonor:        "HBD",
	AromaticRing:   "AR",
	Hydrophobic:    "H",
	PositiveCharge: "PI",
	NegativeCharge: "NI",
	ExcludedVolume: "exclusion",
	IncludedVolume: "inclusion",
}

// angular tolerance written for plane normals, in radians.
const pmlNormalTolerance = 0.43633232

type pmlCoord struct {
	X         *float64 `xml:"x3,attr"`
	Y         *float64 `xml:"y3,attr"`
	Z         *float64 `xml:"z3,attr"`
	Tolerance *float64 `xml:"tolerance,attr"`
}

func newPMLCoord(c [3]float64, tol float64) *pmlCoord {
	return &pmlCoord{X: ptr(c[0]), Y: ptr(c[1]), Z: ptr(c[2]), Tolerance: ptr(tol)}
}

func (C *pmlCoord) vec(what string) ([3]float64, error) {
	var ret [3]float64
	if C == nil || C.X == nil || C.Y == nil || C.Z == nil {
		return ret, newError(ErrMalformedFormat, "pmlCoord.vec", "missing or incomplete %s", what)
	}
	ret[0], ret[1], ret[2] = *C.X, *C.Y, *C.Z
	return ret, nil
}

// pmlElement is any of the point, plane, vector or volume elements.
type pmlElement struct {
	XMLName        xml.Name
	Name           string    `xml:"name,attr,omitempty"`
	Type           string    `xml:"type,attr,omitempty"`
	FeatureID      string    `xml:"featureId,attr"`
	PointsToLigand string    `xml:"pointsToLigand,attr,omitempty"`
	HasSynthetic   string    `xml:"hasSyntheticProjectedPoint,attr,omitempty"`
	Optional       string    `xml:"optional,attr"`
	Disabled       string    `xml:"disabled,attr"`
	Weight         string    `xml:"weight,attr"`
	ID             string    `xml:"id,attr"`
	Position       *pmlCoord `xml:"position"`
	Normal         *pmlCoord `xml:"normal"`
	Origin         *pmlCoord `xml:"origin"`
	Target         *pmlCoord `xml:"target"`
}

type pmlFile struct {
	XMLName  xml.Name `xml:"pharmacophore"`
	Name     string   `xml:"name,attr"`
	ID       string   `xml:"id,attr"`
	Type     string   `xml:"pharmacophoreType,attr"`
	Elements []pmlElement
}

// EncodeLigandScout returns the points as a LigandScout pharmacophore (.pml). Excluded
// and included volumes with direction can't be represented in the format, and
// produce an error.
func EncodeLigandScout(points []*Point) ([]byte, error) {
	f := pmlFile{Name: "pharmacophore", ID: "pharmacophore0", Type: "LIGAND_SCOUT"}
	f.Elements = make([]pmlElement, 0, len(points))
	for i, p := range points {
		g := genericFeature(p)
		e := pmlElement{
			FeatureID: fmt.Sprintf("%s%d", LigandScoutNames[g.Kind], i+1),
			Optional:  "false",
			Disabled:  "false",
			Weight:    "1.0",
			ID:        fmt.Sprintf("feature%d", i),
		}
		var tip [3]float64
		for j := range tip {
			tip[j] = g.Center[j] + g.Direction[j]
		}
		switch {
		case g.Kind == ExcludedVolume || g.Kind == IncludedVolume:
			if g.HasDirection {
				return nil, newError(ErrUnsupportedFeatureForFormat, "EncodeLigandScout", "element %d: %s with direction", i, g.Kind)
			}
			e.XMLName.Local = "volume"
			e.Type = LigandScoutNames[g.Kind]
			e.Position = newPMLCoord(g.Center, g.Radius)
		case !g.HasDirection:
			e.XMLName.Local = "point"
			e.Name = LigandScoutNames[g.Kind]
			e.Position = newPMLCoord(g.Center, g.Radius)
		case g.Kind == AromaticRing:
			e.XMLName.Local = "plane"
			e.Name = LigandScoutNames[g.Kind]
			e.Position = newPMLCoord(g.Center, g.Radius)
			e.Normal = newPMLCoord(g.Direction, pmlNormalTolerance)
		case g.Kind == HBAcceptor:
			e.XMLName.Local = "vector"
			e.Name = LigandScoutNames[g.Kind]
			e.PointsToLigand = "true"
			e.HasSynthetic = "false"
			e.Origin = newPMLCoord(tip, g.Radius)
			e.Target = newPMLCoord(g.Center, g.Radius)
		default:
			e.XMLName.Local = "vector"
			e.Name = LigandScoutNames[g.Kind]
			e.PointsToLigand = "false"
			e.HasSynthetic = "false"
			e.Origin = newPMLCoord(g.Center, g.Radius)
			e.Target = newPMLCoord(tip, g.Radius)
		}
		f.Elements = append(f.Elements, e)
	}
	data, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "EncodeLigandScout", "marshaling")
	}
	ret := make([]byte, 0, len(xml.Header)+len(data)+1)
	ret = append(ret, xml.Header...)
	ret = append(ret, data...)
	return append(ret, '\n'), nil
}

// DecodeLigandScout reads the points of a LigandScout pharmacophore (.pml). If the root
// element is not a pharmacophore, the first pharmacophore element in the document is used.
func DecodeLigandScout(data []byte) ([]*Point, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	if err := pmlFindRoot(d); err != nil {
		return nil, errDecorate(err, "DecodeLigandScout")
	}
	points := make([]*Point, 0, 16)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, newError(ErrMalformedFormat, "DecodeLigandScout", "truncated document")
		}
		if err != nil {
			return nil, wrapError(ErrMalformedFormat, err, "DecodeLigandScout", "")
		}
		switch t := tok.(type) {
		case xml.EndElement:
			//the end of the pharmacophore element.
			return points, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "point", "plane", "vector", "volume":
			default:
				if err := d.Skip(); err != nil {
					return nil, wrapError(ErrMalformedFormat, err, "DecodeLigandScout", "")
				}
				continue
			}
			var e pmlElement
			if err := d.DecodeElement(&e, &t); err != nil {
				return nil, wrapError(ErrMalformedFormat, err, "DecodeLigandScout", "element %d", len(points))
			}
			p, err := e.point()
			if err != nil {
				return nil, errDecorate(err, "DecodeLigandScout")
			}
			points = append(points, p)
		}
	}
}

// pmlFindRoot advances d until right after the first pharmacophore start element.
func pmlFindRoot(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return newError(ErrMalformedFormat, "pmlFindRoot", "no pharmacophore element")
		}
		if err != nil {
			return wrapError(ErrMalformedFormat, err, "pmlFindRoot", "")
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "pharmacophore" {
			return nil
		}
	}
}

func (E *pmlElement) point() (*Point, error) {
	var kind FeatureKind
	var ok bool
	if E.XMLName.Local == "volume" {
		kind, ok = LigandScoutNames.kind(E.Type)
		if !ok || (kind != ExcludedVolume && kind != IncludedVolume) {
			return nil, newError(ErrUnknownFeatureName, "pmlElement.point", "volume type %q", E.Type)
		}
	} else if kind, ok = LigandScoutNames.kind(E.Name); !ok || kind == ExcludedVolume || kind == IncludedVolume {
		return nil, newError(ErrUnknownFeatureName, "pmlElement.point", "%s name %q", E.XMLName.Local, E.Name)
	}
	var center [3]float64
	var radius *float64
	var dir []float64
	var err error
	switch E.XMLName.Local {
	case "vector":
		origin, err := E.Origin.vec("origin")
		if err != nil {
			return nil, errDecorate(err, "pmlElement.point")
		}
		target, err := E.Target.vec("target")
		if err != nil {
			return nil, errDecorate(err, "pmlElement.point")
		}
		from, to := origin, target
		radius = E.Origin.Tolerance
		if E.PointsToLigand == "true" {
			from, to = target, origin
			radius = E.Target.Tolerance
		}
		center = from
		dir = []float64{to[0] - from[0], to[1] - from[1], to[2] - from[2]}
	case "plane":
		center, err = E.Position.vec("position")
		if err != nil {
			return nil, errDecorate(err, "pmlElement.point")
		}
		normal, err := E.Normal.vec("normal")
		if err != nil {
			return nil, errDecorate(err, "pmlElement.point")
		}
		radius = E.Position.Tolerance
		dir = normal[:]
	default:
		center, err = E.Position.vec("position")
		if err != nil {
			return nil, errDecorate(err, "pmlElement.point")
		}
		radius = E.Position.Tolerance
	}
	if radius == nil {
		return nil, newError(ErrMalformedFormat, "pmlElement.point", "%s without tolerance", E.XMLName.Local)
	}
	p, err := decodedPoint(kind, center, *radius, dir)
	if err != nil {
		return nil, errDecorate(err, "pmlElement.point")
	}
	return p, nil
}

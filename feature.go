/*
 * feature.go, part of gopharm.
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
	"strings"
)

// FeatureKind is the chemical nature of a pharmacophoric point.
type FeatureKind int

// The feature kinds, in canonical order.
const (
	HBAcceptor FeatureKind = iota
	HBDonor
	AromaticRing
	Hydrophobic
	PositiveCharge
	NegativeCharge
	ExcludedVolume
	IncludedVolume
	NFeatureKinds int = iota
)

var featureShorts = [NFeatureKinds]string{"A", "D", "R", "H", "P", "N", "E", "I"}

var featureNames = [NFeatureKinds]string{
	"hb acceptor",
	"hb donor",
	"aromatic ring",
	"hydrophobicity",
	"positive charge",
	"negative charge",
	"excluded volume",
	"included volume",
}

var elementPrefixes = [NFeatureKinds]string{
	"HbAcceptor",
	"HbDonor",
	"AromaticRing",
	"Hydrophobicity",
	"PositiveCharge",
	"NegativeCharge",
	"ExcludedVolume",
	"IncludedVolume",
}

// Valid returns true if K is one of the eight feature kinds.
func (K FeatureKind) Valid() bool {
	return K >= 0 && int(K) < NFeatureKinds
}

// ShortName returns the one-letter code of the kind, or "?" for invalid kinds.
func (K FeatureKind) ShortName() string {
	if !K.Valid() {
		return "?"
	}
	return featureShorts[K]
}

// String returns the human-readable name of the kind.
func (K FeatureKind) String() string {
	if !K.Valid() {
		return "invalid feature"
	}
	return featureNames[K]
}

// ParseFeatureKind returns the kind with the given name or one-letter code.
// "hydrophobic" is accepted as an alias of "hydrophobicity". Names are case
// insensitive, codes are not.
func ParseFeatureKind(s string) (FeatureKind, error) {
	for i, v := range featureShorts {
		if s == v {
			return FeatureKind(i), nil
		}
	}
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "hydrophobic" {
		return Hydrophobic, nil
	}
	for i, v := range featureNames {
		if name == v {
			return FeatureKind(i), nil
		}
	}
	return -1, newError(ErrInvalidFeatureKind, "ParseFeatureKind", "%q", s)
}

// FeatureKinds returns all the feature kinds, in canonical order.
func FeatureKinds() []FeatureKind {
	ret := make([]FeatureKind, NFeatureKinds)
	for i := range ret {
		ret[i] = FeatureKind(i)
	}
	return ret
}

// Shape tells whether a pharmacophoric point carries a direction.
type Shape int

const (
	Sphere Shape = iota
	SphereAndVector
)

func (S Shape) String() string {
	if S == SphereAndVector {
		return "SphereAndVector"
	}
	return "Sphere"
}

// nameTable maps each feature kind to its name in some file format.
type nameTable [NFeatureKinds]string

// kind returns the feature kind with the given name in the table.
func (T *nameTable) kind(name string) (FeatureKind, bool) {
	for i, v := range T {
		if v == name {
			return FeatureKind(i), true
		}
	}
	return -1, false
}

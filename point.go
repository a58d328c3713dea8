/*
 * point.go, part of gopharm.
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
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/rmera/gopharm/units"
	v3 "github.com/rmera/gopharm/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerances used by Point.Equal, in angstroms (the direction one is dimensionless).
const (
	RadiusTolerance    = 1e-2
	CenterTolerance    = 1e-4
	DirectionTolerance = 1e-4
)

// Point is a pharmacophoric point: a chemical feature with a position, a tolerance
// sphere and, optionally, a direction.
type Point struct {
	kind      FeatureKind
	center    *v3.Matrix //1x3, angstroms
	radius    float64    //angstroms
	shape     Shape
	direction *v3.Matrix //1x3, unit norm. Only meaningful for SphereAndVector
	atoms     []int
	//Index of the pharmacophore the point belongs to, when more than one
	//pharmacophore is handled at the same time.
	PharmacophoreIndex int
}

// NewPoint returns a new pharmacophoric point of the given kind. center must be a length
// with 3 components, radius a positive length with only one. If direction is not nil, it
// must have 3 components and a non-zero norm. It will be normalized. atoms are the indices
// of the atoms that form the feature. A nil slice means that the point is not associated
// to any atom, while an empty one means an empty set. Invalid arguments return
// an error and no point.
func NewPoint(kind FeatureKind, center, radius units.Quantity, direction []float64, atoms []int) (*Point, error) {
	if !kind.Valid() {
		return nil, newError(ErrInvalidFeatureKind, "NewPoint", "%d", int(kind))
	}
	P := &Point{kind: kind}
	var err error
	if P.center, err = centerFromQuantity(center); err != nil {
		return nil, errDecorate(err, "NewPoint")
	}
	if P.radius, err = radiusFromQuantity(radius); err != nil {
		return nil, errDecorate(err, "NewPoint")
	}
	if direction != nil {
		if P.direction, err = unitVector(direction); err != nil {
			return nil, errDecorate(err, "NewPoint")
		}
		P.shape = SphereAndVector
	}
	if P.atoms, err = atomSet(atoms); err != nil {
		return nil, errDecorate(err, "NewPoint")
	}
	return P, nil
}

func centerFromQuantity(q units.Quantity) (*v3.Matrix, error) {
	if q.Dim() != units.Length {
		return nil, newError(ErrInvalidQuantity, "centerFromQuantity", "center must be a length, got %s", q.Dim())
	}
	vals, err := q.Values(units.Angstrom)
	if err != nil {
		return nil, wrapError(ErrInvalidQuantity, err, "centerFromQuantity", "center")
	}
	if len(vals) != 3 {
		return nil, newError(ErrInvalidQuantity, "centerFromQuantity", "center must have 3 components, got %d", len(vals))
	}
	if !finite(vals) {
		return nil, newError(ErrInvalidQuantity, "centerFromQuantity", "center %v is not finite", vals)
	}
	return v3.Vec(vals[0], vals[1], vals[2]), nil
}

func radiusFromQuantity(q units.Quantity) (float64, error) {
	if q.Dim() != units.Length {
		return 0, newError(ErrInvalidQuantity, "radiusFromQuantity", "radius must be a length, got %s", q.Dim())
	}
	r, err := q.Value(units.Angstrom)
	if err != nil {
		return 0, wrapError(ErrInvalidQuantity, err, "radiusFromQuantity", "radius")
	}
	if !(r > 0) || math.IsInf(r, 1) {
		return 0, newError(ErrInvalidQuantity, "radiusFromQuantity", "radius must be positive, got %g", r)
	}
	return r, nil
}

func unitVector(d []float64) (*v3.Matrix, error) {
	if len(d) != 3 {
		return nil, newError(ErrInvalidQuantity, "unitVector", "direction must have 3 components, got %d", len(d))
	}
	norm := floats.Norm(d, 2)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, newError(ErrInvalidQuantity, "unitVector", "direction %v can't be normalized", d)
	}
	ret := v3.Vec(d[0], d[1], d[2])
	ret.Unit(ret)
	return ret, nil
}

// atomSet returns a sorted copy of atoms without repeated elements, keeping
// the difference between a nil and an empty slice.
func atomSet(atoms []int) ([]int, error) {
	if atoms == nil {
		return nil, nil
	}
	ret := make([]int, len(atoms))
	copy(ret, atoms)
	slices.Sort(ret)
	ret = slices.Compact(ret)
	if len(ret) > 0 && ret[0] < 0 {
		return nil, newError(ErrInvalidIndex, "atomSet", "negative atom index %d", ret[0])
	}
	return ret, nil
}

func finite(v []float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Kind returns the feature kind of the point.
func (P *Point) Kind() FeatureKind { return P.kind }

// ShortName returns the one-letter code of the point's feature kind.
func (P *Point) ShortName() string { return P.kind.ShortName() }

// FeatureName returns the name of the point's feature kind.
func (P *Point) FeatureName() string { return P.kind.String() }

// Shape returns Sphere or SphereAndVector.
func (P *Point) Shape() Shape { return P.shape }

// HasDirection returns true if the point carries a direction.
func (P *Point) HasDirection() bool { return P.shape == SphereAndVector }

// ElementName returns the name of the point type, such as HbAcceptorSphereAndVector.
func (P *Point) ElementName() string {
	return elementPrefixes[P.kind] + P.shape.String()
}

// Center returns the coordinates of the center of the point, in the unit u.
func (P *Point) Center(u units.Unit) ([]float64, error) {
	v, err := P.CenterQuantity().Values(u)
	if err != nil {
		return nil, wrapError(ErrInvalidQuantity, err, "Point.Center", "")
	}
	return v, nil
}

// CenterQuantity returns the center of the point as a length.
func (P *Point) CenterQuantity() units.Quantity {
	return units.Angstroms(P.center.Row(0)...)
}

// Radius returns the radius of the point, in the unit u.
func (P *Point) Radius(u units.Unit) (float64, error) {
	v, err := P.RadiusQuantity().Value(u)
	if err != nil {
		return 0, wrapError(ErrInvalidQuantity, err, "Point.Radius", "")
	}
	return v, nil
}

// RadiusQuantity returns the radius of the point as a length.
func (P *Point) RadiusQuantity() units.Quantity {
	return units.Angstroms(P.radius)
}

// Direction returns a copy of the unit direction vector of the point.
func (P *Point) Direction() ([]float64, error) {
	if P.shape != SphereAndVector {
		return nil, newError(ErrNoDirection, "Point.Direction", "%s", P.ElementName())
	}
	return P.direction.Row(0), nil
}

// SetCenter replaces the center of the point. On error the point is not modified.
func (P *Point) SetCenter(q units.Quantity) error {
	c, err := centerFromQuantity(q)
	if err != nil {
		return errDecorate(err, "Point.SetCenter")
	}
	P.center = c
	return nil
}

// SetRadius replaces the radius of the point. On error the point is not modified.
func (P *Point) SetRadius(q units.Quantity) error {
	r, err := radiusFromQuantity(q)
	if err != nil {
		return errDecorate(err, "Point.SetRadius")
	}
	P.radius = r
	return nil
}

// SetDirection replaces the direction of the point. A nil direction turns the point
// into a sphere.
func (P *Point) SetDirection(d []float64) error {
	if d == nil {
		P.direction = nil
		P.shape = Sphere
		return nil
	}
	u, err := unitVector(d)
	if err != nil {
		return errDecorate(err, "Point.SetDirection")
	}
	P.direction = u
	P.shape = SphereAndVector
	return nil
}

// SetIndices replaces the atom indices of the point.
func (P *Point) SetIndices(atoms []int) error {
	a, err := atomSet(atoms)
	if err != nil {
		return errDecorate(err, "Point.SetIndices")
	}
	P.atoms = a
	return nil
}

// Indices returns a copy of the atom indices of the point, sorted.
// The result is nil if the point has no atom set.
func (P *Point) Indices() []int {
	if P.atoms == nil {
		return nil
	}
	ret := make([]int, len(P.atoms))
	copy(ret, P.atoms)
	return ret
}

// SameFeature returns true if P and O are the same chemical feature, that is, if
// they are of the same kind and are formed by the same atoms.
func (P *Point) SameFeature(O *Point) bool {
	if P == nil || O == nil {
		return P == O
	}
	if P.kind != O.kind {
		return false
	}
	if (P.atoms == nil) != (O.atoms == nil) {
		return false
	}
	return slices.Equal(P.atoms, O.atoms)
}

// Equal returns true if P and O describe the same point in space: same kind
// and shape, and radius, center and direction equal within RadiusTolerance,
// CenterTolerance and DirectionTolerance, respectively.
func (P *Point) Equal(O *Point) bool {
	if P == nil || O == nil {
		return P == O
	}
	if P.kind != O.kind || P.shape != O.shape {
		return false
	}
	if !scalar.EqualWithinAbs(P.radius, O.radius, RadiusTolerance) {
		return false
	}
	if !P.center.EqualWithin(O.center, CenterTolerance) {
		return false
	}
	if P.shape == SphereAndVector {
		return P.direction.EqualWithin(O.direction, DirectionTolerance)
	}
	return true
}

// String returns a representation of the point with its center, radius and direction.
func (P *Point) String() string {
	c := P.center.Round(0, 4)
	ret := fmt.Sprintf("%s(center: (%s, %s, %s); radius: %s", P.ElementName(), fmtDecimal(c[0]), fmtDecimal(c[1]), fmtDecimal(c[2]), fmtDecimal(scalar.Round(P.radius, 2)))
	if P.shape == SphereAndVector {
		d := P.direction.Round(0, 4)
		ret = fmt.Sprintf("%s; direction: (%s, %s, %s)", ret, fmtDecimal(d[0]), fmtDecimal(d[1]), fmtDecimal(d[2]))
	}
	return ret + ")"
}

// fmtDecimal prints f with the shortest representation, but always with a decimal point.
func fmtDecimal(f float64) string {
	if f == 0 {
		f = 0 //no negative zeroes
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Copy returns a deep copy of the point.
func (P *Point) Copy() *Point {
	if P == nil {
		panic("Attempted to copy a nil point")
	}
	ret := &Point{
		kind:               P.kind,
		center:             P.center.Copy(),
		radius:             P.radius,
		shape:              P.shape,
		atoms:              P.Indices(),
		PharmacophoreIndex: P.PharmacophoreIndex,
	}
	if P.direction != nil {
		ret.direction = P.direction.Copy()
	}
	return ret
}

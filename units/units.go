/*
 * units.go, part of gopharm.
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

package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// Conversion factors, kept in angstrom units.
const (
	A2Bohr = 1.889725989
	Bohr2A = 1 / 1.889725989
	A2nm   = 0.1
	nm2A   = 10.0
)

// Dimension is the dimensionality of a physical quantity. Only the dimensions
// needed to describe pharmacophoric geometry are supported.
type Dimension int

const (
	Dimensionless Dimension = iota
	Length
)

func (D Dimension) String() string {
	switch D {
	case Dimensionless:
		return "dimensionless"
	case Length:
		return "[L]"
	}
	return fmt.Sprintf("Dimension(%d)", int(D))
}

// Unit is a unit of measure. factor is the size of the unit expressed
// in the reference unit of its dimension (angstrom for lengths).
type Unit struct {
	name   string
	dim    Dimension
	factor float64
}

var (
	Angstrom   = Unit{"angstroms", Length, 1}
	Nanometer  = Unit{"nanometers", Length, nm2A}
	Picometer  = Unit{"picometers", Length, 0.01}
	Meter      = Unit{"meters", Length, 1e10}
	Bohr       = Unit{"bohr", Length, Bohr2A}
	NoUnit     = Unit{"dimensionless", Dimensionless, 1}
	knownUnits = map[string]Unit{
		"angstroms":     Angstrom,
		"angstrom":      Angstrom,
		"a":             Angstrom,
		"å":             Angstrom,
		"nanometers":    Nanometer,
		"nanometer":     Nanometer,
		"nm":            Nanometer,
		"picometers":    Picometer,
		"picometer":     Picometer,
		"pm":            Picometer,
		"meters":        Meter,
		"meter":         Meter,
		"m":             Meter,
		"bohr":          Bohr,
		"a0":            Bohr,
		"dimensionless": NoUnit,
		"":              NoUnit,
	}
)

// ErrDimension is wrapped by every error caused by mixing incompatible dimensions.
var ErrDimension = errors.New("units: incompatible dimensionality")

// ErrUnknownUnit is returned by ParseUnit for names it does not know.
var ErrUnknownUnit = errors.New("units: unknown unit")

func (U Unit) String() string { return U.name }

// Dim returns the dimension measured by U.
func (U Unit) Dim() Dimension { return U.dim }

// IsZero reports whether U is the zero Unit.
func (U Unit) IsZero() bool { return U.name == "" && U.factor == 0 }

// Compatible reports whether quantities in U can be converted to V.
func (U Unit) Compatible(V Unit) bool { return U.dim == V.dim && !U.IsZero() && !V.IsZero() }

// ParseUnit returns the unit with the given name. Names are case-insensitive
// and both singular and plural forms are accepted.
func ParseUnit(name string) (Unit, error) {
	u, ok := knownUnits[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Unit{}, errors.Wrapf(ErrUnknownUnit, "%q", name)
	}
	return u, nil
}

// Quantity is a scalar or a vector of values with a unit attached.
// The zero value has no unit and no values, and is not a valid quantity
// of any dimension.
type Quantity struct {
	v []float64
	u Unit
}

// New returns a quantity holding a copy of values in unit u.
func New(u Unit, values ...float64) Quantity {
	v := make([]float64, len(values))
	copy(v, values)
	return Quantity{v: v, u: u}
}

// Angstroms is a shortcut for New(Angstrom, values...)
func Angstroms(values ...float64) Quantity {
	return New(Angstrom, values...)
}

// Unit returns the unit of Q
func (Q Quantity) Unit() Unit { return Q.u }

// Dim returns the dimensionality of Q.
func (Q Quantity) Dim() Dimension { return Q.u.dim }

// Len returns the number of components of Q, 1 for scalars.
func (Q Quantity) Len() int { return len(Q.v) }

// IsZero reports whether Q is the zero Quantity.
func (Q Quantity) IsZero() bool { return Q.u.IsZero() && len(Q.v) == 0 }

// Convert returns Q expressed in the unit to. It fails if
// to and the unit of Q have different dimensionality.
func (Q Quantity) Convert(to Unit) (Quantity, error) {
	if !Q.u.Compatible(to) {
		return Quantity{}, errors.Wrapf(ErrDimension, "can't convert %s to %s", Q.u, to)
	}
	ret := Quantity{v: make([]float64, len(Q.v)), u: to}
	f := Q.u.factor / to.factor
	for i, val := range Q.v {
		ret.v[i] = val * f
	}
	return ret, nil
}

// Values returns a fresh slice with the components of Q expressed in unit to.
func (Q Quantity) Values(to Unit) ([]float64, error) {
	c, err := Q.Convert(to)
	if err != nil {
		return nil, err
	}
	return c.v, nil
}

// Value returns the scalar value of Q in unit to. It fails
// if Q is not a scalar.
func (Q Quantity) Value(to Unit) (float64, error) {
	if len(Q.v) != 1 {
		return math.NaN(), errors.Newf("units: quantity with %d components is not a scalar", len(Q.v))
	}
	v, err := Q.Values(to)
	if err != nil {
		return math.NaN(), err
	}
	return v[0], nil
}

// Standardize returns Q in the reference unit of its dimension.
func (Q Quantity) Standardize() Quantity {
	switch Q.u.dim {
	case Length:
		r, _ := Q.Convert(Angstrom) //can't fail, same dimension.
		return r
	default:
		return New(Q.u, Q.v...)
	}
}

func (Q Quantity) String() string {
	if len(Q.v) == 1 {
		return fmt.Sprintf("%g %s", Q.v[0], Q.u)
	}
	s := make([]string, len(Q.v))
	for i, v := range Q.v {
		s[i] = fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("[%s] %s", strings.Join(s, " "), Q.u)
}

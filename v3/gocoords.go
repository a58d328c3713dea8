/*
 * gocoords.go, part of gopharm.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Row returns a copy of the ith vector of F.
func (F *Matrix) Row(i int) []float64 {
	ret := make([]float64, 3)
	copy(ret, F.RawRowView(i))
	return ret
}

// AddVec adds the vector vec to each vector of the matrix A, putting
// the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		floats.AddTo(F.RawRowView(i), A.RawRowView(i), v)
	}
}

// SubVec subtracts the vector vec from each vector of the matrix A, putting
// the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		floats.SubTo(F.RawRowView(i), A.RawRowView(i), v)
	}
}

// Norm returns the Euclidean (Frobenius) norm of F. For a single
// vector that is its length.
func (F *Matrix) Norm() float64 {
	r, _ := F.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		n := floats.Norm(F.RawRowView(i), 2)
		sum += n * n
	}
	return math.Sqrt(sum)
}

// Unit puts in the receiver the vector A divided by its norm.
// Panics if A has zero norm.
func (F *Matrix) Unit(A *Matrix) {
	norm := A.Norm()
	if norm == 0 {
		panic(ErrZeroVector)
	}
	if F != A {
		F.Dense.Copy(A.Dense)
	}
	F.Dense.Scale(1.0/norm, F.Dense)
}

// EqualWithin reports whether F and A have the same shape and every element of F
// is within the absolute tolerance tol of the corresponding element of A.
func (F *Matrix) EqualWithin(A *Matrix, tol float64) bool {
	if F == nil || A == nil {
		return F == A
	}
	fr, fc := F.Dims()
	ar, ac := A.Dims()
	if fr != ar || fc != ac {
		return false
	}
	for i := 0; i < fr; i++ {
		eq := floats.EqualFunc(F.RawRowView(i), A.RawRowView(i), func(a, b float64) bool {
			return scalar.EqualWithinAbs(a, b, tol)
		})
		if !eq {
			return false
		}
	}
	return true
}

// Round returns a copy of the ith vector of F with each component
// rounded to the given number of decimal places.
func (F *Matrix) Round(i, places int) []float64 {
	ret := F.Row(i)
	for k, v := range ret {
		ret[k] = scalar.Round(v, places)
	}
	return ret
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, r)
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		v[i] = fmt.Sprintf("%6.2f %6.2f %6.2f", row[0], row[1], row[2])
	}
	return "[" + strings.Join(v, "\n ") + "]"
}

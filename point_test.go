/*
 * point_test.go, part of gopharm.
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
	"math"
	"testing"

	"github.com/rmera/gopharm/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPoint builds a point in angstroms, failing the test on error.
func newTestPoint(Te *testing.T, kind FeatureKind, center [3]float64, radius float64, dir []float64, atoms []int) *Point {
	Te.Helper()
	p, err := NewPoint(kind, units.Angstroms(center[:]...), units.Angstroms(radius), dir, atoms)
	require.NoError(Te, err)
	return p
}

func TestNewPoint(Te *testing.T) {
	p, err := NewPoint(HBAcceptor, units.New(units.Nanometer, 0.1, 0.2, 0.3), units.Angstroms(1.5), []float64{0, 0, 2}, []int{5, 3, 5})
	require.NoError(Te, err)
	c, err := p.Center(units.Angstrom)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{1, 2, 3}, c, 1e-12)
	r, err := p.Radius(units.Nanometer)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.15, r, 1e-12)
	d, err := p.Direction()
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, 0, 1}, d)
	assert.Equal(Te, []int{3, 5}, p.Indices())
	assert.Equal(Te, "A", p.ShortName())
	assert.Equal(Te, "hb acceptor", p.FeatureName())
	assert.Equal(Te, SphereAndVector, p.Shape())
	assert.Equal(Te, "HbAcceptorSphereAndVector", p.ElementName())
	assert.Equal(Te, 0, p.PharmacophoreIndex)

	s := newTestPoint(Te, Hydrophobic, [3]float64{0, 0, 0}, 1, nil, nil)
	assert.False(Te, s.HasDirection())
	assert.Equal(Te, "HydrophobicitySphere", s.ElementName())
	_, err = s.Direction()
	assert.ErrorIs(Te, err, ErrNoDirection)
	assert.Nil(Te, s.Indices())

	_, err = s.Center(units.NoUnit)
	assert.ErrorIs(Te, err, ErrInvalidQuantity)
}

func TestNewPointErrors(Te *testing.T) {
	center := units.Angstroms(1, 2, 3)
	radius := units.Angstroms(1)
	cases := map[string]struct {
		kind   FeatureKind
		center units.Quantity
		radius units.Quantity
		dir    []float64
		atoms  []int
		kerr   error
	}{
		"bad kind":           {FeatureKind(8), center, radius, nil, nil, ErrInvalidFeatureKind},
		"dimensionless":      {HBDonor, units.New(units.NoUnit, 1, 2, 3), radius, nil, nil, ErrInvalidQuantity},
		"2D center":          {HBDonor, units.Angstroms(1, 2), radius, nil, nil, ErrInvalidQuantity},
		"NaN center":         {HBDonor, units.Angstroms(1, math.NaN(), 3), radius, nil, nil, ErrInvalidQuantity},
		"zero radius":        {HBDonor, center, units.Angstroms(0), nil, nil, ErrInvalidQuantity},
		"negative radius":    {HBDonor, center, units.Angstroms(-1), nil, nil, ErrInvalidQuantity},
		"vector radius":      {HBDonor, center, units.Angstroms(1, 1), nil, nil, ErrInvalidQuantity},
		"no units radius":    {HBDonor, center, units.Quantity{}, nil, nil, ErrInvalidQuantity},
		"zero direction":     {HBDonor, center, radius, []float64{0, 0, 0}, nil, ErrInvalidQuantity},
		"2D direction":       {HBDonor, center, radius, []float64{1, 0}, nil, ErrInvalidQuantity},
		"infinite direction": {HBDonor, center, radius, []float64{math.Inf(1), 0, 0}, nil, ErrInvalidQuantity},
		"negative atom":      {HBDonor, center, radius, nil, []int{1, -2}, ErrInvalidIndex},
	}
	for name, c := range cases {
		p, err := NewPoint(c.kind, c.center, c.radius, c.dir, c.atoms)
		assert.Nil(Te, p, name)
		assert.ErrorIs(Te, err, c.kerr, name)
	}
}

func TestDirectionIsUnit(Te *testing.T) {
	dirs := [][]float64{{3, 4, 0}, {1e-8, 0, 0}, {-2, -2, -2}, {1e6, 1, 1}}
	for _, d := range dirs {
		p := newTestPoint(Te, HBDonor, [3]float64{0, 0, 0}, 1, d, nil)
		u, err := p.Direction()
		require.NoError(Te, err)
		assert.InDelta(Te, 1.0, math.Sqrt(u[0]*u[0]+u[1]*u[1]+u[2]*u[2]), 1e-12)
	}
}

func TestPointSetters(Te *testing.T) {
	p := newTestPoint(Te, AromaticRing, [3]float64{1, 1, 1}, 1, nil, []int{1, 2})
	require.NoError(Te, p.SetCenter(units.New(units.Picometer, 100, 200, 300)))
	c, _ := p.Center(units.Angstrom)
	assert.InDeltaSlice(Te, []float64{1, 2, 3}, c, 1e-12)
	require.NoError(Te, p.SetRadius(units.Angstroms(2)))
	r, _ := p.Radius(units.Angstrom)
	assert.Equal(Te, 2.0, r)

	require.NoError(Te, p.SetDirection([]float64{0, 5, 0}))
	assert.True(Te, p.HasDirection())
	d, _ := p.Direction()
	assert.InDeltaSlice(Te, []float64{0, 1, 0}, d, 1e-15)
	require.NoError(Te, p.SetDirection(nil))
	assert.False(Te, p.HasDirection())

	require.NoError(Te, p.SetIndices([]int{}))
	assert.NotNil(Te, p.Indices())
	assert.Empty(Te, p.Indices())

	//failed setters leave the point alone
	assert.ErrorIs(Te, p.SetRadius(units.Angstroms(-1)), ErrInvalidQuantity)
	assert.ErrorIs(Te, p.SetCenter(units.Angstroms(1)), ErrInvalidQuantity)
	assert.ErrorIs(Te, p.SetDirection([]float64{0, 0, 0}), ErrInvalidQuantity)
	assert.ErrorIs(Te, p.SetIndices([]int{-1}), ErrInvalidIndex)
	r, _ = p.Radius(units.Angstrom)
	assert.Equal(Te, 2.0, r)
	c, _ = p.Center(units.Angstrom)
	assert.InDeltaSlice(Te, []float64{1, 2, 3}, c, 1e-12)
	assert.False(Te, p.HasDirection())

	//Indices returns a copy
	require.NoError(Te, p.SetIndices([]int{4}))
	p.Indices()[0] = 10
	assert.Equal(Te, []int{4}, p.Indices())
}

func TestGeometricEquality(Te *testing.T) {
	a := newTestPoint(Te, HBDonor, [3]float64{1, 2, 3}, 1, []float64{1, 0, 0}, nil)
	b := newTestPoint(Te, HBDonor, [3]float64{1.00005, 2, 3}, 1.005, []float64{1, 0.00001, 0}, []int{1})
	c := newTestPoint(Te, HBDonor, [3]float64{1.001, 2, 3}, 1, []float64{1, 0, 0}, nil)
	d := newTestPoint(Te, HBDonor, [3]float64{1, 2, 3}, 1.02, []float64{1, 0, 0}, nil)
	e := newTestPoint(Te, HBDonor, [3]float64{1, 2, 3}, 1, nil, nil)
	f := newTestPoint(Te, HBAcceptor, [3]float64{1, 2, 3}, 1, []float64{1, 0, 0}, nil)
	g := newTestPoint(Te, HBDonor, [3]float64{1, 2, 3}, 1, []float64{0, 1, 0}, nil)
	points := []*Point{a, b, c, d, e, f, g}
	for _, p := range points {
		assert.True(Te, p.Equal(p))
		for _, q := range points {
			assert.Equal(Te, p.Equal(q), q.Equal(p))
		}
	}
	assert.True(Te, a.Equal(b))
	assert.False(Te, a.Equal(c))
	assert.False(Te, a.Equal(d))
	assert.False(Te, a.Equal(e))
	assert.False(Te, a.Equal(f))
	assert.False(Te, a.Equal(g))
	assert.False(Te, a.Equal(nil))
	var n *Point
	assert.True(Te, n.Equal(nil))
}

func TestSameFeature(Te *testing.T) {
	a := newTestPoint(Te, HBDonor, [3]float64{1, 2, 3}, 1, []float64{1, 0, 0}, []int{2, 1})
	b := newTestPoint(Te, HBDonor, [3]float64{8, 9, 10}, 3, nil, []int{1, 2, 2})
	c := newTestPoint(Te, HBDonor, [3]float64{1, 2, 3}, 1, []float64{1, 0, 0}, []int{1})
	d := newTestPoint(Te, HBAcceptor, [3]float64{1, 2, 3}, 1, nil, []int{1, 2})
	none1 := newTestPoint(Te, Hydrophobic, [3]float64{1, 2, 3}, 1, nil, nil)
	none2 := newTestPoint(Te, Hydrophobic, [3]float64{4, 2, 3}, 1, nil, nil)
	empty := newTestPoint(Te, Hydrophobic, [3]float64{1, 2, 3}, 1, nil, []int{})
	assert.True(Te, a.SameFeature(b))
	assert.True(Te, b.SameFeature(a))
	assert.False(Te, a.SameFeature(c))
	assert.False(Te, a.SameFeature(d))
	assert.True(Te, none1.SameFeature(none2))
	assert.False(Te, none1.SameFeature(empty))
	assert.True(Te, empty.SameFeature(empty.Copy()))
}

func TestPointString(Te *testing.T) {
	p := newTestPoint(Te, HBAcceptor, [3]float64{1, 2, 3}, 1, []float64{0, 0, 1}, nil)
	assert.Equal(Te, "HbAcceptorSphereAndVector(center: (1.0, 2.0, 3.0); radius: 1.0; direction: (0.0, 0.0, 1.0))", p.String())
	q := newTestPoint(Te, ExcludedVolume, [3]float64{1.23456, -0.00001, 3}, 1.256, nil, nil)
	assert.Equal(Te, "ExcludedVolumeSphere(center: (1.2346, 0.0, 3.0); radius: 1.26)", q.String())
}

func TestPointCopy(Te *testing.T) {
	p := newTestPoint(Te, NegativeCharge, [3]float64{1, 2, 3}, 1, []float64{0, 1, 0}, []int{7})
	p.PharmacophoreIndex = 3
	c := p.Copy()
	assert.True(Te, p.Equal(c))
	assert.True(Te, p.SameFeature(c))
	assert.Equal(Te, 3, c.PharmacophoreIndex)
	require.NoError(Te, c.SetCenter(units.Angstroms(0, 0, 0)))
	require.NoError(Te, c.SetDirection(nil))
	assert.True(Te, p.HasDirection())
	pc, _ := p.Center(units.Angstrom)
	assert.Equal(Te, []float64{1, 2, 3}, pc)
}

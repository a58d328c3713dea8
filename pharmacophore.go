/*
 * pharmacophore.go, part of gopharm.
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

	v3 "github.com/rmera/gopharm/v3"
	"go.uber.org/zap"
)

// Pharmacophore is an ordered collection of pharmacophoric points, optionally associated
// to the molecular systems (ligand and receptor) it was derived from.
// A Pharmacophore is not safe for concurrent use.
type Pharmacophore struct {
	elements []*Point
	receptor Structure
	ligand   Structure
	blocks   Associated //the structures as read from the file
}

// New returns a pharmacophore with the given points. The points are not copied.
// nil points are ignored.
func New(points ...*Point) *Pharmacophore {
	P := &Pharmacophore{elements: make([]*Point, 0, len(points))}
	for _, p := range points {
		P.Add(p)
	}
	return P
}

// Len returns the number of elements of the pharmacophore.
func (P *Pharmacophore) Len() int { return len(P.elements) }

// Elements returns a slice with the elements of the pharmacophore. The slice is a copy,
// but the points are not.
func (P *Pharmacophore) Elements() []*Point {
	ret := make([]*Point, len(P.elements))
	copy(ret, P.elements)
	return ret
}

// Element returns the ith element of the pharmacophore.
func (P *Pharmacophore) Element(i int) (*Point, error) {
	if i < 0 || i >= len(P.elements) {
		return nil, newError(ErrInvalidIndex, "Pharmacophore.Element", "%d out of range [0,%d)", i, len(P.elements))
	}
	return P.elements[i], nil
}

// Add appends a point to the pharmacophore.
func (P *Pharmacophore) Add(p *Point) {
	if p == nil {
		return
	}
	P.elements = append(P.elements, p)
}

// Remove removes the elements in the given positions, keeping the order of the rest.
// Positions out of range are ignored.
func (P *Pharmacophore) Remove(indices ...int) {
	if len(indices) == 0 {
		return
	}
	del := make(map[int]bool, len(indices))
	for _, i := range indices {
		del[i] = true
	}
	kept := make([]*Point, 0, len(P.elements))
	for i, e := range P.elements {
		if !del[i] {
			kept = append(kept, e)
		}
	}
	logger.Debug("elements removed", zap.Int("before", len(P.elements)), zap.Int("after", len(kept)))
	P.elements = kept
}

// RemoveFeatureKind removes all the elements of the given kind. It returns an
// error, and removes nothing, if the kind is invalid or not present.
func (P *Pharmacophore) RemoveFeatureKind(kind FeatureKind) error {
	if !kind.Valid() {
		return newError(ErrInvalidFeatureKind, "Pharmacophore.RemoveFeatureKind", "%d", int(kind))
	}
	kept := make([]*Point, 0, len(P.elements))
	for _, e := range P.elements {
		if e.Kind() != kind {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(P.elements) {
		return newError(ErrNoSuchFeature, "Pharmacophore.RemoveFeatureKind", "%s", kind)
	}
	P.elements = kept
	return nil
}

// Receptor returns the receptor associated to the pharmacophore, or nil.
func (P *Pharmacophore) Receptor() Structure { return P.receptor }

// Ligand returns the ligand associated to the pharmacophore, or nil.
func (P *Pharmacophore) Ligand() Structure { return P.ligand }

func (P *Pharmacophore) SetReceptor(s Structure) { P.receptor = s }

func (P *Pharmacophore) SetLigand(s Structure) { P.ligand = s }

// Blocks returns the text of the ligand and receptor associated to the pharmacophore.
func (P *Pharmacophore) Blocks() Associated { return P.blocks }

// SetBlocks sets the text of the ligand and receptor associated to the pharmacophore,
// which are written along with it in formats that support it.
func (P *Pharmacophore) SetBlocks(a Associated) { P.blocks = a }

// RemoveMolecularSystem drops both the ligand and the receptor, parsed or not.
func (P *Pharmacophore) RemoveMolecularSystem() {
	P.receptor = nil
	P.ligand = nil
	P.blocks = Associated{}
}

func (P *Pharmacophore) String() string {
	return fmt.Sprintf("Pharmacophore(n_elements: %d)", len(P.elements))
}

// GenericFeature is a format-independent description of a pharmacophoric point.
// Coordinates and radius are in angstroms.
type GenericFeature struct {
	Kind         FeatureKind
	Center       [3]float64
	Radius       float64
	Direction    [3]float64
	HasDirection bool
}

func genericFeature(p *Point) GenericFeature {
	g := GenericFeature{Kind: p.kind, Radius: p.radius}
	copy(g.Center[:], p.center.RawRowView(0))
	if p.shape == SphereAndVector {
		g.HasDirection = true
		copy(g.Direction[:], p.direction.RawRowView(0))
	}
	return g
}

// Features is an iterator over the elements of a pharmacophore, as GenericFeatures.
// Use it as:
//
//	F := P.Features()
//	for F.Next() {
//		f := F.Feature()
//	}
type Features struct {
	elements []*Point
	curr     int
}

// Features returns an iterator over the current elements of P.
func (P *Pharmacophore) Features() *Features {
	return &Features{elements: P.Elements(), curr: -1}
}

// Len returns the total number of features.
func (F *Features) Len() int { return len(F.elements) }

// Reset puts the iterator back to the beginning.
func (F *Features) Reset() { F.curr = -1 }

// Next advances the iterator and returns false when there are no more features.
func (F *Features) Next() bool {
	if F.curr+1 >= len(F.elements) {
		F.curr = len(F.elements)
		return false
	}
	F.curr++
	return true
}

// Feature returns the current feature. It panics if called before Next or after
// Next has returned false.
func (F *Features) Feature() GenericFeature {
	return genericFeature(F.elements[F.curr])
}

// AddToView adds the elements of the pharmacophore to a viewer, as spheres and, for points
// with direction, arrows of length twice the radius. hb acceptor arrows point towards
// the center of the point, the rest point away from it. If pal is nil the default palette
// is used.
func (P *Pharmacophore) AddToView(view Viewer, pal Palette) {
	if pal == nil {
		pal = DefaultPalette()
	}
	for i, e := range P.elements {
		g := genericFeature(e)
		col := pal.Color(g.Kind)
		view.AddSphere(g.Center, g.Radius, col, fmt.Sprintf("%s_%d", g.Kind, i))
		if !g.HasDirection {
			continue
		}
		label := fmt.Sprintf("%s_vector", g.Kind)
		step := 2 * e.radius
		if g.Kind == HBAcceptor {
			step = -step
		}
		d := e.direction.Copy()
		d.Scale(step, d)
		t := v3.Zeros(1)
		t.AddVec(e.center, d)
		var tip [3]float64
		copy(tip[:], t.Row(0))
		if g.Kind == HBAcceptor {
			view.AddArrow(tip, g.Center, col, ArrowRadius, label)
			continue
		}
		view.AddArrow(g.Center, tip, col, ArrowRadius, label)
	}
}

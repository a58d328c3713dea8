/*
 * plot.go, part of gopharm
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package chemplot draws pharmacophores with gonum/plot. Projection implements the
// pharm.Viewer interface, drawing each sphere as a circle and each direction as an
// arrow, projected on one of the cartesian planes.
package chemplot

import (
	"fmt"
	"image/color"

	"github.com/cockroachdb/errors"
	pharm "github.com/rmera/gopharm"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plane is the cartesian plane on which the 3D elements are projected.
type Plane int

const (
	XY Plane = iota
	XZ
	YZ
)

// axes returns the indexes of the coordinates plotted in the horizontal and
// vertical axes, and their names.
func (P Plane) axes() (int, int, string, string) {
	switch P {
	case XZ:
		return 0, 2, "X (Å)", "Z (Å)"
	case YZ:
		return 1, 2, "Y (Å)", "Z (Å)"
	}
	return 0, 1, "X (Å)", "Y (Å)"
}

func (P Plane) project(v [3]float64) [2]float64 {
	i, j, _, _ := P.axes()
	return [2]float64{v[i], v[j]}
}

type sphere struct {
	center [3]float64
	radius float64
	c      color.RGBA
	label  string
}

type arrow struct {
	start, end [3]float64
	c          color.RGBA
	radius     float64
	label      string
}

// Projection collects the spheres and arrows sent to it as a pharm.Viewer, and
// plots them.
type Projection struct {
	Title   string
	Plane   Plane
	spheres []sphere
	arrows  []arrow
}

// NewProjection returns an empty projection on the given plane.
func NewProjection(title string, plane Plane) *Projection {
	return &Projection{Title: title, Plane: plane}
}

func (P *Projection) AddSphere(center [3]float64, radius float64, c color.RGBA, label string) {
	P.spheres = append(P.spheres, sphere{center, radius, c, label})
}

func (P *Projection) AddArrow(start, end [3]float64, c color.RGBA, radius float64, label string) {
	P.arrows = append(P.arrows, arrow{start, end, c, radius, label})
}

// Len returns the number of spheres and arrows in the projection.
func (P *Projection) Len() (int, int) {
	return len(P.spheres), len(P.arrows)
}

// Plot returns a gonum plot with the projection. The plotted region is a square
// containing all the elements.
func (P *Projection) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = P.Title
	_, _, xname, yname := P.Plane.axes()
	p.X.Label.Text = xname
	p.Y.Label.Text = yname
	p.Add(plotter.NewGrid())
	B := newBounds()
	labels := plotter.XYLabels{}
	for _, s := range P.spheres {
		c := P.Plane.project(s.center)
		B.add(c, s.radius)
		poly, err := plotter.NewPolygon(circle(c, s.radius))
		if err != nil {
			return nil, errors.Wrapf(err, "sphere %s", s.label)
		}
		poly.Color = translucent(s.c, 96)
		poly.LineStyle.Color = s.c
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
		labels.XYs = append(labels.XYs, plotter.XY{X: c[0], Y: c[1]})
		labels.Labels = append(labels.Labels, s.label)
	}
	for _, a := range P.arrows {
		start := P.Plane.project(a.start)
		end := P.Plane.project(a.end)
		B.add(start, 0)
		B.add(end, 0)
		shaft, err := plotter.NewLine(plotter.XYs{{X: start[0], Y: start[1]}, {X: end[0], Y: end[1]}})
		if err != nil {
			return nil, errors.Wrapf(err, "arrow %s", a.label)
		}
		shaft.LineStyle.Color = a.c
		shaft.LineStyle.Width = vg.Points(10 * a.radius)
		p.Add(shaft)
		tip, err := plotter.NewScatter(plotter.XYs{{X: end[0], Y: end[1]}})
		if err != nil {
			return nil, errors.Wrapf(err, "arrow %s", a.label)
		}
		tip.GlyphStyle.Shape = draw.PyramidGlyph{}
		tip.GlyphStyle.Color = a.c
		tip.GlyphStyle.Radius = vg.Points(4)
		p.Add(tip)
	}
	if len(labels.XYs) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, errors.Wrap(err, "labels")
		}
		p.Add(l)
	}
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = B.square(1)
	return p, nil
}

// Save plots the projection and writes it to filename. The format is taken from the
// extension of the file (png, svg, pdf, eps, jpg or tiff).
func (P *Projection) Save(width, height vg.Length, filename string) error {
	p, err := P.Plot()
	if err != nil {
		return err
	}
	//here I  intentionally shadow err.
	if err := p.Save(width, height, filename); err != nil {
		return errors.Wrapf(err, "saving %s", filename)
	}
	return nil
}

// PlotPharmacophore draws Ph, projected on plane, in a 5x5 inches image, using the colors in
// pal (or the default ones if pal is nil), and saves it to filename.
func PlotPharmacophore(Ph *pharm.Pharmacophore, pal pharm.Palette, plane Plane, title, filename string) error {
	P := NewProjection(title, plane)
	Ph.AddToView(P, pal)
	return P.Save(5*vg.Inch, 5*vg.Inch, filename)
}

// FrequencyPlot produces a bar chart with the frequency of each of the given unique
// points, colored by feature kind, and saves it to filename.
func FrequencyPlot(points []*pharm.UniquePoint, pal pharm.Palette, title, filename string) error {
	if len(points) == 0 {
		return errors.New("FrequencyPlot: no points to plot")
	}
	if pal == nil {
		pal = pharm.DefaultPalette()
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Frequency"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())
	names := make([]string, len(points))
	w := vg.Points(15)
	for i, u := range points {
		//one bar chart per point, so each one gets its own color.
		vals := make(plotter.Values, len(points))
		vals[i] = u.Frequency
		bc, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return errors.Wrapf(err, "FrequencyPlot: point %d", i)
		}
		bc.Color = pal.Color(u.Point.Kind())
		bc.LineStyle.Width = 0
		p.Add(bc)
		names[i] = fmt.Sprintf("%s%d", u.Point.ShortName(), i)
	}
	p.NominalX(names...)
	width := vg.Length(len(points))*2*w + 2*vg.Inch
	if err := p.Save(width, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "FrequencyPlot: saving %s", filename)
	}
	return nil
}

/*
 * plotutils.go, part of gopharm.
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

package chemplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/plotter"
)

// Some internal convenience functions.

// circleSegments is the number of sides of the polygons used to draw spheres.
const circleSegments = 48

// circle returns the vertices of a regular polygon approximating the circle
// of radius r centered in c.
func circle(c [2]float64, r float64) plotter.XYs {
	ret := make(plotter.XYs, circleSegments)
	for i := range ret {
		a := 2 * math.Pi * float64(i) / circleSegments
		ret[i].X = c[0] + r*math.Cos(a)
		ret[i].Y = c[1] + r*math.Sin(a)
	}
	return ret
}

// translucent returns c with the given alpha.
func translucent(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// bounds keeps track of the region covered by the plotted elements.
type bounds struct {
	min, max [2]float64
	empty    bool
}

func newBounds() *bounds {
	return &bounds{empty: true}
}

func (B *bounds) add(p [2]float64, r float64) {
	for i := range p {
		if B.empty || p[i]-r < B.min[i] {
			B.min[i] = p[i] - r
		}
		if B.empty || p[i]+r > B.max[i] {
			B.max[i] = p[i] + r
		}
	}
	B.empty = false
}

// square returns the limits of a square region, padded by pad, containing all the
// points added to B, so circles are not deformed in square plots.
func (B *bounds) square(pad float64) (xmin, xmax, ymin, ymax float64) {
	if B.empty {
		return -pad, pad, -pad, pad
	}
	side := math.Max(B.max[0]-B.min[0], B.max[1]-B.min[1])/2 + pad
	cx := (B.max[0] + B.min[0]) / 2
	cy := (B.max[1] + B.min[1]) / 2
	return cx - side, cx + side, cy - side, cy + side
}

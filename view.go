/*
 * view.go, part of gopharm.
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
	"image/color"
	"strconv"
	"strings"
)

// ArrowRadius is the radius of the arrows that represent point directions in a Viewer.
const ArrowRadius = 0.2

// Viewer is anything that can draw spheres and arrows in 3D space.
// Coordinates and radii are in angstroms.
type Viewer interface {
	AddSphere(center [3]float64, radius float64, c color.RGBA, label string)
	AddArrow(start, end [3]float64, c color.RGBA, radius float64, label string)
}

// Palette gives a color for each feature kind.
type Palette map[FeatureKind]color.RGBA

var defaultColors = [NFeatureKinds]string{
	"#B03A2E", //hb acceptor
	"#17A589", //hb donor
	"#F1C40F", //aromatic ring
	"#F5B041", //hydrophobicity
	"#3498DB", //positive charge
	"#884EA0", //negative charge
	"#283747", //excluded volume
	"#707B7C", //included volume
}

// DefaultPalette returns a new copy of the default palette.
func DefaultPalette() Palette {
	pal := make(Palette, NFeatureKinds)
	for i, hex := range defaultColors {
		//the default colors are known to be well-formed
		pal[FeatureKind(i)], _ = parseHexColor(hex)
	}
	return pal
}

// Color returns the color for kind k, falling back to the default palette
// for kinds not in P.
func (P Palette) Color(k FeatureKind) color.RGBA {
	if c, ok := P[k]; ok {
		return c
	}
	c, _ := parseHexColor(defaultColors[k])
	return c
}

// parseHexColor parses colors in the "#rrggbb" or "rrggbb" forms.
func parseHexColor(hex string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return color.RGBA{}, newError(ErrMalformedFormat, "parseHexColor", "color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, wrapError(ErrMalformedFormat, err, "parseHexColor", "color %q", hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// hexColor returns c in the "rrggbb" form.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

/*
 * moe.go, part of gopharm.
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
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// MOETags are the feature expressions used for each feature kind in MOE files. A point
// with direction is written as two features: the point itself and a projected one, tagged
// with the same expression plus a "2", placed 1 angstrom away from it along its direction.
var MOETags = nameTable{
	HBAcceptor:     "Acc",
	HBDonor:        "Don",
	AromaticRing:   "Aro",
	Hydrophobic:    "Hyd",
	PositiveCharge: "Cat",
	NegativeCharge: "Ani",
	ExcludedVolume: "Exc",
	IncludedVolume: "Inc",
}

const (
	moeHeader     = "#moe:ph4que"
	moeVersion    = "2020.09"
	moeEnd        = "#endpharmacophore"
	moeFeature    = "#feature"
	moeVolume     = "#volumesphere"
	moeProjSuffix = "2"
	moeColumns    = "expr tt color ix x r y r z r r r ebits ix gbits ix"
)

// moeFeat is a feature read from a MOE file, before being turned into a Point.
type moeFeat struct {
	kind   FeatureKind
	center [3]float64
	radius float64
	dir    []float64
}

// EncodeMOE returns the points as a MOE pharmacophore query (.ph4). The color column
// is taken from pal, or the default palette if pal is nil.
func EncodeMOE(points []*Point, pal Palette) ([]byte, error) {
	if pal == nil {
		pal = DefaultPalette()
	}
	nrows := 0
	for _, p := range points {
		nrows++
		if p.HasDirection() {
			nrows++
		}
	}
	var out bytes.Buffer
	fmt.Fprintf(&out, "%s %s\n", moeHeader, moeVersion)
	fmt.Fprintf(&out, "#pharmacophore 2 tags t i values\n")
	fmt.Fprintf(&out, "scheme_ t Unified matchsize_ i 0\n")
	fmt.Fprintf(&out, "%s %d %s\n", moeFeature, nrows, moeColumns)
	for _, p := range points {
		g := genericFeature(p)
		tag := MOETags[g.Kind]
		col := hexColor(pal.Color(g.Kind))
		writeMOERow(&out, tag, col, g.Center, g.Radius)
		if g.HasDirection {
			var proj [3]float64
			for i := range proj {
				proj[i] = g.Center[i] + g.Direction[i]
			}
			writeMOERow(&out, tag+moeProjSuffix, col, proj, g.Radius)
		}
	}
	fmt.Fprintln(&out, moeEnd)
	return out.Bytes(), nil
}

func writeMOERow(out *bytes.Buffer, tag, col string, c [3]float64, r float64) {
	fmt.Fprintf(out, "%s %s %s %s %s %s 0 0\n", tag, col, fmtFloat(c[0]), fmtFloat(c[1]), fmtFloat(c[2]), fmtFloat(r))
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DecodeMOE reads the points in a MOE pharmacophore query (.ph4). Features in the
// #volumesphere sections are read as excluded volumes.
func DecodeMOE(data []byte) ([]*Point, error) {
	lines := make([]string, 0, 32)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		l := strings.TrimSpace(sc.Text())
		if l != "" {
			lines = append(lines, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "DecodeMOE", "reading")
	}
	if len(lines) == 0 || !strings.HasPrefix(lines[0], moeHeader) {
		return nil, newError(ErrMalformedFormat, "DecodeMOE", "missing %s header", moeHeader)
	}
	feats := make([]*moeFeat, 0, len(lines))
	ended := false
	i := 1
	for i < len(lines) && !ended {
		l := lines[i]
		fields := strings.Fields(l)
		switch {
		case l == moeEnd:
			ended = true
			i++
		case fields[0] == moeFeature || fields[0] == moeVolume:
			rows, next, err := moeTable(lines, i)
			if err != nil {
				return nil, errDecorate(err, "DecodeMOE")
			}
			if fields[0] == moeFeature {
				feats, err = moeFeatures(feats, rows)
			} else {
				feats, err = moeVolumes(feats, rows)
			}
			if err != nil {
				return nil, errDecorate(err, "DecodeMOE")
			}
			i = next
		case strings.HasPrefix(l, "#"):
			if fields[0] != "#pharmacophore" {
				logger.Warn("skipping MOE section", zap.String("section", fields[0]))
			}
			//skip the section and its values
			i++
			for i < len(lines) && !strings.HasPrefix(lines[i], "#") {
				i++
			}
		default:
			return nil, newError(ErrMalformedFormat, "DecodeMOE", "unexpected line %q", l)
		}
	}
	if !ended {
		return nil, newError(ErrMalformedFormat, "DecodeMOE", "truncated file, no %s", moeEnd)
	}
	points := make([]*Point, 0, len(feats))
	for _, f := range feats {
		p, err := decodedPoint(f.kind, f.center, f.radius, f.dir)
		if err != nil {
			return nil, errDecorate(err, "DecodeMOE")
		}
		points = append(points, p)
	}
	return points, nil
}

// moeTable reads the table whose header is in lines[start]. The header gives the number
// of rows and the name and type of each column. Values are read token-wise, so a
// row can span several lines. Returns the rows as maps from column name to value, and
// the index of the first line after the table.
func moeTable(lines []string, start int) ([]map[string]string, int, error) {
	head := strings.Fields(lines[start])
	if len(head) < 2 || len(head)%2 != 0 {
		return nil, 0, newError(ErrMalformedFormat, "moeTable", "bad table header %q", lines[start])
	}
	nrows, err := strconv.Atoi(head[1])
	if err != nil || nrows < 0 {
		return nil, 0, newError(ErrMalformedFormat, "moeTable", "bad row count in %q", lines[start])
	}
	cols := make([]string, 0, len(head)/2)
	for j := 2; j < len(head); j += 2 {
		cols = append(cols, head[j])
	}
	if len(cols) == 0 {
		return nil, 0, newError(ErrMalformedFormat, "moeTable", "no columns in %q", lines[start])
	}
	need := nrows * len(cols)
	tokens := make([]string, 0, need)
	i := start + 1
	for len(tokens) < need {
		if i >= len(lines) || strings.HasPrefix(lines[i], "#") {
			return nil, 0, newError(ErrMalformedFormat, "moeTable", "%s: expected %d values, got %d", head[0], need, len(tokens))
		}
		tokens = append(tokens, strings.Fields(lines[i])...)
		i++
	}
	if len(tokens) != need {
		return nil, 0, newError(ErrMalformedFormat, "moeTable", "%s: expected %d values, got %d", head[0], need, len(tokens))
	}
	rows := make([]map[string]string, nrows)
	for r := range rows {
		rows[r] = make(map[string]string, len(cols))
		for c, name := range cols {
			rows[r][name] = tokens[r*len(cols)+c]
		}
	}
	return rows, i, nil
}

// moeGeometry returns the center and radius in a row.
func moeGeometry(row map[string]string) ([3]float64, float64, error) {
	var c [3]float64
	var vals [4]float64
	for j, name := range []string{"x", "y", "z", "r"} {
		s, ok := row[name]
		if !ok {
			return c, 0, newError(ErrMalformedFormat, "moeGeometry", "missing column %s", name)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return c, 0, wrapError(ErrMalformedFormat, err, "moeGeometry", "column %s", name)
		}
		vals[j] = v
	}
	copy(c[:], vals[:3])
	return c, vals[3], nil
}

func moeFeatures(feats []*moeFeat, rows []map[string]string) ([]*moeFeat, error) {
	for _, row := range rows {
		expr, ok := row["expr"]
		if !ok {
			return nil, newError(ErrMalformedFormat, "moeFeatures", "missing column expr")
		}
		//only the first alternative of expressions like Aro|Hyd is used.
		tag, _, _ := strings.Cut(expr, "|")
		center, radius, err := moeGeometry(row)
		if err != nil {
			return nil, errDecorate(err, "moeFeatures")
		}
		if kind, ok := MOETags.kind(tag); ok {
			feats = append(feats, &moeFeat{kind: kind, center: center, radius: radius})
			continue
		}
		kind, ok := MOETags.kind(strings.TrimSuffix(tag, moeProjSuffix))
		if !ok || !strings.HasSuffix(tag, moeProjSuffix) {
			return nil, newError(ErrUnknownFeatureName, "moeFeatures", "%q", expr)
		}
		//a projected feature gives the direction of the one right before it.
		if len(feats) == 0 {
			return nil, newError(ErrMalformedFormat, "moeFeatures", "projected feature %q without a base feature", tag)
		}
		last := feats[len(feats)-1]
		if last.kind != kind || last.dir != nil {
			return nil, newError(ErrMalformedFormat, "moeFeatures", "projected feature %q does not follow a %s feature", tag, MOETags[kind])
		}
		last.dir = make([]float64, 3)
		for j := range last.dir {
			last.dir[j] = center[j] - last.center[j]
		}
	}
	return feats, nil
}

func moeVolumes(feats []*moeFeat, rows []map[string]string) ([]*moeFeat, error) {
	for _, row := range rows {
		center, radius, err := moeGeometry(row)
		if err != nil {
			return nil, errDecorate(err, "moeVolumes")
		}
		feats = append(feats, &moeFeat{kind: ExcludedVolume, center: center, radius: radius})
	}
	return feats, nil
}

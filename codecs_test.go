/*
 * codecs_test.go, part of gopharm.
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
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rmera/gopharm/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allPoints returns a point of each kind without direction, followed by
// one of each kind with direction.
func allPoints(Te *testing.T) []*Point {
	ret := make([]*Point, 0, 2*NFeatureKinds)
	for _, dir := range [][]float64{nil, {0.3, -0.5, 0.8}} {
		for _, k := range FeatureKinds() {
			x := float64(k)
			ret = append(ret, newTestPoint(Te, k, [3]float64{1.123456 + x, -2.5 * x, 3.3333}, 0.75+0.1*x, dir, nil))
		}
	}
	return ret
}

func assertSamePoints(Te *testing.T, expected, got []*Point) {
	Te.Helper()
	require.Len(Te, got, len(expected))
	for i := range expected {
		assert.True(Te, expected[i].Equal(got[i]), "element %d: expected %s, got %s", i, expected[i], got[i])
	}
}

// roundTrip encodes and decodes points in the given format.
func roundTrip(points []*Point, format Format) ([]*Point, error) {
	var data []byte
	var err error
	switch format {
	case Pharmer:
		data, err = EncodePharmer(points, Associated{})
	case MOE:
		data, err = EncodeMOE(points, nil)
	case LigandScout:
		data, err = EncodeLigandScout(points)
	case Pharmagist:
		data, err = EncodePharmagist("test", points)
	}
	if err != nil {
		return nil, err
	}
	switch format {
	case Pharmer:
		points, _, err = DecodePharmer(data)
	case MOE:
		points, err = DecodeMOE(data)
	case LigandScout:
		points, err = DecodeLigandScout(data)
	case Pharmagist:
		points, err = DecodePharmagist(data, 0)
	}
	return points, err
}

func TestRoundTrips(Te *testing.T) {
	all := allPoints(Te)
	for _, format := range []Format{Pharmer, MOE, LigandScout, Pharmagist} {
		for _, p := range all {
			volume := p.Kind() == ExcludedVolume || p.Kind() == IncludedVolume
			got, err := roundTrip([]*Point{p}, format)
			if format == LigandScout && volume && p.HasDirection() {
				assert.ErrorIs(Te, err, ErrUnsupportedFeatureForFormat)
				assert.Nil(Te, got)
				continue
			}
			require.NoError(Te, err, "%s: %s", format, p)
			assertSamePoints(Te, []*Point{p}, got)
		}
		//whole lists keep their order
		list := all
		if format == LigandScout {
			list = all[:NFeatureKinds+6]
		}
		got, err := roundTrip(list, format)
		require.NoError(Te, err, "%s", format)
		assertSamePoints(Te, list, got)

		got, err = roundTrip(nil, format)
		require.NoError(Te, err, "%s", format)
		assert.Empty(Te, got, "%s", format)
	}
}

func TestPharmerAcceptorScenario(Te *testing.T) {
	p := newTestPoint(Te, HBAcceptor, [3]float64{1, 2, 3}, 1, []float64{0, 0, 1}, nil)
	data, err := EncodePharmer([]*Point{p}, Associated{})
	require.NoError(Te, err)
	var doc map[string][]map[string]interface{}
	require.NoError(Te, json.Unmarshal(data, &doc))
	require.Len(Te, doc["points"], 1)
	e := doc["points"][0]
	assert.Equal(Te, true, e["hasvec"])
	assert.Equal(Te, "HydrogenAcceptor", e["name"])

	points, assoc, err := DecodePharmer(data)
	require.NoError(Te, err)
	assert.Equal(Te, Associated{}, assoc)
	require.Len(Te, points, 1)
	d, err := points[0].Direction()
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, 0, 1}, d, 1e-4)
}

func TestPharmerSphereDefaults(Te *testing.T) {
	p := newTestPoint(Te, Hydrophobic, [3]float64{1, 2, 3}, 1, []float64{0, 1, 0}, nil)
	require.NoError(Te, p.SetDirection(nil))
	data, err := EncodePharmer([]*Point{p}, Associated{})
	require.NoError(Te, err)
	var doc struct {
		Points []map[string]interface{} `json:"points"`
	}
	require.NoError(Te, json.Unmarshal(data, &doc))
	e := doc.Points[0]
	assert.Equal(Te, false, e["hasvec"])
	assert.Equal(Te, map[string]interface{}{"x": 1.0, "y": 0.0, "z": 0.0}, e["svector"])
	assert.Equal(Te, "Hydrophobic", e["name"])
	assert.Equal(Te, true, e["enabled"])
	assert.Equal(Te, 0.0, e["vector_on"])
	assert.Equal(Te, "", e["minsize"])
	assert.Equal(Te, "", e["maxsize"])
	assert.Equal(Te, false, e["selected"])
	assert.NotContains(Te, string(data), "ligand")
}

func TestPharmerErrors(Te *testing.T) {
	unknown := `{"points":[{"name":"HydrogenDonor","x":1,"y":2,"z":3,"radius":1,"hasvec":false},
	{"name":"Unknown","x":1,"y":2,"z":3,"radius":1,"hasvec":false}]}`
	points, _, err := DecodePharmer([]byte(unknown))
	assert.ErrorIs(Te, err, ErrUnknownFeatureName)
	assert.Nil(Te, points)

	malformed := map[string]string{
		"not JSON":          `{"points": [`,
		"no points":         `{"ligand": ""}`,
		"no radius":         `{"points":[{"name":"Hydrophobic","x":1,"y":2,"z":3}]}`,
		"no svector":        `{"points":[{"name":"HydrogenDonor","x":1,"y":2,"z":3,"radius":1,"hasvec":true}]}`,
		"partial svector":   `{"points":[{"name":"HydrogenDonor","x":1,"y":2,"z":3,"radius":1,"hasvec":true,"svector":{"x":1}}]}`,
		"zero svector":      `{"points":[{"name":"HydrogenDonor","x":1,"y":2,"z":3,"radius":1,"hasvec":true,"svector":{"x":0,"y":0,"z":0}}]}`,
		"negative radius":   `{"points":[{"name":"Hydrophobic","x":1,"y":2,"z":3,"radius":-1}]}`,
		"string coordinate": `{"points":[{"name":"Hydrophobic","x":"1","y":2,"z":3,"radius":1}]}`,
	}
	for name, doc := range malformed {
		points, _, err := DecodePharmer([]byte(doc))
		assert.ErrorIs(Te, err, ErrMalformedFormat, name)
		assert.Nil(Te, points, name)
	}
}

// hasvec, not the feature name, decides whether a point has direction.
func TestPharmerHasvec(Te *testing.T) {
	doc := `{"points":[
	{"name":"Hydrophobic","x":1,"y":2,"z":3,"radius":1,"hasvec":true,"svector":{"x":0,"y":2,"z":0}},
	{"name":"Aromatic","x":1,"y":2,"z":3,"radius":1,"hasvec":false,"svector":{"x":0,"y":2,"z":0}},
	{"name":"InclusionSphere","x":1,"y":2,"z":3,"radius":1}]}`
	points, _, err := DecodePharmer([]byte(doc))
	require.NoError(Te, err)
	require.Len(Te, points, 3)
	assert.True(Te, points[0].HasDirection())
	assert.False(Te, points[1].HasDirection())
	assert.False(Te, points[2].HasDirection())
	assert.Equal(Te, IncludedVolume, points[2].Kind())
}

func TestPharmerAssociated(Te *testing.T) {
	data, err := os.ReadFile("test/complex.json")
	require.NoError(Te, err)
	points, assoc, err := DecodePharmer(data)
	require.NoError(Te, err)
	assert.Len(Te, points, 4)
	assert.True(Te, strings.HasPrefix(assoc.Ligand, "HETATM"))
	assert.Equal(Te, "", assoc.Receptor)

	out, err := EncodePharmer(points, assoc)
	require.NoError(Te, err)
	points2, assoc2, err := DecodePharmer(out)
	require.NoError(Te, err)
	assert.Equal(Te, assoc, assoc2)
	assertSamePoints(Te, points, points2)
}

func TestMOEFixture(Te *testing.T) {
	data, err := os.ReadFile("test/query.ph4")
	require.NoError(Te, err)
	points, err := DecodeMOE(data)
	require.NoError(Te, err)
	kinds := []FeatureKind{AromaticRing, HBAcceptor, Hydrophobic, PositiveCharge, ExcludedVolume, ExcludedVolume}
	require.Len(Te, points, len(kinds))
	for i, k := range kinds {
		assert.Equal(Te, k, points[i].Kind(), "element %d", i)
	}
	assert.False(Te, points[0].HasDirection())
	d, err := points[1].Direction()
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, 0, 1}, d, 1e-6)
	expected := newTestPoint(Te, ExcludedVolume, [3]float64{5.5, 6.5, -7}, 1.2, nil, nil)
	assert.True(Te, expected.Equal(points[5]), "got %s", points[5])
}

func TestMOEErrors(Te *testing.T) {
	head := "#moe:ph4que 2020.09\n#feature 1 expr tt color ix x r y r z r r r ebits ix gbits ix\n"
	cases := map[string]struct {
		doc  string
		kerr error
	}{
		"no header":      {"#feature 0 expr tt\n#endpharmacophore\n", ErrMalformedFormat},
		"empty":          {"", ErrMalformedFormat},
		"truncated":      {head + "Acc ff0000 1 2 3 1 0 0\n", ErrMalformedFormat},
		"short row":      {head + "Acc ff0000 1 2 3\n#endpharmacophore\n", ErrMalformedFormat},
		"bad number":     {head + "Acc ff0000 1 two 3 1 0 0\n#endpharmacophore\n", ErrMalformedFormat},
		"unknown tag":    {head + "Xyz ff0000 1 2 3 1 0 0\n#endpharmacophore\n", ErrUnknownFeatureName},
		"lone projected": {head + "Acc2 ff0000 1 2 3 1 0 0\n#endpharmacophore\n", ErrMalformedFormat},
		"missing column": {"#moe:ph4que 2020.09\n#feature 1 expr tt x r y r z r\nAcc 1 2 3\n#endpharmacophore\n", ErrMalformedFormat},
		"stray line":     {"#moe:ph4que 2020.09\nAcc 1 2 3\n#endpharmacophore\n", ErrMalformedFormat},
	}
	for name, c := range cases {
		points, err := DecodeMOE([]byte(c.doc))
		assert.ErrorIs(Te, err, c.kerr, name)
		assert.Nil(Te, points, name)
	}
	//a projected feature must follow its own kind
	doc := "#moe:ph4que 2020.09\n#feature 2 expr tt color ix x r y r z r r r ebits ix gbits ix\n" +
		"Don ff0000 1 2 3 1 0 0\nAcc2 ff0000 1 2 4 1 0 0\n#endpharmacophore\n"
	_, err := DecodeMOE([]byte(doc))
	assert.ErrorIs(Te, err, ErrMalformedFormat)
}

func TestMOEColors(Te *testing.T) {
	p := newTestPoint(Te, HBDonor, [3]float64{1, 2, 3}, 1, []float64{1, 0, 0}, nil)
	data, err := EncodeMOE([]*Point{p}, Palette{HBDonor: {R: 0x12, G: 0x34, B: 0x56, A: 255}})
	require.NoError(Te, err)
	assert.Contains(Te, string(data), "Don 123456 1 2 3 1 0 0\n")
	assert.Contains(Te, string(data), "Don2 123456 2 2 3 1 0 0\n")
	assert.True(Te, strings.HasPrefix(string(data), "#moe:ph4que 2020.09\n"))
	assert.True(Te, strings.HasSuffix(string(data), "#endpharmacophore\n"))
}

func TestLigandScoutFixture(Te *testing.T) {
	data, err := os.ReadFile("test/wrapped.pml")
	require.NoError(Te, err)
	points, err := DecodeLigandScout(data)
	require.NoError(Te, err)
	require.Len(Te, points, 5)
	expected := []*Point{
		newTestPoint(Te, Hydrophobic, [3]float64{1, 2, 3}, 1.5, nil, nil),
		newTestPoint(Te, AromaticRing, [3]float64{0, 0, 0}, 0.9, []float64{0, 0, 1}, nil),
		newTestPoint(Te, HBAcceptor, [3]float64{4, 4, 4}, 1.5, []float64{0, 1, 0}, nil),
		newTestPoint(Te, HBDonor, [3]float64{-1, 0, 0}, 1.2, []float64{-1, 0, 0}, nil),
		newTestPoint(Te, ExcludedVolume, [3]float64{10, 10, 10}, 1, nil, nil),
	}
	assertSamePoints(Te, expected, points)
}

func TestLigandScoutEncoding(Te *testing.T) {
	a := newTestPoint(Te, HBAcceptor, [3]float64{1, 2, 3}, 1, []float64{0, 0, 1}, nil)
	v := newTestPoint(Te, IncludedVolume, [3]float64{1, 2, 3}, 1, nil, nil)
	data, err := EncodeLigandScout([]*Point{a, v})
	require.NoError(Te, err)
	s := string(data)
	assert.True(Te, strings.HasPrefix(s, "<?xml"))
	assert.Contains(Te, s, `<vector name="HBA" featureId="HBA1" pointsToLigand="true"`)
	assert.Contains(Te, s, `<origin x3="1" y3="2" z3="4" tolerance="1"></origin>`)
	assert.Contains(Te, s, `<target x3="1" y3="2" z3="3" tolerance="1"></target>`)
	assert.Contains(Te, s, `<volume type="inclusion"`)
}

func TestLigandScoutErrors(Te *testing.T) {
	cases := map[string]struct {
		doc  string
		kerr error
	}{
		"no pharmacophore": {`<ligandscout><other/></ligandscout>`, ErrMalformedFormat},
		"truncated":        {`<pharmacophore><point name="H"><position x3="1" y3="2" z3="3" tolerance="1"/></point>`, ErrMalformedFormat},
		"unknown name":     {`<pharmacophore><point name="XX"><position x3="1" y3="2" z3="3" tolerance="1"/></point></pharmacophore>`, ErrUnknownFeatureName},
		"unknown volume":   {`<pharmacophore><volume type="HBA"><position x3="1" y3="2" z3="3" tolerance="1"/></volume></pharmacophore>`, ErrUnknownFeatureName},
		"named volume":     {`<pharmacophore><point name="exclusion"><position x3="1" y3="2" z3="3" tolerance="1"/></point></pharmacophore>`, ErrUnknownFeatureName},
		"vector volume":    {`<pharmacophore><vector name="inclusion" pointsToLigand="false"><origin x3="1" y3="2" z3="3" tolerance="1"/><target x3="1" y3="2" z3="4" tolerance="1"/></vector></pharmacophore>`, ErrUnknownFeatureName},
		"no position":      {`<pharmacophore><point name="H"></point></pharmacophore>`, ErrMalformedFormat},
		"no tolerance":     {`<pharmacophore><point name="H"><position x3="1" y3="2" z3="3"/></point></pharmacophore>`, ErrMalformedFormat},
		"bad number":       {`<pharmacophore><point name="H"><position x3="one" y3="2" z3="3" tolerance="1"/></point></pharmacophore>`, ErrMalformedFormat},
		"no normal":        {`<pharmacophore><plane name="AR"><position x3="1" y3="2" z3="3" tolerance="1"/></plane></pharmacophore>`, ErrMalformedFormat},
		"no target":        {`<pharmacophore><vector name="HBD"><origin x3="1" y3="2" z3="3" tolerance="1"/></vector></pharmacophore>`, ErrMalformedFormat},
	}
	for name, c := range cases {
		points, err := DecodeLigandScout([]byte(c.doc))
		assert.ErrorIs(Te, err, c.kerr, name)
		assert.Nil(Te, points, name)
	}
}

func TestPharmagistRecords(Te *testing.T) {
	all := allPoints(Te)
	first := all[:3]
	second := all[NFeatureKinds:]
	data, err := EncodePharmagist("", first, second, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 3, strings.Count(string(data), triposMol))
	assert.Contains(Te, string(data), "\n"+defaultPharmagistName+"\n")

	records, err := DecodePharmagistAll(data)
	require.NoError(Te, err)
	require.Len(Te, records, 3)
	assertSamePoints(Te, first, records[0])
	assertSamePoints(Te, second, records[1])
	assert.Empty(Te, records[2])

	p, err := DecodePharmagist(data, 1)
	require.NoError(Te, err)
	assertSamePoints(Te, second, p)
	for _, i := range []int{-1, 3} {
		p, err = DecodePharmagist(data, i)
		assert.ErrorIs(Te, err, ErrInvalidIndex, fmt.Sprint(i))
		assert.Nil(Te, p)
	}
}

func TestPharmagistFixture(Te *testing.T) {
	data, err := os.ReadFile("test/pharmagist.mol2")
	require.NoError(Te, err)
	records, err := DecodePharmagistAll(data)
	require.NoError(Te, err)
	require.Len(Te, records, 2)
	require.Len(Te, records[0], 4)
	//no charges, the default radius is used.
	for _, p := range records[0] {
		r, _ := p.Radius(units.Angstrom)
		assert.Equal(Te, DefaultPharmagistRadius, r)
		assert.False(Te, p.HasDirection())
	}
	assert.Equal(Te, AromaticRing, records[0][0].Kind())
	assert.Equal(Te, NegativeCharge, records[0][3].Kind())
	require.Len(Te, records[1], 2)
	d, err := records[1][1].Direction()
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{1, 0, 0}, d, 1e-6)
	r, _ := records[1][1].Radius(units.Angstrom)
	assert.Equal(Te, 1.5, r)
}

func TestPharmagistErrors(Te *testing.T) {
	atom := func(id int, atype string, x float64) string {
		return fmt.Sprintf("%d %s %f 0.0 0.0 %s 1 %s 1.0\n", id, atype, x, atype, atype)
	}
	record := func(natoms int, body string) string {
		return fmt.Sprintf("@<TRIPOS>MOLECULE\nm\n%d 0 0 0 0\nSMALL\nUSER_CHARGES\n@<TRIPOS>ATOM\n%s", natoms, body)
	}
	cases := map[string]struct {
		doc  string
		kerr error
	}{
		"empty":          {"", ErrMalformedFormat},
		"garbage":        {"hello\n" + record(1, atom(1, "AR", 0)), ErrMalformedFormat},
		"count mismatch": {record(2, atom(1, "AR", 0)), ErrMalformedFormat},
		"bad atom line":  {record(1, "1 AR 0.0 zero 0.0 AR\n"), ErrMalformedFormat},
		"short atom":     {record(1, "1 AR 0.0 0.0\n"), ErrMalformedFormat},
		"repeated id":    {record(2, atom(1, "AR", 0)+atom(1, "HYD", 1)), ErrMalformedFormat},
		"unknown type":   {record(1, atom(1, "C.3", 0)), ErrUnknownFeatureName},
		"lone dummy":     {record(2, atom(1, "AR", 0)+atom(2, "Du", 1)), ErrMalformedFormat},
		"bad bond":       {record(2, atom(1, "AR", 0)+atom(2, "Du", 1)+"@<TRIPOS>BOND\n1 1 3 1\n"), ErrMalformedFormat},
		"feature bond":   {record(2, atom(1, "AR", 0)+atom(2, "HYD", 1)+"@<TRIPOS>BOND\n1 1 2 1\n"), ErrMalformedFormat},
		"two dummies":    {record(3, atom(1, "AR", 0)+atom(2, "Du", 1)+atom(3, "Du", 2)+"@<TRIPOS>BOND\n1 1 2 1\n2 1 3 1\n"), ErrMalformedFormat},
		"dummy on top":   {record(2, atom(1, "AR", 0)+atom(2, "Du", 0)+"@<TRIPOS>BOND\n1 2 1 1\n"), ErrMalformedFormat},
	}
	for name, c := range cases {
		points, err := DecodePharmagist([]byte(c.doc), 0)
		assert.ErrorIs(Te, err, c.kerr, name)
		assert.Nil(Te, points, name)
	}
}

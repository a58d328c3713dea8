/*
 * json.go, part of gopharm.
 *
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
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chemjson

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	pharm "github.com/rmera/gopharm"
	"github.com/rmera/gopharm/units"
	"go.uber.org/zap"
)

// A ready-to-serialize container for a pharmacophoric point. Coordinates and radius
// are in angstroms, Kind is the one-letter code of the feature kind.
// Atoms is null for a point without an atom set, which is not the same as an empty set.
type Feature struct {
	Kind      string
	Center    []float64
	Radius    float64
	Direction []float64 `json:",omitempty"`
	Atoms     []int
}

// NewFeature returns the container for p.
func NewFeature(p *pharm.Point) *Feature {
	F := &Feature{Kind: p.ShortName(), Atoms: p.Indices()}
	F.Center, _ = p.Center(units.Angstrom)
	F.Radius, _ = p.Radius(units.Angstrom)
	if p.HasDirection() {
		F.Direction, _ = p.Direction()
	}
	return F
}

// Point builds the pharmacophoric point described by F.
func (F *Feature) Point() (*pharm.Point, error) {
	kind, err := pharm.ParseFeatureKind(F.Kind)
	if err != nil {
		return nil, err
	}
	var dir []float64
	if len(F.Direction) > 0 {
		dir = F.Direction
	}
	return pharm.NewPoint(kind, units.Angstroms(F.Center...), units.Angstroms(F.Radius), dir, F.Atoms)
}

// An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool //If error, was it in parsing the options?
	InFeatures    bool //Was it in reading the features?
	InProcess     bool
	InPostProcess bool //was it in preparing the output?
	Frame         int  //Which frame?
	Function      string
	Message       string //the error itself
}

// Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

// Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

// NewError takes an error and some additional info to create a json-marshal-able error.
// where is one of "options", "features", "postprocess"; anything else is taken as an
// error in the process.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "features":
		jerr.InFeatures = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	jerr.deco = []string{function}
	return jerr
}

// Options passed from the calling external program to aggregate the features
// found along a trajectory.
type Options struct {
	Frames           int
	FeaturesPerFrame []int //Knowing in advance makes memory allocation more efficient
	Timesteps        []int //If nil, the index of each frame is used.
	MinFrequency     float64
}

func (O *Options) check() error {
	if O.Frames < 0 || len(O.FeaturesPerFrame) != O.Frames {
		return errors.Newf("%d frames declared, %d feature counts given", O.Frames, len(O.FeaturesPerFrame))
	}
	if O.Timesteps != nil && len(O.Timesteps) != O.Frames {
		return errors.Newf("%d frames declared, %d timesteps given", O.Frames, len(O.Timesteps))
	}
	for i, n := range O.FeaturesPerFrame {
		if n < 0 {
			return errors.Newf("negative feature count for frame %d", i)
		}
	}
	if O.MinFrequency < 0 || O.MinFrequency > 1 {
		return errors.Newf("minimum frequency %g out of range 0-1", O.MinFrequency)
	}
	return nil
}

// Information to be passed back to the calling program after aggregating a trajectory.
// The ith element of each slice corresponds to the ith element of the pharmacophore.
type Info struct {
	Elements    int
	Frames      int
	Counts      []int
	Frequencies []float64
	Timesteps   [][]int
}

// Send Marshals the info and writes to out, returns an error or nil
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Info.Send", err)
	}
	return nil
}

// Header is the first line of a serialized pharmacophore.
type Header struct {
	Elements int
	Ligand   string `json:",omitempty"`
	Receptor string `json:",omitempty"`
}

// readLine reads a line, accepting a last line without a newline.
func readLine(stream *bufio.Reader) ([]byte, error) {
	line, err := stream.ReadBytes('\n')
	if err == io.EOF && len(line) > 0 {
		return line, nil
	}
	return line, err
}

// DecodeOptions Decodes or unmarshals json options into an Options structure
func DecodeOptions(stdin *bufio.Reader) (*Options, *Error) {
	line, err := readLine(stdin)
	if err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	ret := new(Options)
	if err = json.Unmarshal(line, ret); err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	if err = ret.check(); err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	return ret, nil
}

// DecodeFeatures reads n features, one per line, from stream.
func DecodeFeatures(stream *bufio.Reader, n int) ([]*pharm.Point, *Error) {
	const funcname = "DecodeFeatures"
	points := make([]*pharm.Point, 0, n)
	for i := 0; i < n; i++ {
		line, err := readLine(stream)
		if err != nil {
			return nil, NewError("features", funcname, errors.Wrapf(err, "feature %d of %d", i+1, n))
		}
		F := new(Feature)
		if err = json.Unmarshal(line, F); err != nil {
			return nil, NewError("features", funcname, errors.Wrapf(err, "feature %d", i+1))
		}
		p, err := F.Point()
		if err != nil {
			return nil, NewError("features", funcname, errors.Wrapf(err, "feature %d", i+1))
		}
		points = append(points, p)
	}
	return points, nil
}

// EncodeFeatures writes each point in its own line, with enc.
func EncodeFeatures(points []*pharm.Point, enc *json.Encoder) *Error {
	for _, p := range points {
		if p == nil {
			continue
		}
		if err := enc.Encode(NewFeature(p)); err != nil {
			return NewError("postprocess", "EncodeFeatures", err)
		}
	}
	return nil
}

// SendPharmacophore writes a header with the number of elements of P and the text of
// its associated structures, followed by one line per element.
func SendPharmacophore(P *pharm.Pharmacophore, out io.Writer) *Error {
	enc := json.NewEncoder(out)
	b := P.Blocks()
	if err := enc.Encode(&Header{Elements: P.Len(), Ligand: b.Ligand, Receptor: b.Receptor}); err != nil {
		return NewError("postprocess", "SendPharmacophore", err)
	}
	if err := EncodeFeatures(P.Elements(), enc); err != nil {
		err.Decorate("SendPharmacophore")
		return err
	}
	return nil
}

// DecodePharmacophore reads a pharmacophore written by SendPharmacophore.
func DecodePharmacophore(stream *bufio.Reader) (*pharm.Pharmacophore, *Error) {
	line, err := readLine(stream)
	if err != nil {
		return nil, NewError("features", "DecodePharmacophore", err)
	}
	h := new(Header)
	if err = json.Unmarshal(line, h); err != nil {
		return nil, NewError("features", "DecodePharmacophore", err)
	}
	points, jerr := DecodeFeatures(stream, h.Elements)
	if jerr != nil {
		jerr.Decorate("DecodePharmacophore")
		return nil, jerr
	}
	P := pharm.New(points...)
	P.SetBlocks(pharm.Associated{Ligand: h.Ligand, Receptor: h.Receptor})
	return P, nil
}

// Aggregate reads the features of each frame of a trajectory, as given in opts,
// and returns the pharmacophore with the features present in at least
// opts.MinFrequency of the frames, together with the count, frequency and
// timesteps of each of its elements.
func Aggregate(stream *bufio.Reader, opts *Options) (*pharm.Pharmacophore, *Info, *Error) {
	const funcname = "Aggregate"
	if err := opts.check(); err != nil {
		return nil, nil, NewError("options", funcname, err)
	}
	A := new(pharm.Aggregator)
	for f, n := range opts.FeaturesPerFrame {
		points, err := DecodeFeatures(stream, n)
		if err != nil {
			err.Frame = f
			err.Decorate(funcname)
			return nil, nil, err
		}
		ts := f
		if opts.Timesteps != nil {
			ts = opts.Timesteps[f]
		}
		A.Add(points, ts)
	}
	info := &Info{Frames: A.Frames()}
	for _, u := range A.UniquePoints() {
		if u.Frequency < opts.MinFrequency {
			continue
		}
		info.Counts = append(info.Counts, u.Count)
		info.Frequencies = append(info.Frequencies, u.Frequency)
		info.Timesteps = append(info.Timesteps, u.Timesteps)
	}
	P := A.Pharmacophore(opts.MinFrequency)
	info.Elements = P.Len()
	pharm.Logger().Debug("trajectory aggregated", zap.Int("frames", info.Frames), zap.Int("elements", info.Elements))
	return P, info, nil
}

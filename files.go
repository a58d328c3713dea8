/*
 * files.go, part of gopharm.
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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gopharm/units"
	"go.uber.org/zap"
)

// Format is a pharmacophore file format.
type Format int

const (
	Pharmer Format = iota
	MOE
	LigandScout
	Pharmagist
)

func (F Format) String() string {
	switch F {
	case Pharmer:
		return "pharmer"
	case MOE:
		return "moe"
	case LigandScout:
		return "ligandscout"
	case Pharmagist:
		return "pharmagist"
	}
	return "unknown"
}

var formatExtensions = map[string]Format{
	".json": Pharmer,
	".ph4":  MOE,
	".pml":  LigandScout,
	".mol2": Pharmagist,
}

const supportedExtensions = ".json, .ph4, .pml, .mol2, optionally followed by .gz or .zst"

type compression int

const (
	noCompression compression = iota
	gzipCompression
	zstdCompression
)

// detectFormat returns the format and compression of a file, given its name.
func detectFormat(name string) (Format, compression, error) {
	ext := strings.ToLower(filepath.Ext(name))
	comp := noCompression
	switch ext {
	case ".gz":
		comp = gzipCompression
	case ".zst":
		comp = zstdCompression
	}
	if comp != noCompression {
		trimmed := name[:len(name)-len(ext)]
		ext = strings.ToLower(filepath.Ext(trimmed))
	}
	f, ok := formatExtensions[ext]
	if !ok {
		err := newError(ErrUnsupportedFormat, "detectFormat", "extension %q", ext).withFile(name)
		return 0, comp, errors.WithHint(err, "supported extensions are "+supportedExtensions)
	}
	return f, comp, nil
}

// Options modify how pharmacophore files are read and written. A nil *Options
// is valid and means the defaults.
type Options struct {
	//0-based index of the pharmacophore to read, for files that can
	//contain more than one.
	Index int
	//Parse the ligand and receptor embedded in the file, if any.
	LoadStructures bool
	//Parser for the embedded structures. If nil, PDBParser is used.
	Parser StructureParser
	Config *Config
}

func (O *Options) config() *Config {
	if O == nil {
		return DefaultConfig()
	}
	return configOrDefault(O.Config)
}

// ReadFile reads a pharmacophore from a file. The format is chosen from the extension
// of the file: .json (pharmer), .ph4 (MOE), .pml (LigandScout) or .mol2 (PharmaGist).
// Files ending in .gz or .zst are decompressed.
func ReadFile(name string, opts *Options) (*Pharmacophore, error) {
	format, comp, err := detectFormat(name)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	if opts == nil {
		opts = &Options{}
	}
	data, err := readAll(name)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	data, err = decompress(data, comp)
	if err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "ReadFile", "decompressing").withFile(name)
	}
	var points []*Point
	var assoc Associated
	switch format {
	case Pharmer:
		points, assoc, err = DecodePharmer(data)
	case MOE:
		points, err = DecodeMOE(data)
	case LigandScout:
		points, err = DecodeLigandScout(data)
	case Pharmagist:
		points, err = DecodePharmagist(data, opts.Index)
	}
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.withFile(name)
		}
		return nil, errDecorate(err, "ReadFile")
	}
	P := New(points...)
	P.blocks = assoc
	if opts.LoadStructures {
		if err := P.loadStructures(opts.Parser); err != nil {
			return nil, errDecorate(err, "ReadFile")
		}
	}
	logger.Debug("pharmacophore read", zap.String("file", name), zap.Stringer("format", format), zap.Int("elements", P.Len()))
	return P, nil
}

func (P *Pharmacophore) loadStructures(parser StructureParser) error {
	if parser == nil {
		parser = PDBParser{}
	}
	if P.blocks.Ligand != "" {
		s, err := parser.ParseStructure(P.blocks.Ligand)
		if err != nil {
			return errDecorate(err, "Pharmacophore.loadStructures")
		}
		P.ligand = s
	}
	if P.blocks.Receptor != "" {
		s, err := parser.ParseStructure(P.blocks.Receptor)
		if err != nil {
			return errDecorate(err, "Pharmacophore.loadStructures")
		}
		P.receptor = s
	}
	return nil
}

// readAll reads the whole file. The file is closed before returning.
func readAll(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, wrapError(ErrIOFailure, err, "readAll", "opening").withFile(name)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, wrapError(ErrIOFailure, err, "readAll", "reading").withFile(name)
	}
	return data, nil
}

func decompress(data []byte, comp compression) ([]byte, error) {
	switch comp {
	case gzipCompression:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case zstdCompression:
		d, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.DecodeAll(data, nil)
	}
	return data, nil
}

func compress(data []byte, comp compression, level int) ([]byte, error) {
	switch comp {
	case gzipCompression:
		var buf bytes.Buffer
		w, err := gzip.NewWriterLevel(&buf, level)
		if err != nil {
			return nil, err
		}
		if _, err = w.Write(data); err != nil {
			return nil, err
		}
		if err = w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case zstdCompression:
		e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil, err
		}
		defer e.Close()
		return e.EncodeAll(data, nil), nil
	}
	return data, nil
}

// WriteFile writes the pharmacophore to a file, in the format given by the file
// extension, as in ReadFile.
func (P *Pharmacophore) WriteFile(name string, opts *Options) error {
	format, comp, err := detectFormat(name)
	if err != nil {
		return errDecorate(err, "Pharmacophore.WriteFile")
	}
	return errDecorate(P.write(name, format, comp, opts), "Pharmacophore.WriteFile")
}

// WritePharmer writes the pharmacophore, and its associated structure blocks, if any,
// as a pharmer JSON file, regardless of the extension of name.
func (P *Pharmacophore) WritePharmer(name string, opts *Options) error {
	return errDecorate(P.writeAs(name, Pharmer, opts), "Pharmacophore.WritePharmer")
}

// WriteMOE writes the pharmacophore as a MOE .ph4 file, regardless of the extension of name.
func (P *Pharmacophore) WriteMOE(name string, opts *Options) error {
	return errDecorate(P.writeAs(name, MOE, opts), "Pharmacophore.WriteMOE")
}

// WriteLigandScout writes the pharmacophore as a LigandScout .pml file, regardless of the
// extension of name.
func (P *Pharmacophore) WriteLigandScout(name string, opts *Options) error {
	return errDecorate(P.writeAs(name, LigandScout, opts), "Pharmacophore.WriteLigandScout")
}

// WritePharmagist writes the pharmacophore as a PharmaGist mol2 file, regardless of the
// extension of name.
func (P *Pharmacophore) WritePharmagist(name string, opts *Options) error {
	return errDecorate(P.writeAs(name, Pharmagist, opts), "Pharmacophore.WritePharmagist")
}

// writeAs writes the file in the given format. The compression is still
// taken from the extension.
func (P *Pharmacophore) writeAs(name string, format Format, opts *Options) error {
	comp := noCompression
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		comp = gzipCompression
	case ".zst":
		comp = zstdCompression
	}
	return P.write(name, format, comp, opts)
}

func (P *Pharmacophore) write(name string, format Format, comp compression, opts *Options) error {
	C := opts.config()
	var data []byte
	var err error
	switch format {
	case Pharmer:
		data, err = EncodePharmer(P.elements, P.blocks)
	case MOE:
		var pal Palette
		if pal, err = C.Colors(); err == nil {
			data, err = EncodeMOE(P.elements, pal)
		}
	case LigandScout:
		data, err = EncodeLigandScout(P.elements)
	case Pharmagist:
		data, err = EncodePharmagist(C.PharmagistName, P.elements)
	}
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.withFile(name)
		}
		return errDecorate(err, "Pharmacophore.write")
	}
	if data, err = compress(data, comp, C.CompressionLevel); err != nil {
		return wrapError(ErrIOFailure, err, "Pharmacophore.write", "compressing").withFile(name)
	}
	if err = writeAtomic(name, data); err != nil {
		return errDecorate(err, "Pharmacophore.write")
	}
	logger.Debug("pharmacophore written", zap.String("file", name), zap.Stringer("format", format), zap.Int("elements", P.Len()))
	return nil
}

// writeAtomic writes data to a temporary file in the directory of name, and then
// renames it to name, so name is either left untouched or completely written.
func writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return wrapError(ErrIOFailure, err, "writeAtomic", "creating temporary file").withFile(name)
	}
	tmpname := tmp.Name()
	fail := func(err error, msg string) error {
		tmp.Close()
		os.Remove(tmpname)
		return wrapError(ErrIOFailure, err, "writeAtomic", "%s", msg).withFile(name)
	}
	if _, err = tmp.Write(data); err != nil {
		return fail(err, "writing")
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fail(err, "setting permissions")
	}
	if err = tmp.Close(); err != nil {
		return fail(err, "closing")
	}
	if err = os.Rename(tmpname, name); err != nil {
		return fail(err, "renaming "+filepath.Base(tmpname))
	}
	return nil
}

// decodedPoint builds a point read from a file. Invalid values are reported as
// a malformed file.
func decodedPoint(kind FeatureKind, center [3]float64, radius float64, dir []float64) (*Point, error) {
	p, err := NewPoint(kind, units.Angstroms(center[:]...), units.Angstroms(radius), dir, nil)
	if err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "decodedPoint", "invalid %s", kind)
	}
	return p, nil
}

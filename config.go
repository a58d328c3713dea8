/*
 * config.go, part of gopharm.
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
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultPharmagistName   = "pharmacophore"
	defaultCompressionLevel = 6
)

// Config holds the settings that change how pharmacophores are written and shown.
// The zero value is not useful, use DefaultConfig or LoadConfig.
type Config struct {
	//Color for each feature kind, as "#rrggbb", keyed by the feature name
	//(e.g. "hb acceptor"). Kinds not present use the default palette.
	Palette map[string]string `yaml:"palette"`
	//Compression level for .gz and .zst files, 1 (fastest) to 9 (smallest).
	CompressionLevel int `yaml:"compression_level"`
	//Molecule name written in PharmaGist records.
	PharmagistName string `yaml:"pharmagist_name"`
	LogLevel       string `yaml:"log_level"`
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		Palette:          map[string]string{},
		CompressionLevel: defaultCompressionLevel,
		PharmagistName:   defaultPharmagistName,
		LogLevel:         "info",
	}
}

// LoadConfig reads a YAML configuration file. Values missing from the file
// keep their default.
func LoadConfig(name string) (*Config, error) {
	C := DefaultConfig()
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, wrapError(ErrIOFailure, err, "LoadConfig", "reading configuration").withFile(name)
	}
	if err = yaml.Unmarshal(data, C); err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "LoadConfig", "parsing configuration").withFile(name)
	}
	if C.Palette == nil {
		C.Palette = map[string]string{}
	}
	if C.CompressionLevel < 1 || C.CompressionLevel > 9 {
		return nil, newError(ErrMalformedFormat, "LoadConfig", "compression level %d out of range 1-9", C.CompressionLevel).withFile(name)
	}
	if C.PharmagistName == "" {
		C.PharmagistName = defaultPharmagistName
	}
	return C, nil
}

// Colors returns the colors to be used for each feature kind, the default
// palette overriden with the colors in C.
func (C *Config) Colors() (Palette, error) {
	pal := DefaultPalette()
	for name, hex := range C.Palette {
		kind, err := ParseFeatureKind(name)
		if err != nil {
			return pal, errDecorate(err, "Config.Colors")
		}
		col, err := parseHexColor(hex)
		if err != nil {
			return pal, errDecorate(err, "Config.Colors")
		}
		pal[kind] = col
	}
	return pal, nil
}

// NewLogger builds a zap production logger at the level set in C.
func (C *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(C.LogLevel)
	if err != nil {
		return nil, wrapError(ErrMalformedFormat, err, "Config.NewLogger", "log level %q", C.LogLevel)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func configOrDefault(C *Config) *Config {
	if C == nil {
		return DefaultConfig()
	}
	return C
}

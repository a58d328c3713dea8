/*
 * config_test.go, part of gopharm.
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
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadConfig(Te *testing.T) {
	C, err := LoadConfig("test/config.yaml")
	require.NoError(Te, err)
	assert.Equal(Te, 3, C.CompressionLevel)
	assert.Equal(Te, "query", C.PharmagistName)
	pal, err := C.Colors()
	require.NoError(Te, err)
	assert.Equal(Te, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, pal[HBDonor])
	assert.Equal(Te, color.RGBA{R: 255, G: 255, B: 255, A: 255}, pal[HBAcceptor])
	assert.Equal(Te, DefaultPalette()[Hydrophobic], pal[Hydrophobic])
	assert.Len(Te, pal, NFeatureKinds)

	l, err := C.NewLogger()
	require.NoError(Te, err)
	assert.True(Te, l.Core().Enabled(zapcore.DebugLevel))
}

func TestLoadConfigDefaults(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "empty.yaml")
	require.NoError(Te, os.WriteFile(name, []byte("log_level: warn\n"), 0o644))
	C, err := LoadConfig(name)
	require.NoError(Te, err)
	D := DefaultConfig()
	assert.Equal(Te, D.CompressionLevel, C.CompressionLevel)
	assert.Equal(Te, D.PharmagistName, C.PharmagistName)
	assert.NotNil(Te, C.Palette)
	pal, err := C.Colors()
	require.NoError(Te, err)
	assert.Equal(Te, DefaultPalette(), pal)
}

func TestLoadConfigErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(Te, err, ErrIOFailure)

	cases := map[string]struct {
		doc  string
		kerr error
	}{
		"bad yaml":   {"palette: [", ErrMalformedFormat},
		"bad level":  {"compression_level: 12\n", ErrMalformedFormat},
		"wrong type": {"compression_level: fast\n", ErrMalformedFormat},
	}
	for name, c := range cases {
		fname := filepath.Join(dir, "config.yaml")
		require.NoError(Te, os.WriteFile(fname, []byte(c.doc), 0o644))
		C, err := LoadConfig(fname)
		assert.Nil(Te, C, name)
		assert.ErrorIs(Te, err, c.kerr, name)
		var e *Error
		require.ErrorAs(Te, err, &e, name)
		assert.Equal(Te, fname, e.FileName(), name)
	}

	C := DefaultConfig()
	C.Palette["halogen"] = "#000000"
	_, err = C.Colors()
	assert.ErrorIs(Te, err, ErrInvalidFeatureKind)
	C = DefaultConfig()
	C.Palette["hydrophobic"] = "#00000"
	_, err = C.Colors()
	assert.ErrorIs(Te, err, ErrMalformedFormat)
	C.Palette["hydrophobic"] = "#GG0000"
	_, err = C.Colors()
	assert.ErrorIs(Te, err, ErrMalformedFormat)

	C.LogLevel = "chatty"
	_, err = C.NewLogger()
	assert.ErrorIs(Te, err, ErrMalformedFormat)
}

func TestSetLogger(Te *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	data, err := os.ReadFile("test/pharmagist.mol2")
	require.NoError(Te, err)
	_, err = DecodePharmagist(data, 0)
	require.NoError(Te, err)
	warns := logs.FilterMessage("feature without radius, using default")
	assert.Equal(Te, 4, warns.Len())
	assert.Equal(Te, zapcore.WarnLevel, warns.All()[0].Level)

	n := logs.Len()
	SetLogger(nil)
	assert.NotNil(Te, Logger())
	_, err = DecodePharmagist(data, 0)
	require.NoError(Te, err)
	assert.Equal(Te, n, logs.Len())
}

/*
 * config_test.go, part of ffgen
 *
 * Copyright 2024 The ffgen authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

package ffgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))
	return path
}

func validConfig(t *testing.T) *Config {
	dir := t.TempDir()
	return &Config{
		Mol2:        touch(t, dir, "lig.mol2"),
		Frcmod:      touch(t, dir, "lig_hand.frcmod"),
		Prefix:      "lig",
		LeapProtein: touch(t, dir, "leaprc.protein.ff14SB"),
		LeapLipid:   touch(t, dir, "leaprc.lipid21"),
		LeapGaff:    touch(t, dir, "leaprc.gaff"),
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "toppar/forcefield.itp", cfg.ForceFieldInclude)

	cfg = validConfig(t)
	cfg.ForceFieldInclude = "other/ff.itp"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "other/ff.itp", cfg.ForceFieldInclude)
}

func TestConfigValidateRejects(t *testing.T) {
	cfg := validConfig(t)
	cfg.Prefix = ""
	assert.ErrorContains(t, cfg.Validate(), "prefix")

	cfg = validConfig(t)
	cfg.Mol2 = ""
	assert.ErrorContains(t, cfg.Validate(), "MOL2")

	cfg = validConfig(t)
	cfg.Frcmod = filepath.Join(t.TempDir(), "missing.frcmod")
	assert.ErrorContains(t, cfg.Validate(), "FRCMOD")

	//a directory is not a usable input file
	cfg = validConfig(t)
	cfg.LeapGaff = t.TempDir()
	assert.ErrorContains(t, cfg.Validate(), "gaff leaprc")
}

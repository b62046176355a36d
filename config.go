/*
 * config.go, part of ffgen
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
	"fmt"
	"os"
)

//Config names every input of a build. The mapstructure tags let the CLI
//unmarshal it straight from viper (flags, environment or a config file);
//tests just fill the fields.
type Config struct {
	Mol2        string `mapstructure:"mol2"`         //ligand structure
	Frcmod      string `mapstructure:"frcmod"`       //curated parameters for it
	Prefix      string `mapstructure:"prefix"`       //names every output file
	LeapProtein string `mapstructure:"leap_protein"` //leaprc.protein.ff14SB or similar
	LeapLipid   string `mapstructure:"leap_lipid"`   //leaprc.lipid21 or similar
	LeapGaff    string `mapstructure:"leap_gaff"`    //leaprc.gaff or similar
	//ForceFieldInclude is the generic forcefield file referenced from
	//topol.top. Empty means toppar/forcefield.itp.
	ForceFieldInclude string `mapstructure:"forcefield_include"`
}

//Validate checks that the configuration is complete and that every
//user-supplied path references an existing regular file. It returns the
//first problem found; a missing input is always fatal, there is nothing to
//retry. Validate also fills in the defaultable fields.
func (C *Config) Validate() error {
	if C.Prefix == "" {
		return fmt.Errorf("config: no output prefix given")
	}
	paths := []struct {
		what string
		path string
	}{
		{"MOL2 structure", C.Mol2},
		{"FRCMOD parameters", C.Frcmod},
		{"protein leaprc", C.LeapProtein},
		{"lipid leaprc", C.LeapLipid},
		{"gaff leaprc", C.LeapGaff},
	}
	for _, v := range paths {
		if err := requireFile(v.what, v.path); err != nil {
			return err
		}
	}
	if C.ForceFieldInclude == "" {
		C.ForceFieldInclude = "toppar/forcefield.itp"
	}
	return nil
}

func requireFile(what, path string) error {
	if path == "" {
		return fmt.Errorf("config: no %s file given", what)
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return fmt.Errorf("config: required %s file not found: %s", what, path)
	}
	return nil
}

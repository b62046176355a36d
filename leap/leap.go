/*
 * leap.go, part of ffgen
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

//In order to use this package you need the tleap program from AmberTools.
//Please cite the AmberTools references if you use it.

//Package leap drives the external AMBER parameterization tools (tleap,
//antechamber, parmchk2). It only writes their inputs, invokes them and
//checks their outputs; all the actual force-field work happens in the tools
//themselves.

package leap

import (
	"fmt"
	"os"
)

//TLeap writes a leap script and runs tleap on it.
type TLeap struct {
	command   string
	inputname string
	runner    Runner
}

//NewTLeap returns a TLeap handle with the default command and script name,
//running through the given Runner. A nil Runner means ExecRunner.
func NewTLeap(r Runner) *TLeap {
	run := new(TLeap)
	run.SetDefaults()
	if r != nil {
		run.runner = r
	}
	return run
}

func (O *TLeap) SetDefaults() {
	O.command = "tleap"
	O.inputname = "leap.in"
	O.runner = ExecRunner{}
}

func (O *TLeap) Command() string {
	return O.command
}

func (O *TLeap) SetCommand(name string) {
	O.command = name
}

//SetName sets the name of the generated leap script.
func (O *TLeap) SetName(name string) {
	O.inputname = name
}

//BuildInput writes a fresh leap script (truncating any previous one): one
//"source" statement per entry of sources, in order, then commands to load
//the structure as the object LIG, apply the frcmod parameters, and save the
//prmtop/rst7 pair under prefix. The order of sources matters: tleap resolves
//atom types against them in the order they were loaded, so callers must not
//reorder the protein/lipid/gaff sequence they were given.
func (O *TLeap) BuildInput(prefix, mol2name, frcmodname string, sources []string) error {
	f, err := os.Create(O.inputname)
	if err != nil {
		return Error{ErrCantInput, O.command, O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	defer f.Close()
	for _, src := range sources {
		fmt.Fprintf(f, "source %s\n", src)
	}
	fmt.Fprintf(f, "LIG = loadMol2 %s\n", mol2name)
	fmt.Fprintf(f, "loadAmberParams %s\n", frcmodname)
	fmt.Fprintf(f, "saveAmberParm LIG %s.prmtop %s.rst7\n", prefix, prefix)
	fmt.Fprintln(f, "quit")
	return nil
}

//Run invokes tleap on the previously built script and decides whether the
//build worked. tleap can exit 0 while silently saving nothing, so success
//requires a clean exit AND a non-empty prefix.prmtop on disk. The Result is
//returned in any case so the caller can forward the captured output; the
//error is only non-nil for invocation-level failures.
func (O *TLeap) Run(prefix string) (bool, *Result, error) {
	res, err := O.runner.Run(O.command, "-f", O.inputname)
	if err != nil {
		return false, nil, errDecorate(err, "TLeap.Run")
	}
	if !res.Success {
		return false, res, nil
	}
	fi, err := os.Stat(prefix + ".prmtop")
	if err != nil || fi.Size() == 0 {
		return false, res, nil
	}
	return true, res, nil
}

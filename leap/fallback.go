/*
 * fallback.go, part of ffgen
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

package leap

//The GAFF fallback: when tleap can't build the ligand from the curated
//frcmod, antechamber re-types the structure with generic organic (GAFF)
//atom types and AM1-BCC charges, and parmchk2 fills in whatever bonded
//parameters are still missing. Neither tool is safe for metal centers;
//gating on that is the caller's job (see mol2.HasMetal).

//Antechamber assigns atom types and partial charges to a MOL2 structure.
type Antechamber struct {
	command     string
	chargemodel string
	atomtypes   string
	runner      Runner
}

//NewAntechamber returns an Antechamber handle with the fixed charge model
//(AM1-BCC) and typing scheme (GAFF) that the fallback uses.
func NewAntechamber(r Runner) *Antechamber {
	run := new(Antechamber)
	run.SetDefaults()
	if r != nil {
		run.runner = r
	}
	return run
}

func (O *Antechamber) SetDefaults() {
	O.command = "antechamber"
	O.chargemodel = "bcc"
	O.atomtypes = "gaff"
	O.runner = ExecRunner{}
}

func (O *Antechamber) SetCommand(name string) {
	O.command = name
}

//Run re-types the MOL2 file in into the MOL2 file out. Unlike the tleap
//handle, any non-zero exit is an error: there is no further fallback behind
//this one.
func (O *Antechamber) Run(in, out string) error {
	res, err := O.runner.Run(O.command,
		"-i", in, "-fi", "mol2",
		"-o", out, "-fo", "mol2",
		"-c", O.chargemodel, "-s", "2", "-at", O.atomtypes)
	if err != nil {
		return errDecorate(err, "Antechamber.Run")
	}
	if !res.Success {
		return Error{ErrToolFailure, O.command, in, res.Stderr, []string{"Antechamber.Run"}, true}
	}
	return nil
}

//Parmchk runs parmchk2, which scans a (GAFF-typed) structure for bonded
//terms with no parameters and writes a supplementary frcmod covering them.
type Parmchk struct {
	command string
	runner  Runner
}

func NewParmchk(r Runner) *Parmchk {
	run := new(Parmchk)
	run.SetDefaults()
	if r != nil {
		run.runner = r
	}
	return run
}

func (O *Parmchk) SetDefaults() {
	O.command = "parmchk2"
	O.runner = ExecRunner{}
}

func (O *Parmchk) SetCommand(name string) {
	O.command = name
}

//Run writes the supplementary frcmod for in into out. As with Antechamber,
//a non-zero exit is fatal.
func (O *Parmchk) Run(in, out string) error {
	res, err := O.runner.Run(O.command, "-i", in, "-f", "mol2", "-o", out)
	if err != nil {
		return errDecorate(err, "Parmchk.Run")
	}
	if !res.Success {
		return Error{ErrToolFailure, O.command, in, res.Stderr, []string{"Parmchk.Run"}, true}
	}
	return nil
}

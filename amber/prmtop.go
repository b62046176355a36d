/*
 * prmtop.go, part of ffgen
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

//Package amber reads the prmtop/rst7 pair that tleap saves and writes the
//Gromacs gro/itp equivalents. Only the sections needed for a single
//non-solvated ligand are interpreted; everything else in the prmtop is
//carried past without complaint.

package amber

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

//The prmtop is a sequence of %FLAG blocks, each with a %FORMAT line giving
//the Fortran layout of its data. Numeric blocks could be split on
//whitespace, but alphanumeric ones (atom names, atom types) cannot: two
//adjacent 4-character names have no separator between them. So every block
//is cut into fixed-width chunks according to its %FORMAT.
var formatRe = regexp.MustCompile(`%FORMAT\(\s*(\d+)([aAiIeEfFgGdD])(\d+)`)

//indices into the POINTERS block
const (
	pNatom = iota
	pNtypes
	pNbonh
	pMbona
	pNtheth
	pMtheta
	pNphih
	pMphia
	_ //NHPARM
	_ //NPARM
	_ //NNB
	pNres
)

//Parm is an in-memory prmtop. The fields follow the file's own blocks; the
//methods hand out the same data in 0-based, unit-converted form.
type Parm struct {
	Title       string
	pointers    []int
	names       []string
	charges     []float64 //in Amber units (e * 18.2223), as stored in the file
	masses      []float64
	typeIndex   []int
	atomTypes   []string
	resLabels   []string
	resPointers []int
	bondK       []float64
	bondEq      []float64
	angleK      []float64
	angleEq     []float64
	dihK        []float64
	dihPeriod   []float64
	dihPhase    []float64
	scee        []float64
	scnb        []float64
	acoef       []float64
	bcoef       []float64
	nbIndex     []int
	bondsH      []int
	bondsA      []int
	anglesH     []int
	anglesA     []int
	dihH        []int
	dihA        []int
}

//ReadParm reads and parses the prmtop file at path.
func ReadParm(path string) (*Parm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"ReadParm"}, true}
	}
	defer f.Close()
	P, err := ParmFromReader(bufio.NewReader(f))
	if err != nil {
		return nil, errDecorate(err, "ReadParm "+path)
	}
	return P, nil
}

//ParmFromReader parses a prmtop from an already-open reader.
func ParmFromReader(r *bufio.Reader) (*Parm, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}
	P := new(Parm)
	if t, ok := blocks["TITLE"]; ok && len(t) > 0 {
		P.Title = strings.TrimSpace(strings.Join(t, " "))
	}
	P.pointers, err = blockInts(blocks, "POINTERS")
	if err != nil {
		return nil, err
	}
	if len(P.pointers) < pNres+1 {
		return nil, Error{WrongFormat + ": truncated POINTERS block", "", []string{"ParmFromReader"}, true}
	}
	//the string blocks
	var ok bool
	if P.names, ok = blocks["ATOM_NAME"]; !ok {
		return nil, missing("ATOM_NAME")
	}
	if P.atomTypes, ok = blocks["AMBER_ATOM_TYPE"]; !ok {
		return nil, missing("AMBER_ATOM_TYPE")
	}
	if P.resLabels, ok = blocks["RESIDUE_LABEL"]; !ok {
		return nil, missing("RESIDUE_LABEL")
	}
	//the numeric blocks
	floats := []struct {
		flag string
		dst  *[]float64
	}{
		{"CHARGE", &P.charges},
		{"MASS", &P.masses},
		{"BOND_FORCE_CONSTANT", &P.bondK},
		{"BOND_EQUIL_VALUE", &P.bondEq},
		{"ANGLE_FORCE_CONSTANT", &P.angleK},
		{"ANGLE_EQUIL_VALUE", &P.angleEq},
		{"DIHEDRAL_FORCE_CONSTANT", &P.dihK},
		{"DIHEDRAL_PERIODICITY", &P.dihPeriod},
		{"DIHEDRAL_PHASE", &P.dihPhase},
		{"LENNARD_JONES_ACOEF", &P.acoef},
		{"LENNARD_JONES_BCOEF", &P.bcoef},
	}
	for _, v := range floats {
		*v.dst, err = blockFloats(blocks, v.flag)
		if err != nil {
			return nil, err
		}
	}
	ints := []struct {
		flag string
		dst  *[]int
	}{
		{"ATOM_TYPE_INDEX", &P.typeIndex},
		{"NONBONDED_PARM_INDEX", &P.nbIndex},
		{"RESIDUE_POINTER", &P.resPointers},
		{"BONDS_INC_HYDROGEN", &P.bondsH},
		{"BONDS_WITHOUT_HYDROGEN", &P.bondsA},
		{"ANGLES_INC_HYDROGEN", &P.anglesH},
		{"ANGLES_WITHOUT_HYDROGEN", &P.anglesA},
		{"DIHEDRALS_INC_HYDROGEN", &P.dihH},
		{"DIHEDRALS_WITHOUT_HYDROGEN", &P.dihA},
	}
	for _, v := range ints {
		*v.dst, err = blockInts(blocks, v.flag)
		if err != nil {
			return nil, err
		}
	}
	//SCEE/SCNB only exist in newer prmtops; absent means the Amber defaults.
	P.scee, _ = blockFloats(blocks, "SCEE_SCALE_FACTOR")
	P.scnb, _ = blockFloats(blocks, "SCNB_SCALE_FACTOR")
	if len(P.names) < P.pointers[pNatom] {
		return nil, Error{WrongFormat + ": fewer atom names than atoms", "", []string{"ParmFromReader"}, true}
	}
	return P, nil
}

//readBlocks does the %FLAG / %FORMAT scan, returning each block as a slice
//of trimmed fixed-width fields.
func readBlocks(r *bufio.Reader) (map[string][]string, error) {
	blocks := make(map[string][]string)
	current := ""
	width := 0
	var err error
	var line string
	for line, err = r.ReadString('\n'); err == nil || (errors.Is(err, io.EOF) && line != ""); line, err = r.ReadString('\n') {
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "%VERSION"), strings.HasPrefix(line, "%COMMENT"):
			//nothing to do
		case strings.HasPrefix(line, "%FLAG"):
			f := strings.Fields(line)
			if len(f) < 2 {
				return nil, Error{WrongFormat + ": empty %FLAG line", "", []string{"readBlocks"}, true}
			}
			current = f[1]
			width = 0
			blocks[current] = []string{}
		case strings.HasPrefix(line, "%FORMAT"):
			m := formatRe.FindStringSubmatch(line)
			if m == nil {
				return nil, Error{WrongFormat + ": can't understand " + line, "", []string{"readBlocks"}, true}
			}
			width, _ = strconv.Atoi(m[3])
		case current != "":
			blocks[current] = append(blocks[current], chop(line, width)...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, Error{err.Error(), "", []string{"readBlocks"}, true}
	}
	return blocks, nil
}

//chop cuts a line into trimmed width-sized fields, dropping all-blank ones.
//With no known width it falls back to whitespace splitting.
func chop(line string, width int) []string {
	if width <= 0 {
		return strings.Fields(line)
	}
	ret := make([]string, 0, len(line)/width+1)
	for i := 0; i < len(line); i += width {
		end := i + width
		if end > len(line) {
			end = len(line)
		}
		f := strings.TrimSpace(line[i:end])
		if f != "" {
			ret = append(ret, f)
		}
	}
	return ret
}

func missing(flag string) error {
	return Error{WrongFormat + ": missing block " + flag, "", []string{"ParmFromReader"}, true}
}

func blockFloats(blocks map[string][]string, flag string) ([]float64, error) {
	b, ok := blocks[flag]
	if !ok {
		return nil, missing(flag)
	}
	ret := make([]float64, 0, len(b))
	for _, v := range b {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: can't parse '%s' in block %s: %s", WrongFormat, v, flag, err.Error()), "", []string{"blockFloats"}, true}
		}
		ret = append(ret, n)
	}
	return ret, nil
}

func blockInts(blocks map[string][]string, flag string) ([]int, error) {
	b, ok := blocks[flag]
	if !ok {
		return nil, missing(flag)
	}
	ret := make([]int, 0, len(b))
	for _, v := range b {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: can't parse '%s' in block %s: %s", WrongFormat, v, flag, err.Error()), "", []string{"blockInts"}, true}
		}
		ret = append(ret, n)
	}
	return ret, nil
}

//Counts and per-atom accessors. All indices are 0-based.

//NAtoms returns the number of atoms in the topology.
func (P *Parm) NAtoms() int { return P.pointers[pNatom] }

//NBonds returns the total number of bonds, with and without hydrogens.
func (P *Parm) NBonds() int { return P.pointers[pNbonh] + P.pointers[pMbona] }

//NAngles returns the total number of angles.
func (P *Parm) NAngles() int { return P.pointers[pNtheth] + P.pointers[pMtheta] }

//NDihedrals returns the total number of dihedral terms, proper and improper.
func (P *Parm) NDihedrals() int { return P.pointers[pNphih] + P.pointers[pMphia] }

//NResidues returns the number of residues.
func (P *Parm) NResidues() int { return P.pointers[pNres] }

//NTypes returns the number of distinct Lennard-Jones atom types.
func (P *Parm) NTypes() int { return P.pointers[pNtypes] }

//Name returns the name of the ith atom.
func (P *Parm) Name(i int) string { return P.names[i] }

//Type returns the Amber atom type of the ith atom.
func (P *Parm) Type(i int) string { return P.atomTypes[i] }

//Charge returns the partial charge of the ith atom, in electron units (the
//file stores charges scaled by 18.2223, Amber's sqrt of the electrostatic
//constant in its internal units).
func (P *Parm) Charge(i int) float64 { return P.charges[i] / amberChargeUnit }

//Mass returns the mass of the ith atom, in amu.
func (P *Parm) Mass(i int) float64 { return P.masses[i] }

//ResidueOf returns the 1-based residue number and the residue label for the
//ith atom.
func (P *Parm) ResidueOf(i int) (int, string) {
	//residue r spans atoms resPointers[r]-1 .. resPointers[r+1]-2
	res := 0
	for r, start := range P.resPointers {
		if i >= start-1 {
			res = r
		}
	}
	return res + 1, P.resLabels[res]
}

//Bonded terms

//A Bond joins atoms I and J (0-based) with the 1-based parameter index Type.
type Bond struct {
	I, J int
	Type int
}

//An Angle spans atoms I-J-K.
type Angle struct {
	I, J, K int
	Type    int
}

//A Dihedral spans atoms I-J-K-L. Improper marks a coded improper term
//(negative fourth atom in the file); SkipPair marks a term whose 1-4 pair
//must not be generated (negative third atom), which Amber uses for rings and
//multi-term dihedrals.
type Dihedral struct {
	I, J, K, L int
	Type       int
	Improper   bool
	SkipPair   bool
}

//Bonds returns every bond, hydrogen-involving ones first, as stored.
func (P *Parm) Bonds() []Bond {
	ret := make([]Bond, 0, P.NBonds())
	for _, raw := range [][]int{P.bondsH, P.bondsA} {
		for i := 0; i+2 < len(raw); i += 3 {
			ret = append(ret, Bond{raw[i] / 3, raw[i+1] / 3, raw[i+2]})
		}
	}
	return ret
}

//Angles returns every angle.
func (P *Parm) Angles() []Angle {
	ret := make([]Angle, 0, P.NAngles())
	for _, raw := range [][]int{P.anglesH, P.anglesA} {
		for i := 0; i+3 < len(raw); i += 4 {
			ret = append(ret, Angle{raw[i] / 3, raw[i+1] / 3, raw[i+2] / 3, raw[i+3]})
		}
	}
	return ret
}

//Dihedrals returns every dihedral term, decoding the sign conventions of
//the file into the Improper/SkipPair flags.
func (P *Parm) Dihedrals() []Dihedral {
	abs := func(i int) int {
		if i < 0 {
			return -i
		}
		return i
	}
	ret := make([]Dihedral, 0, P.NDihedrals())
	for _, raw := range [][]int{P.dihH, P.dihA} {
		for i := 0; i+4 < len(raw); i += 5 {
			d := Dihedral{
				I:        raw[i] / 3,
				J:        raw[i+1] / 3,
				K:        abs(raw[i+2]) / 3,
				L:        abs(raw[i+3]) / 3,
				Type:     raw[i+4],
				Improper: raw[i+3] < 0,
				SkipPair: raw[i+2] < 0,
			}
			ret = append(ret, d)
		}
	}
	return ret
}

//BondParam returns the Gromacs-unit parameters (b0 in nm, kb in kJ/mol/nm2)
//for the 1-based bond parameter index t. Amber stores K such that
//E = K(r-r0)^2 while Gromacs uses E = k/2 (b-b0)^2, hence the factor 2.
func (P *Parm) BondParam(t int) (b0, kb float64) {
	return P.bondEq[t-1] * a2nm, P.bondK[t-1] * 2 * cal2Joule / (a2nm * a2nm)
}

//AngleParam returns theta0 in degrees and k in kJ/mol/rad2 for the 1-based
//angle parameter index t. The file stores equilibrium angles in radians.
func (P *Parm) AngleParam(t int) (th0, k float64) {
	return P.angleEq[t-1] * 180 / math.Pi, P.angleK[t-1] * 2 * cal2Joule
}

//DihedralParam returns the phase in degrees, the barrier in kJ/mol and the
//periodicity for the 1-based dihedral parameter index t.
func (P *Parm) DihedralParam(t int) (phase, k float64, pn int) {
	return P.dihPhase[t-1] * 180 / math.Pi, P.dihK[t-1] * cal2Joule, int(P.dihPeriod[t-1] + 0.5)
}

//LJParam returns sigma (nm) and epsilon (kJ/mol) for the 1-based
//Lennard-Jones type index t, recovered from the A/B coefficients:
//A = 4 eps sigma^12, B = 4 eps sigma^6.
func (P *Parm) LJParam(t int) (sigma, epsilon float64) {
	nt := P.NTypes()
	idx := P.nbIndex[(t-1)*nt+(t-1)]
	if idx <= 0 { //a 10-12 pair; nothing we can express
		return 0, 0
	}
	a := P.acoef[idx-1]
	b := P.bcoef[idx-1]
	if a == 0 || b == 0 {
		return 0, 0
	}
	return math.Pow(a/b, 1.0/6.0) * a2nm, b * b / (4 * a) * cal2Joule
}

//Errors

//errDecorate asserts that the error implements the Error()/Decorate()
//contract and decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(interface {
		Error() string
		Decorate(string) []string
	})
	err2.Decorate(caller)
	return err2.(error)
}

//Error is the error type for Amber file handling.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("amber file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error and returns the decoration slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//FileName returns the file associated to the error
func (err Error) FileName() string { return err.filename }

const (
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in file"
)

/*
 * gmx.go, part of ffgen
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

//Conversion of a Parm plus coordinates to the Gromacs gro/itp pair.
//Unit bookkeeping: Amber works in kcal/mol, Angstrom and radians (for
//angle equilibria); Gromacs wants kJ/mol, nm and degrees. Harmonic force
//constants additionally pick up a factor 2 because Amber writes E = K x^2
//and Gromacs E = k/2 x^2.

package amber

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

const (
	amberChargeUnit = 18.2223 //charges in the prmtop are e * this
	cal2Joule       = 4.184
	a2nm            = 0.1
)

//a table for assigning atomic numbers from masses. Just the common
//"bio-elements" plus the metals the rest of the pipeline knows about.
var elements = []struct {
	mass float64
	z    int
}{
	{1.008, 1}, {12.01, 6}, {14.01, 7}, {16.00, 8}, {19.00, 9},
	{22.99, 11}, {24.305, 12}, {30.97, 15}, {32.06, 16}, {35.45, 17},
	{39.10, 19}, {40.08, 20}, {50.94, 23}, {54.94, 25}, {55.85, 26},
	{58.93, 27}, {58.69, 28}, {63.55, 29}, {65.38, 30}, {79.90, 35},
	{95.95, 42}, {126.90, 53}, {183.84, 74},
}

//atomicNumber guesses the atomic number of an atom from its mass. A rough
//match is plenty: the number only decorates the atomtypes table. Returns 0
//if nothing is close.
func atomicNumber(mass float64) int {
	best := 0
	bestd := 0.6 //anything further off than this is "unknown"
	for _, e := range elements {
		d := math.Abs(e.mass - mass)
		if d < bestd {
			bestd = d
			best = e.z
		}
	}
	return best
}

//WriteGro writes a Gromacs coordinate (gro) file for the Parm, converting
//the Angstrom coordinates to nm. A nil box writes a zero box line, which is
//what a vacuum ligand gets.
func WriteGro(w io.Writer, P *Parm, coords *mat.Dense, box []float64) error {
	rows, cols := coords.Dims()
	if rows != P.NAtoms() || cols != 3 {
		return Error{fmt.Sprintf("%d x %d coordinates for %d atoms", rows, cols, P.NAtoms()), "", []string{"WriteGro"}, true}
	}
	name := P.Title
	if name == "" {
		name = "LIG"
	}
	if _, err := fmt.Fprintf(w, "%s\n%5d\n", name, P.NAtoms()); err != nil {
		return Error{err.Error(), "", []string{"WriteGro"}, true}
	}
	for i := 0; i < P.NAtoms(); i++ {
		resnum, reslabel := P.ResidueOf(i)
		_, err := fmt.Fprintf(w, "%5d%-5s%5s%5d%8.3f%8.3f%8.3f\n",
			resnum, reslabel, P.Name(i), i+1,
			coords.At(i, 0)*a2nm, coords.At(i, 1)*a2nm, coords.At(i, 2)*a2nm)
		if err != nil {
			return Error{err.Error(), "", []string{"WriteGro"}, true}
		}
	}
	b := []float64{0, 0, 0}
	if len(box) >= 3 {
		b = []float64{box[0] * a2nm, box[1] * a2nm, box[2] * a2nm}
	}
	if _, err := fmt.Fprintf(w, "%10.5f%10.5f%10.5f\n", b[0], b[1], b[2]); err != nil {
		return Error{err.Error(), "", []string{"WriteGro"}, true}
	}
	return nil
}

//WriteGroFile is WriteGro to a freshly created file.
func WriteGroFile(path string, P *Parm, coords *mat.Dense, box []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return Error{err.Error(), path, []string{"WriteGroFile"}, true}
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := WriteGro(bw, P, coords, box); err != nil {
		return errDecorate(err, "WriteGroFile "+path)
	}
	if err := bw.Flush(); err != nil {
		return Error{err.Error(), path, []string{"WriteGroFile"}, true}
	}
	return nil
}

//WriteITP writes the full Gromacs topology for the molecule in P under the
//name molname: defaults and atomtypes first (the post-processor later moves
//those to a forcefield file), then the molecule sections. Pairs are the 1-4
//pairs implied by the proper dihedrals, minus the ones the prmtop marks as
//already excluded.
func WriteITP(w io.Writer, P *Parm, molname string) error {
	var err error
	p := func(format string, a ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, a...)
	}
	p(";\n; Topology for %s, generated by ffgen from an Amber prmtop\n;\n", molname)
	p("\n[ defaults ]\n; nbfunc        comb-rule       gen-pairs       fudgeLJ fudgeQQ\n")
	p("1               2               yes             0.5     0.8333\n")

	p("\n[ atomtypes ]\n;name   at.num     mass     charge  ptype       sigma     epsilon\n")
	seen := make(map[string]bool)
	for i := 0; i < P.NAtoms(); i++ {
		t := P.Type(i)
		if seen[t] {
			continue
		}
		seen[t] = true
		sigma, eps := P.LJParam(P.typeIndex[i])
		p("%-6s %6d %10.4f %10.6f      A %11.5e %11.5e\n",
			t, atomicNumber(P.Mass(i)), P.Mass(i), 0.0, sigma, eps)
	}

	p("\n[ moleculetype ]\n;name            nrexcl\n%-16s 3\n", molname)

	p("\n[ atoms ]\n;   nr  type  resi  res  atom  cgnr     charge      mass\n")
	for i := 0; i < P.NAtoms(); i++ {
		resnum, reslabel := P.ResidueOf(i)
		p("%6d %5s %5d %5s %5s %5d %10.6f %10.4f\n",
			i+1, P.Type(i), resnum, reslabel, P.Name(i), i+1, P.Charge(i), P.Mass(i))
	}

	p("\n[ bonds ]\n;   ai     aj  funct       r           k\n")
	for _, b := range P.Bonds() {
		b0, kb := P.BondParam(b.Type)
		p("%6d %6d      1 %11.4e %11.4e\n", b.I+1, b.J+1, b0, kb)
	}

	dihedrals := P.Dihedrals()
	p("\n[ pairs ]\n;   ai     aj  funct\n")
	seenPair := make(map[[2]int]bool)
	for _, d := range dihedrals {
		if d.Improper || d.SkipPair {
			continue
		}
		i, l := d.I, d.L
		if i > l {
			i, l = l, i
		}
		key := [2]int{i, l}
		if seenPair[key] {
			continue
		}
		seenPair[key] = true
		p("%6d %6d      1\n", i+1, l+1)
	}

	p("\n[ angles ]\n;   ai     aj     ak  funct     theta         cth\n")
	for _, a := range P.Angles() {
		th0, k := P.AngleParam(a.Type)
		p("%6d %6d %6d      1 %9.3f %11.4e\n", a.I+1, a.J+1, a.K+1, th0, k)
	}

	p("\n[ dihedrals ] ; propers\n;   ai     aj     ak     al  funct    phase        kd   pn\n")
	for _, d := range dihedrals {
		if d.Improper {
			continue
		}
		phase, k, pn := P.DihedralParam(d.Type)
		p("%6d %6d %6d %6d      9 %8.2f %9.5f %4d\n", d.I+1, d.J+1, d.K+1, d.L+1, phase, k, pn)
	}

	p("\n[ dihedrals ] ; impropers\n;   ai     aj     ak     al  funct    phase        kd   pn\n")
	for _, d := range dihedrals {
		if !d.Improper {
			continue
		}
		phase, k, pn := P.DihedralParam(d.Type)
		p("%6d %6d %6d %6d      4 %8.2f %9.5f %4d\n", d.I+1, d.J+1, d.K+1, d.L+1, phase, k, pn)
	}

	if err != nil {
		return Error{err.Error(), "", []string{"WriteITP"}, true}
	}
	return nil
}

//WriteITPFile is WriteITP to a freshly created file.
func WriteITPFile(path string, P *Parm, molname string) error {
	f, err := os.Create(path)
	if err != nil {
		return Error{err.Error(), path, []string{"WriteITPFile"}, true}
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := WriteITP(bw, P, molname); err != nil {
		return errDecorate(err, "WriteITPFile "+path)
	}
	if err := bw.Flush(); err != nil {
		return Error{err.Error(), path, []string{"WriteITPFile"}, true}
	}
	return nil
}

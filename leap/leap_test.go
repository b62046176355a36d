/*
 * leap_test.go, part of ffgen
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

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

//fakeRunner records every invocation and answers from a canned script of
//results, one per call, repeating the last one if it runs out.
type fakeRunner struct {
	calls   [][]string
	results []*Result
	err     error
}

func (f *fakeRunner) Run(name string, args ...string) (*Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.calls) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i], nil
}

func TestTLeapBuildInput(Te *testing.T) {
	dir := Te.TempDir()
	script := filepath.Join(dir, "leap.in")
	tl := NewTLeap(&fakeRunner{})
	tl.SetName(script)
	sources := []string{"/amber/leaprc.protein.ff14SB", "/amber/leaprc.lipid21", "/amber/leaprc.gaff"}
	if err := tl.BuildInput("3ARC_HEM", "3ARC_HEM.mol2", "3ARC_HEM.frcmod", sources); err != nil {
		Te.Fatal(err)
	}
	got, err := os.ReadFile(script)
	if err != nil {
		Te.Fatal(err)
	}
	want := `source /amber/leaprc.protein.ff14SB
source /amber/leaprc.lipid21
source /amber/leaprc.gaff
LIG = loadMol2 3ARC_HEM.mol2
loadAmberParams 3ARC_HEM.frcmod
saveAmberParm LIG 3ARC_HEM.prmtop 3ARC_HEM.rst7
quit
`
	if string(got) != want {
		Te.Errorf("wrong leap script:\n%s", got)
	}
}

func TestTLeapRun(Te *testing.T) {
	dir := Te.TempDir()
	prefix := filepath.Join(dir, "lig")
	fake := &fakeRunner{results: []*Result{{Success: true}}}
	tl := NewTLeap(fake)
	tl.SetName(filepath.Join(dir, "leap.in"))

	//clean exit but no prmtop on disk: that is still a failed build
	ok, res, err := tl.Run(prefix)
	if err != nil {
		Te.Fatal(err)
	}
	if ok {
		Te.Errorf("Run reported success with no prmtop on disk")
	}
	if res == nil || !res.Success {
		Te.Errorf("the Result was not forwarded")
	}
	if want := []string{"tleap", "-f", filepath.Join(dir, "leap.in")}; !reflect.DeepEqual(fake.calls[0], want) {
		Te.Errorf("wrong tleap invocation: %v", fake.calls[0])
	}

	//an empty prmtop doesn't count either
	if err := os.WriteFile(prefix+".prmtop", nil, 0644); err != nil {
		Te.Fatal(err)
	}
	if ok, _, _ = tl.Run(prefix); ok {
		Te.Errorf("Run reported success on an empty prmtop")
	}

	if err := os.WriteFile(prefix+".prmtop", []byte("%VERSION\n"), 0644); err != nil {
		Te.Fatal(err)
	}
	if ok, _, err = tl.Run(prefix); err != nil || !ok {
		Te.Errorf("Run failed on a clean exit with a non-empty prmtop: ok=%v err=%v", ok, err)
	}

	//non-zero exit loses, prmtop or not
	fake.results = []*Result{{Success: false, Status: 1, Stderr: "FATAL"}}
	ok, res, err = tl.Run(prefix)
	if err != nil || ok {
		Te.Errorf("Run ignored the exit status: ok=%v err=%v", ok, err)
	}
	if res.Stderr != "FATAL" {
		Te.Errorf("stderr not forwarded")
	}
}

func TestTLeapRunNotInstalled(Te *testing.T) {
	fake := &fakeRunner{err: Error{ErrNotRunning, "tleap", "", "executable file not found", nil, true}}
	tl := NewTLeap(fake)
	_, _, err := tl.Run("lig")
	if err == nil {
		Te.Fatalf("expected an invocation error")
	}
	if !strings.Contains(err.Error(), ErrNotRunning) {
		Te.Errorf("wrong error: %v", err)
	}
}

func TestAntechamber(Te *testing.T) {
	fake := &fakeRunner{results: []*Result{{Success: true}}}
	if err := NewAntechamber(fake).Run("lig.mol2", "lig_gaff.mol2"); err != nil {
		Te.Fatal(err)
	}
	want := []string{"antechamber",
		"-i", "lig.mol2", "-fi", "mol2",
		"-o", "lig_gaff.mol2", "-fo", "mol2",
		"-c", "bcc", "-s", "2", "-at", "gaff"}
	if !reflect.DeepEqual(fake.calls[0], want) {
		Te.Errorf("wrong antechamber invocation: %v", fake.calls[0])
	}
	fake.results = []*Result{{Success: false, Status: 1, Stderr: "cannot run sqm"}}
	err := NewAntechamber(fake).Run("lig.mol2", "lig_gaff.mol2")
	if err == nil {
		Te.Fatalf("a failed antechamber run must be an error")
	}
	if !strings.Contains(err.Error(), "cannot run sqm") {
		Te.Errorf("the tool's stderr was dropped from the error: %v", err)
	}
}

func TestParmchk(Te *testing.T) {
	fake := &fakeRunner{results: []*Result{{Success: true}}}
	if err := NewParmchk(fake).Run("lig_gaff.mol2", "lig.frcmod"); err != nil {
		Te.Fatal(err)
	}
	want := []string{"parmchk2", "-i", "lig_gaff.mol2", "-f", "mol2", "-o", "lig.frcmod"}
	if !reflect.DeepEqual(fake.calls[0], want) {
		Te.Errorf("wrong parmchk2 invocation: %v", fake.calls[0])
	}
	fake.results = []*Result{{Success: false, Status: 1}}
	if err := NewParmchk(fake).Run("lig_gaff.mol2", "lig.frcmod"); err == nil {
		Te.Errorf("a failed parmchk2 run must be an error")
	}
}

func TestExecRunnerExitStatus(Te *testing.T) {
	var r ExecRunner
	res, err := r.Run("false")
	if err != nil {
		Te.Fatal(err)
	}
	if res.Success || res.Status != 1 {
		Te.Errorf("wrong result for false: %+v", res)
	}
	if _, err := r.Run("ffgen-no-such-program"); err == nil {
		Te.Errorf("expected an invocation error for a missing program")
	}
}

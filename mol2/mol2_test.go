/*
 * mol2_test.go, part of ffgen
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

package mol2

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const hemeFragment = `@<TRIPOS>MOLECULE
HEM
5 4 1
SMALL
USER_CHARGES
@<TRIPOS>ATOM
      1 FE1       0.0000    0.0000    0.0000 Fe        1 HEM      2.0000
      2 NA        1.9000    0.0000    0.0000 N.ar      1 HEM     -0.5000
      3 NB        0.0000    1.9000    0.0000 N.ar      1 HEM     -0.5000
      4 C1A       2.8000    1.0000    0.0000 C.ar      1 HEM      0.1000
      5 HAA       3.8000    1.0000    0.0000 H         1 HEM      0.1000
@<TRIPOS>BOND
     1    1    2 1
     2    1    3 1
     3    2    4 ar
     4    4    5 1
`

const organicFragment = `@<TRIPOS>MOLECULE
LIG
3 2 1
SMALL
USER_CHARGES
@<TRIPOS>ATOM
      1 O1        0.0000    0.0000    0.0000 O.3       1 LIG     -0.8340
      2 H1        0.9572    0.0000    0.0000 H         1 LIG      0.4170
      3 H2       -0.2400    0.9266    0.0000 H         1 LIG      0.4170
@<TRIPOS>BOND
     1    1    2 1
     2    1    3 1
`

func TestHasMetalReader(Te *testing.T) {
	if !HasMetalReader(strings.NewReader(hemeFragment)) {
		Te.Errorf("missed the iron in the heme fragment")
	}
	if HasMetalReader(strings.NewReader(organicFragment)) {
		Te.Errorf("found a metal in a water-like organic")
	}
	if HasMetalReader(strings.NewReader("")) {
		Te.Errorf("found a metal in an empty file")
	}
}

//An alpha-carbon named CA is indistinguishable, by name, from calcium, and
//the check deliberately takes the conservative reading.
func TestHasMetalCAName(Te *testing.T) {
	caprotein := `@<TRIPOS>ATOM
      1 CA        0.0000    0.0000    0.0000 C.3       1 ALA      0.0000
`
	if !HasMetalReader(strings.NewReader(caprotein)) {
		Te.Errorf("a CA atom name should count as a (possible) calcium")
	}
}

//Metals mentioned after @<TRIPOS>BOND must not count; neither must rows too
//short to be atom records.
func TestHasMetalScanWindow(Te *testing.T) {
	late := `@<TRIPOS>ATOM
      1 C1        0.0000    0.0000    0.0000 C.3       1 LIG      0.0000
@<TRIPOS>BOND
      1 FE1       0.0000    0.0000    0.0000 Fe        1 LIG      2.0000
`
	if HasMetalReader(strings.NewReader(late)) {
		Te.Errorf("scanned past the BOND marker")
	}
	short := `@<TRIPOS>ATOM
Fe
      1 C1        0.0000    0.0000    0.0000 C.3       1 LIG      0.0000
`
	if HasMetalReader(strings.NewReader(short)) {
		Te.Errorf("a short row was taken for an atom record")
	}
}

func TestHasMetalUnreadable(Te *testing.T) {
	if !HasMetal(filepath.Join(Te.TempDir(), "no_such_file.mol2")) {
		Te.Errorf("an unreadable file must be treated as containing a metal")
	}
}

func TestCanonSymbol(Te *testing.T) {
	cases := map[string]string{
		"FE1":  "Fe",
		"na+":  "Na",
		"K":    "K",
		"ZN":   "Zn",
		"C.ar": "Car", //not an element, and not in the metal set, which is all we need
		"":     "",
	}
	for in, want := range cases {
		if got := canonSymbol(in); got != want {
			Te.Errorf("canonSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenGzip(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "lig.mol2.gz")
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	w := gzip.NewWriter(f)
	if _, err := w.Write([]byte(hemeFragment)); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := f.Close(); err != nil {
		Te.Fatal(err)
	}
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		Te.Fatal(err)
	}
	if err := r.Close(); err != nil {
		Te.Fatal(err)
	}
	if string(got) != hemeFragment {
		Te.Errorf("gzip round trip corrupted the file")
	}
	if !HasMetal(name) {
		Te.Errorf("HasMetal can't see through gzip")
	}
}

/*
 * mol2.go, part of ffgen
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

//Package mol2 contains the little Tripos-MOL2 scanning that ffgen needs.
//It never builds a molecule in memory: the only questions we ask of a MOL2
//file are answered by a single pass over its atom table.

package mol2

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//metals are the element symbols that disqualify a ligand from the GAFF
//(antechamber) fallback. Antechamber assigns organic atom types and AM1-BCC
//charges, neither of which is meaningful for a coordinated metal center.
var metals = map[string]bool{
	"Fe": true,
	"Cu": true,
	"Zn": true,
	"Mg": true,
	"Mn": true,
	"Co": true,
	"Ni": true,
	"Mo": true,
	"W":  true,
	"V":  true,
	"Ca": true,
	"K":  true,
	"Na": true,
}

//Open opens a possibly-compressed MOL2 file. Compression is decided by the
//file name: ".gz" and ".zst" are supported, anything else is read as plain
//text. The caller gets a single ReadCloser that closes both the decompressor
//and the underlying file.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Open"}, true}
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		r, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Open"}, true}
		}
		return &layeredCloser{r: r, closers: []func() error{r.Close, f.Close}}, nil
	case strings.HasSuffix(name, ".zst"):
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Open"}, true}
		}
		closezstd := func() error { r.Close(); return nil }
		return &layeredCloser{r: r, closers: []func() error{closezstd, f.Close}}, nil
	default:
		return f, nil
	}
}

//layeredCloser chains a reader with the Close methods of everything below it.
type layeredCloser struct {
	r       io.Reader
	closers []func() error
}

func (l *layeredCloser) Read(p []byte) (int, error) { return l.r.Read(p) }

func (l *layeredCloser) Close() error {
	var err error
	for _, c := range l.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//HasMetal reports whether any atom in the MOL2 file looks like one of the
//metals above, judging from the atom-name and atom-type columns. Any error
//opening or scanning the file also returns true: an unreadable structure is
//treated as if it contained a metal, so that the caller never applies the
//organic-only fallback to something it couldn't inspect.
func HasMetal(name string) bool {
	f, err := Open(name)
	if err != nil {
		return true
	}
	defer f.Close()
	return HasMetalReader(f)
}

//HasMetalReader is HasMetal on an already-open reader. Scanning starts at the
//@<TRIPOS>ATOM marker and stops at @<TRIPOS>BOND. Atom rows with fewer than
//six whitespace-separated fields are ignored.
func HasMetalReader(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	inatom := false
	for scanner.Scan() {
		ls := strings.TrimSpace(scanner.Text())
		up := strings.ToUpper(ls)
		if strings.HasPrefix(up, "@<TRIPOS>ATOM") {
			inatom = true
			continue
		}
		if strings.HasPrefix(up, "@<TRIPOS>BOND") {
			break
		}
		if !inatom || ls == "" {
			continue
		}
		parts := strings.Fields(ls)
		if len(parts) < 6 {
			continue
		}
		if metals[canonSymbol(parts[1])] || metals[canonSymbol(parts[5])] {
			return true
		}
	}
	if scanner.Err() != nil {
		return true //same conservative treatment as an unreadable file
	}
	return false
}

//canonSymbol strips everything that is not a letter from s and canonicalizes
//the case of what remains ("FE1" -> "Fe", "na+" -> "Na", "K" -> "K").
func canonSymbol(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	el := b.String()
	if len(el) <= 1 {
		return strings.ToUpper(el)
	}
	return strings.ToUpper(el[:1]) + strings.ToLower(el[1:])
}

//Errors

//Error is the error type for the mol2 package. It implements the
//Error() / Decorate() contract used across ffgen.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return "mol2 file " + err.filename + " error: " + err.message
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
)

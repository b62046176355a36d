/*
 * postprocess.go, part of ffgen
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

package top

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//StringReader is anything we can read lines from. bufio.Reader and
//strings.Reader (through bufio) both qualify.
type StringReader interface {
	ReadString(byte) (string, error)
}

//Both passes below are line state machines with three states. Section
//headers are recognized by line prefix on the stripped line, which is what
//the rest of the pipeline writes; full Gromacs-header parsing (comments,
//arbitrary spacing inside the brackets) is deliberately not attempted.
type state int

const (
	outside state = iota //before any section we care about
	kept                 //inside a section that goes to the output
	dropped              //inside a section that does not
)

//moleculeHeaders are the sections that belong in the per-molecule itp, in
//no particular order. Everything else ([ defaults ], [ atomtypes ], and any
//section Gromacs may grow in the future) is stripped by RewriteMolecule.
var moleculeHeaders = []string{
	"[ moleculetype ]",
	"[ atoms ]",
	"[ bonds ]",
	"[ pairs ]",
	"[ angles ]",
	"[ dihedrals ]",
}

var moleculeSet = func() map[string]bool {
	m := make(map[string]bool, len(moleculeHeaders))
	for _, h := range moleculeHeaders {
		m[h] = true
	}
	return m
}()

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

//ExtractForceField copies the leading [ defaults ] section and the entirety
//of the [ atomtypes ] section from src to dst, stopping at the first
//bracketed header that is not [ atomtypes ]. Lines are copied verbatim, so
//running it twice over the same topology gives byte-identical output.
func ExtractForceField(src StringReader, dst io.StringWriter) error {
	st := outside
	for {
		line, err := src.ReadString('\n')
		if line != "" {
			stripped := strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(stripped, "[ defaults ]") || strings.HasPrefix(stripped, "[ atomtypes ]"):
				st = kept
			case st == kept && strings.HasPrefix(stripped, "["):
				//first foreign header ends the forcefield block
				return nil
			}
			if st == kept {
				if _, werr := dst.WriteString(line); werr != nil {
					return fmt.Errorf("top.ExtractForceField: %w", werr)
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("top.ExtractForceField: %w", err)
		}
	}
}

//ExtractForceFieldFile is ExtractForceField from file src to a freshly
//created file dst.
func ExtractForceFieldFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("top.ExtractForceFieldFile: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("top.ExtractForceFieldFile: %w", err)
	}
	defer out.Close()
	return ExtractForceField(bufio.NewReader(in), out)
}

//FilterMolecule returns the lines of src that belong to molecule sections
//(see moleculeHeaders), preserving their relative order. A line enters the
//kept state when its stripped form starts with one of the allowed headers;
//a later bracketed header whose stripped form is not exactly one of them
//leaves it again. The asymmetry (prefix to enter, exact match to stay)
//mirrors the files this pipeline writes, where kept headers appear alone on
//their line.
func FilterMolecule(src StringReader) ([]string, error) {
	lines := make([]string, 0, 100)
	st := outside
	for {
		line, err := src.ReadString('\n')
		if line != "" {
			stripped := strings.TrimSpace(line)
			switch {
			case hasAnyPrefix(stripped, moleculeHeaders):
				st = kept
			case st == kept && strings.HasPrefix(stripped, "[") && !moleculeSet[stripped]:
				st = dropped
			}
			if st == kept {
				lines = append(lines, line)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, fmt.Errorf("top.FilterMolecule: %w", err)
		}
	}
}

//RewriteMolecule rewrites the topology file at path in place, keeping only
//its molecule sections. [ defaults ], [ atomtypes ] and anything else not in
//the allow-list disappear; what remains keeps its original relative order.
func RewriteMolecule(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("top.RewriteMolecule: %w", err)
	}
	lines, err := FilterMolecule(bufio.NewReader(in))
	in.Close()
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("top.RewriteMolecule: %w", err)
	}
	defer out.Close()
	for _, l := range lines {
		if _, err := out.WriteString(l); err != nil {
			return fmt.Errorf("top.RewriteMolecule: %w", err)
		}
	}
	return nil
}

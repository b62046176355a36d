/*
 * master.go, part of ffgen
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
	"fmt"
	"io"
	"os"
)

//Master describes the master topology (topol.top) for a single-ligand
//system: which forcefield file to include, the basenames of the two leaprc
//sources the build used, and the output prefix, which doubles as the
//molecule name. The molecule count is always 1; this tool parameterizes one
//ligand at a time.
type Master struct {
	Prefix     string
	Protein    string //basename of the protein leaprc
	Gaff       string //basename of the gaff leaprc
	ForceField string //generic forcefield include, e.g. toppar/forcefield.itp
}

//WriteTo writes the master topology to w.
func (M *Master) WriteTo(w io.Writer) error {
	_, err := fmt.Fprintf(w, `;;
;; Generated by ffgen
;;
; Include forcefield parameters
#include "%s"
#include "%s"
#include "%s"
#include "%s.itp"

[ system ]
%s ligand in vacuum

[ molecules ]
%s      1
`, M.ForceField, M.Protein, M.Gaff, M.Prefix, M.Prefix, M.Prefix)
	if err != nil {
		return fmt.Errorf("top.Master.WriteTo: %w", err)
	}
	return nil
}

//WriteFile writes the master topology to the file at path, truncating it if
//it exists.
func (M *Master) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("top.Master.WriteFile: %w", err)
	}
	defer f.Close()
	return M.WriteTo(f)
}

/*
 * rst7.go, part of ffgen
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

package amber

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//rst7 coordinate lines are 6F12.7: 12-character fields with no guaranteed
//separator, so they get the same fixed-width treatment as the prmtop.
const rst7FieldWidth = 12

//ReadRestart reads an Amber rst7 (restart/inpcrd) file and returns the
//coordinates as a natoms x 3 matrix, in Angstrom, plus the box lengths
//(also Angstrom, nil if the file has no box). Velocities, if present, are
//read and discarded.
func ReadRestart(path string) (*mat.Dense, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"ReadRestart"}, true}
	}
	defer f.Close()
	coords, box, err := RestartFromReader(bufio.NewReader(f))
	if err != nil {
		return nil, nil, errDecorate(err, "ReadRestart "+path)
	}
	return coords, box, nil
}

//RestartFromReader is ReadRestart on an already-open reader.
func RestartFromReader(r *bufio.Reader) (*mat.Dense, []float64, error) {
	//title line
	if _, err := r.ReadString('\n'); err != nil {
		return nil, nil, Error{WrongFormat + ": no title line", "", []string{"RestartFromReader"}, true}
	}
	//atom count (the line may also carry a time field)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, Error{WrongFormat + ": no atom-count line", "", []string{"RestartFromReader"}, true}
	}
	f := strings.Fields(line)
	if len(f) == 0 {
		return nil, nil, Error{WrongFormat + ": empty atom-count line", "", []string{"RestartFromReader"}, true}
	}
	natoms, err := strconv.Atoi(f[0])
	if err != nil || natoms <= 0 {
		return nil, nil, Error{WrongFormat + ": bad atom count " + f[0], "", []string{"RestartFromReader"}, true}
	}
	vals := make([]float64, 0, natoms*3+6)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			for _, field := range chop(strings.TrimRight(line, "\r\n"), rst7FieldWidth) {
				v, perr := strconv.ParseFloat(field, 64)
				if perr != nil {
					return nil, nil, Error{fmt.Sprintf("%s: can't parse coordinate '%s': %s", WrongFormat, field, perr.Error()), "", []string{"RestartFromReader"}, true}
				}
				vals = append(vals, v)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, Error{err.Error(), "", []string{"RestartFromReader"}, true}
		}
	}
	n3 := natoms * 3
	if len(vals) < n3 {
		return nil, nil, Error{fmt.Sprintf("%s: %d coordinates for %d atoms", WrongFormat, len(vals), natoms), "", []string{"RestartFromReader"}, true}
	}
	coords := mat.NewDense(natoms, 3, vals[:n3])
	//whatever follows the coordinates is velocities (3 per atom), a box
	//line (3 lengths + 3 angles, or just 3 lengths), or both.
	var box []float64
	switch rest := vals[n3:]; len(rest) {
	case 0, n3: //no box, with or without velocities
	case 3, 6:
		box = rest[:3]
	case n3 + 3, n3 + 6:
		box = rest[n3 : n3+3]
	default:
		return nil, nil, Error{fmt.Sprintf("%s: %d trailing values after coordinates", WrongFormat, len(rest)), "", []string{"RestartFromReader"}, true}
	}
	return coords, box, nil
}

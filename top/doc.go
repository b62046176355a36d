/*
 * doc.go, part of ffgen
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

//Package top post-processes the Gromacs topology that ffgen writes for a
//ligand. It splits the bracketed sections of the itp into a forcefield part
//([ defaults ] and [ atomtypes ], which go to a side file) and a molecule
//part (moleculetype, atoms, bonds, pairs, angles, dihedrals, which stay in
//the original file), and writes the master topol.top that includes both.
//Everything here is a pure text scan over section-header lines; no semantic
//validation of the section contents is attempted.
package top

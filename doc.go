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

/*
Package ffgen generates Gromacs topology and coordinate files for a
small-molecule or cofactor ligand, starting from a MOL2 structure and an
FRCMOD parameter file.

The force-field work itself is done by the AMBER tools: tleap builds the
prmtop/rst7 pair, and, when that fails for a metal-free organic ligand,
antechamber and parmchk2 derive generic GAFF parameters for a second tleap
attempt. This package supplies the plumbing around them: input validation,
subprocess invocation with the one built-in fallback, conversion of the
resulting prmtop/rst7 into gro/itp files, and the text-level splitting of
the topology into forcefield and molecule parts.

You need the AmberTools programs installed for any of this to be useful.
Please cite the AmberTools references if you use them.
*/
package ffgen

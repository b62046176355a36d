/*
 * errors.go, part of ffgen
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

import "fmt"

//decorable is the Error()/Decorate() contract implemented by the error
//types of every ffgen package.
type decorable interface {
	Error() string
	Decorate(string) []string
}

//errDecorate asserts that err implements the decorable contract and adds the
//caller's name to it before returning it. Using it with any other error type
//is a programming mistake, and panics.
func errDecorate(err error, caller string) error {
	err2 := err.(decorable)
	err2.Decorate(caller)
	return err2.(error)
}

//Error is the error type for external-tool handling.
type Error struct {
	message  string
	program  string
	filename string
	extra    string //any additional info, such as the tool's stderr or the message of an underlying error
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("leap: %s, program: %s, file: %s %s", err.message, err.program, err.filename, err.extra)
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

//Program returns the external program associated to the error.
func (err Error) Program() string { return err.program }

const (
	ErrNotRunning  = "Couldn't run or start the external program"
	ErrCantInput   = "Can't build input for the external program"
	ErrToolFailure = "The external program finished with an error"
)

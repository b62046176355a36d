/*
 * runner.go, part of ffgen
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
	"bytes"
	"errors"
	"os/exec"
)

//Result holds the outcome of one external-program invocation: both captured
//streams, the exit status, and whether the program exited cleanly. A clean
//exit is necessary but not sufficient for the tools we drive here; each
//handle adds its own output-file checks on top.
type Result struct {
	Stdout  string
	Stderr  string
	Status  int
	Success bool
}

//Runner runs an external program and captures what happened. Every handle in
//this package goes through a Runner, so tests can substitute a fake that
//never touches the system.
type Runner interface {
	Run(name string, args ...string) (*Result, error)
}

//ExecRunner is the Runner used in production. It invokes the program
//directly (no shell) and blocks until it finishes.
type ExecRunner struct{}

//Run invokes name with the given arguments. A non-zero exit status is not an
//error here: it comes back in the Result, with Success false. The returned
//error is reserved for invocation-level failures (program not found,
//fork/exec problems).
func (E ExecRunner) Run(name string, args ...string) (*Result, error) {
	command := exec.Command(name, args...)
	var out, errout bytes.Buffer
	command.Stdout = &out
	command.Stderr = &errout
	err := command.Run()
	res := &Result{Stdout: out.String(), Stderr: errout.String()}
	if err == nil {
		res.Success = true
		return res, nil
	}
	var exiterr *exec.ExitError
	if errors.As(err, &exiterr) {
		res.Status = exiterr.ExitCode()
		return res, nil
	}
	return nil, Error{ErrNotRunning, name, "", err.Error(), []string{"ExecRunner.Run"}, true}
}

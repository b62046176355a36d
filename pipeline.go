/*
 * pipeline.go, part of ffgen
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

package ffgen

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mdprep/ffgen/amber"
	"github.com/mdprep/ffgen/leap"
	"github.com/mdprep/ffgen/mol2"
	"github.com/mdprep/ffgen/top"
)

//Pipeline runs one complete build: validation, the tleap attempt, the
//metal-gated GAFF fallback with a second attempt, and the post-processing
//of the resulting topology. It is strictly sequential; every external tool
//is waited for before the next step.
type Pipeline struct {
	cfg    *Config
	runner leap.Runner
	log    *zap.Logger
}

//New returns a Pipeline over cfg. A nil runner means the real ExecRunner;
//a nil logger means no logging.
func New(cfg *Config, runner leap.Runner, log *zap.Logger) *Pipeline {
	if runner == nil {
		runner = leap.ExecRunner{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, runner: runner, log: log}
}

//Run executes the build. It changes the process working directory to the
//directory of the MOL2 file and leaves it there, so every generated file
//(leap.in, the prmtop/rst7 pair, the gro/itp pair, topol.top and the
//fallback intermediates) lands next to the structure.
func (P *Pipeline) Run() error {
	if err := P.cfg.Validate(); err != nil {
		return err
	}
	abspath, err := filepath.Abs(P.cfg.Mol2)
	if err != nil {
		return fmt.Errorf("can't resolve %s: %w", P.cfg.Mol2, err)
	}
	workdir := filepath.Dir(abspath)
	if err := os.Chdir(workdir); err != nil {
		return fmt.Errorf("can't enter work directory %s: %w", workdir, err)
	}
	mol2fn := filepath.Base(P.cfg.Mol2)
	frcmodfn := filepath.Base(P.cfg.Frcmod)
	prefix := P.cfg.Prefix
	P.log.Info("parameterizing ligand",
		zap.String("mol2", mol2fn),
		zap.String("frcmod", frcmodfn),
		zap.String("prefix", prefix),
		zap.String("workdir", workdir))

	tl := leap.NewTLeap(P.runner)
	//first attempt: protein + lipid + gaff, with the curated inputs
	sources := []string{P.cfg.LeapProtein, P.cfg.LeapLipid, P.cfg.LeapGaff}
	ok, err := P.leapAttempt(tl, prefix, mol2fn, frcmodfn, sources)
	if err != nil {
		return err
	}
	if !ok {
		P.log.Warn("first tleap build failed (protein+lipid+gaff)")
		//antechamber assigns organic types and charges; running it on a
		//metal complex would "succeed" with physically wrong parameters,
		//so a detected (or undecidable) metal center stops the run here.
		if mol2.HasMetal(mol2fn) {
			return fmt.Errorf("detected metal center in %s; skipping the GAFF (antechamber) fallback. Use a curated FRCMOD or MCPB.py for metal complexes", mol2fn)
		}
		gaffmol2 := prefix + "_gaff.mol2"
		gafffrcmod := prefix + ".frcmod"
		P.log.Info("retyping with GAFF", zap.String("out", gaffmol2))
		if err := leap.NewAntechamber(P.runner).Run(mol2fn, gaffmol2); err != nil {
			return fmt.Errorf("GAFF fallback failed during antechamber: %w", err)
		}
		if err := leap.NewParmchk(P.runner).Run(gaffmol2, gafffrcmod); err != nil {
			return fmt.Errorf("GAFF fallback failed during parmchk2: %w", err)
		}
		//the retry drops the lipid source: with GAFF types assigned, the
		//narrower search keeps the lipid library from shadowing anything.
		sources = []string{P.cfg.LeapProtein, P.cfg.LeapGaff}
		ok, err = P.leapAttempt(tl, prefix, gaffmol2, gafffrcmod, sources)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("GAFF fallback tleap build also failed: no %s.prmtop generated", prefix)
		}
	}
	P.log.Info("tleap build succeeded",
		zap.String("prmtop", prefix+".prmtop"),
		zap.String("rst7", prefix+".rst7"))

	return P.postprocess(prefix)
}

//leapAttempt writes a fresh leap script and runs tleap once, forwarding
//whatever the program printed.
func (P *Pipeline) leapAttempt(tl *leap.TLeap, prefix, structure, params string, sources []string) (bool, error) {
	if err := tl.BuildInput(prefix, structure, params, sources); err != nil {
		return false, err
	}
	ok, res, err := tl.Run(prefix)
	if err != nil {
		return false, err
	}
	if res != nil {
		P.log.Info("tleap finished",
			zap.Int("status", res.Status),
			zap.String("stdout", res.Stdout),
			zap.String("stderr", res.Stderr))
	}
	return ok, nil
}

//postprocess converts the prmtop/rst7 pair to gro/itp, writes the master
//topology, and splits the itp into its forcefield and molecule parts.
func (P *Pipeline) postprocess(prefix string) error {
	parm, err := amber.ReadParm(prefix + ".prmtop")
	if err != nil {
		return fmt.Errorf("could not parse %s.prmtop: %w", prefix, err)
	}
	coords, box, err := amber.ReadRestart(prefix + ".rst7")
	if err != nil {
		return fmt.Errorf("could not parse %s.rst7: %w", prefix, err)
	}
	P.log.Info("loaded topology",
		zap.Int("atoms", parm.NAtoms()),
		zap.Int("bonds", parm.NBonds()))

	if err := amber.WriteGroFile(prefix+".gro", parm, coords, box); err != nil {
		return err
	}
	if err := amber.WriteITPFile(prefix+".itp", parm, prefix); err != nil {
		return err
	}
	P.log.Info("wrote coordinate and topology files",
		zap.String("gro", prefix+".gro"),
		zap.String("itp", prefix+".itp"))

	master := &top.Master{
		Prefix:     prefix,
		Protein:    filepath.Base(P.cfg.LeapProtein),
		Gaff:       filepath.Base(P.cfg.LeapGaff),
		ForceField: P.cfg.ForceFieldInclude,
	}
	if err := master.WriteFile("topol.top"); err != nil {
		return err
	}
	if err := top.ExtractForceFieldFile(prefix+".itp", prefix+"_forcefield.itp"); err != nil {
		return err
	}
	if err := top.RewriteMolecule(prefix + ".itp"); err != nil {
		return err
	}
	P.log.Info("post-processed topology",
		zap.String("forcefield", prefix+"_forcefield.itp"),
		zap.String("master", "topol.top"))
	return nil
}

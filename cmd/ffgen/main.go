/*
 * main.go, part of ffgen
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

//The ffgen command. Every input the old interactive script prompted for is
//a flag here, overridable from the environment (FFGEN_*) or a YAML config
//file, so the tool can run unattended.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ffgen "github.com/mdprep/ffgen"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgFile string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "ffgen",
		Short: "Generate Gromacs forcefield files for a cofactor ligand",
		Long: `ffgen drives tleap (with an antechamber/parmchk2 fallback for metal-free
organics) to parameterize a ligand given as MOL2 + FRCMOD, then converts the
resulting Amber prmtop/rst7 pair into <prefix>.gro, <prefix>.itp, a
<prefix>_forcefield.itp and a master topol.top, all written next to the
MOL2 file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, cfgFile)
			if err != nil {
				return err
			}
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()
			return ffgen.New(cfg, nil, log).Run()
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "optional YAML config file")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	f.String("mol2", "", "ligand MOL2 file (e.g. lib/HEM/3ARC_HEM.mol2)")
	f.String("frcmod", "", "ligand FRCMOD file (e.g. lib/HEM/3ARC_HEM.frcmod)")
	f.String("prefix", "", "output prefix (e.g. 3ARC_HEM)")
	f.String("leap-protein", "", "path to leaprc.protein.ff14SB")
	f.String("leap-lipid", "", "path to leaprc.lipid21")
	f.String("leap-gaff", "", "path to leaprc.gaff")
	f.String("forcefield-include", "", "forcefield file referenced from topol.top")
	return cmd
}

//loadConfig builds the ffgen.Config with the usual precedence: flags over
//environment (FFGEN_MOL2 and friends) over the optional config file.
func loadConfig(cmd *cobra.Command, cfgFile string) (*ffgen.Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FFGEN")
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("can't read config file: %w", err)
		}
	}
	flags := map[string]string{
		"mol2":               "mol2",
		"frcmod":             "frcmod",
		"prefix":             "prefix",
		"leap_protein":       "leap-protein",
		"leap_lipid":         "leap-lipid",
		"leap_gaff":          "leap-gaff",
		"forcefield_include": "forcefield-include",
	}
	for key, flag := range flags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}
	cfg := new(ffgen.Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("can't decode configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

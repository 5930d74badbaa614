/*
Copyright © 2021 the UFO authors.
This file is part of UFO.

UFO is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

UFO is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with UFO.  If not, see <http://www.gnu.org/licenses/>.
*/

package ufoutil

import (
	"fmt"
	"os"

	"github.com/erinjones2/ufo"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
)

// Run loads the configured observation file, applies the configured
// filters in their pre- and post-operator passes, and writes the
// filtered store to the output file if one is configured.
func Run(cfg *viper.Viper) error {
	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("ufo: invalid LogLevel: %v", err)
	}
	log := logrus.New()
	log.Level = level

	obsFile := os.ExpandEnv(cfg.GetString("ObsFile"))
	if obsFile == "" {
		return fmt.Errorf("ufo: you need to specify an observation file " +
			`(for example: ObsFile="obs.nc")`)
	}
	outputFile := os.ExpandEnv(cfg.GetString("OutputFile"))

	filters, err := Filters(cfg)
	if err != nil {
		return err
	}

	f, err := os.Open(obsFile)
	if err != nil {
		return fmt.Errorf("ufo: opening observation file: %v", err)
	}
	o, err := ufo.LoadObsSpace(f)
	f.Close()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":      obsFile,
		"locations": o.NLocations(),
		"variables": len(o.VarNames()),
	}).Info("loaded observation space")

	pipeline := ufo.NewPipeline(filters...)
	log.Info("applying pre-pass filters")
	if err := pipeline.PrePass(o); err != nil {
		return err
	}
	// The forward observation operator would run between the passes;
	// this driver only applies filters.
	log.Info("applying post-pass filters")
	if err := pipeline.PostPass(o); err != nil {
		return err
	}

	if outputFile != "" {
		w, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("ufo: creating output file: %v", err)
		}
		err = o.WriteNCF(w)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"file": outputFile}).Info("wrote filtered observation space")
	}
	return nil
}

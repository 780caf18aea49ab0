// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads hwbench run settings from YAML files.
//
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/db47h/hwbench/hwsim"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a bench run.
//
type Config struct {
	// Workers is the number of goroutines updating each circuit. 0 means
	// GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Precision is the duration of one simulation step, e.g. "ns" or "ps".
	Precision string `yaml:"precision"`
	// MaxTime stops a bench once that much simulated time has elapsed, e.g.
	// "10ms". Empty means no limit.
	MaxTime string `yaml:"maxTime,omitempty"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"logLevel"`
	// Benches lists the benches to run. Empty means all.
	Benches []string `yaml:"benches,omitempty"`
}

// Default returns the default configuration.
//
func Default() Config {
	return Config{
		Workers:   1,
		Precision: "ns",
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path on top of the default configuration.
//
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Decode reads a YAML configuration from r on top of the default
// configuration. Unknown keys are rejected.
//
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if buf.Len() > 0 {
		dec := yaml.NewDecoder(&buf)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, errors.Wrap(err, "decode config")
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks all fields.
//
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Errorf("invalid worker count %d", c.Workers)
	}
	if _, err := c.Sim(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Sim returns the simulation settings. The logger is left unset.
//
func (c *Config) Sim() (hwsim.Config, error) {
	var sc hwsim.Config
	p, err := hwsim.ParseUnit(c.Precision)
	if err != nil {
		return sc, errors.Wrap(err, "precision")
	}
	sc.Precision = p
	if c.MaxTime != "" {
		if sc.MaxTime, err = hwsim.ParseTime(c.MaxTime); err != nil {
			return sc, errors.Wrap(err, "maxTime")
		}
		if sc.MaxTime <= 0 {
			return sc, errors.Errorf("maxTime must be positive, got %s", c.MaxTime)
		}
	}
	return sc, nil
}

// Level returns the parsed log level.
//
func (c *Config) Level() (logrus.Level, error) {
	l, err := logrus.ParseLevel(c.LogLevel)
	return l, errors.Wrap(err, "logLevel")
}

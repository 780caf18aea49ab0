// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	hw "github.com/db47h/hwbench/hwsim"
	"github.com/db47h/hwbench/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(`
workers: 4
precision: ps
maxTime: 10 us
logLevel: debug
benches: [dff_basic]
`))
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Workers:   4,
		Precision: "ps",
		MaxTime:   "10 us",
		LogLevel:  "debug",
		Benches:   []string{"dff_basic"},
	}, cfg)

	sc, err := cfg.Sim()
	require.NoError(t, err)
	assert.Equal(t, hw.Picosecond, sc.Precision)
	assert.Equal(t, 10*hw.Time(hw.Microsecond), sc.MaxTime)
	assert.Nil(t, sc.Log)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)
}

func TestDecode_defaults(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Decode(strings.NewReader("workers: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, "ns", cfg.Precision)

	sc, err := cfg.Sim()
	require.NoError(t, err)
	assert.Equal(t, hw.Nanosecond, sc.Precision)
	assert.Equal(t, hw.Time(0), sc.MaxTime)
}

func TestDecode_errors(t *testing.T) {
	td := []struct {
		name string
		in   string
		err  string
	}{
		{"unknown", "foo: 1\n", "field foo not found"},
		{"workers", "workers: -1\n", "invalid worker count -1"},
		{"precision", "precision: ks\n", `precision: invalid time unit "ks"`},
		{"maxTime", "maxTime: soon\n", `maxTime: invalid time "soon"`},
		{"negative", "maxTime: -5ns\n", "maxTime must be positive, got -5ns"},
		{"range", "maxTime: 20000s\n", `maxTime: invalid time "20000s": 20000s out of range`},
		{"level", "logLevel: loud\n", "logLevel: "},
		{"syntax", "workers: [\n", "decode config"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(d.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), d.err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "hwbench.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("precision: us\nlogLevel: warn\n"), 0o644))

	cfg, err := config.Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "us", cfg.Precision)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Workers)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("precision: xs\n"), 0o644))
	_, err = config.Load(bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), bad+": precision"), err.Error())

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

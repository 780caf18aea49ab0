// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/hwbench/bench/acc"
	"github.com/db47h/hwbench/bench/dff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenches(t *testing.T) {
	var names []string
	for _, b := range benches(dff.Benches, acc.Benches).Benches() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"dff_basic", "dff_hold", "acc_sum"}, names)
	assert.Panics(t, func() { benches(dff.Benches, dff.Benches) })
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "hwbench.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workers: 2\nbenches: [dff_basic]\nlogLevel: warn\n"), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("workers: many\n"), 0o644))

	td := []struct {
		name string
		args []string
		code int
	}{
		{"list", []string{"-list"}, 0},
		{"all", nil, 0},
		{"one", []string{"-workers", "0", "dff_hold"}, 0},
		{"acc", []string{"acc_sum", "dff_basic"}, 0},
		{"config", []string{"-config", cfg}, 0},
		{"limit", []string{"-precision", "ns", "-max-time", "10us", "dff_basic"}, 0},
		{"unknown", []string{"nope"}, 1},
		{"timeout", []string{"-max-time", "2us"}, 1},
		{"precision", []string{"-precision", "xx"}, 2},
		{"odd", []string{"-precision", "us", "dff_basic"}, 1},
		{"flag", []string{"-bogus"}, 2},
		{"badconfig", []string{"-config", bad}, 2},
		{"noconfig", []string{"-config", filepath.Join(dir, "none.yaml")}, 2},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			assert.Equal(t, d.code, run(d.args))
		})
	}
}

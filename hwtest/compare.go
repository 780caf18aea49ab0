// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/hwbench/hwsim"
	"github.com/stretchr/testify/require"
)

func connString(in []string, out []string, prefix string) string {
	var b strings.Builder
	for _, n := range in {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	for _, n := range out {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(prefix)
		b.WriteString(n)
	}
	return b.String()
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// Each input vector is held for steps simulation steps before outputs are
// compared. Clock inputs are treated like any other input and toggle randomly,
// which exercises sequential parts as well.
//
func ComparePart(t *testing.T, steps int, part1 hwsim.NewPartFn, part2 hwsim.NewPartFn) {
	t.Helper()

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	ps1, ps2 := part1(""), part2("")
	require.Equal(t, ps1.Inputs, ps2.Inputs, "input pins")
	require.Equal(t, ps1.Outputs, ps2.Outputs, "output pins")

	c, err := hwsim.NewCircuit(0,
		part1(connString(ps1.Inputs, ps1.Outputs, "p1_")),
		part2(connString(ps2.Inputs, ps2.Outputs, "p2_")),
	)
	require.NoError(t, err)
	defer c.Dispose()

	inputs := make([]*hwsim.Signal, len(ps1.Inputs))
	for i, n := range ps1.Inputs {
		inputs[i], err = c.Signal(n)
		require.NoError(t, err)
	}
	outputs := make([][2]*hwsim.Signal, len(ps1.Outputs))
	for i, n := range ps1.Outputs {
		outputs[i][0], err = c.Signal("p1_" + n)
		require.NoError(t, err)
		outputs[i][1], err = c.Signal("p2_" + n)
		require.NoError(t, err)
	}

	check := func(vec []hwsim.Logic) {
		t.Helper()
		for i, in := range inputs {
			in.Set(vec[i])
		}
		for i := 0; i < steps; i++ {
			c.Step()
		}
		for k, o := range outputs {
			if o[0].Value() != o[1].Value() {
				var b strings.Builder
				for i, in := range inputs {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(in.Name())
					b.WriteRune('=')
					b.WriteString(vec[i].String())
				}
				t.Fatalf("seed %d: %s => %s=%s, got %s", seed, b.String(), ps1.Outputs[k], o[0].Value(), o[1].Value())
			}
		}
	}

	vec := make([]hwsim.Logic, len(inputs))
	// all 0, then all 1
	for i := range vec {
		vec[i] = hwsim.L0
	}
	check(vec)
	for i := range vec {
		vec[i] = hwsim.L1
	}
	check(vec)

	iter := len(inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)
	for n := 0; n < iter; n++ {
		for i := range vec {
			vec[i] = hwsim.LogicOf(rnd.Int63()&(1<<62) != 0)
		}
		check(vec)
	}
}

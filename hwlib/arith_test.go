// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hl "github.com/db47h/hwbench/hwlib"
	hw "github.com/db47h/hwbench/hwsim"
	"github.com/db47h/hwbench/hwtest"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHalfAdder(t *testing.T) {
	h, err := hw.Chip("myHalfAdder", "a, b", "s, c",
		hl.Xor("a=a, b=b, out=s"),
		hl.And("a=a, b=b, out=c"),
	)
	require.NoError(t, err)
	hwtest.ComparePart(t, 1, hl.HalfAdder, h)
}

func TestFullAdder(t *testing.T) {
	h, err := hw.Chip("myHalfAdder", "a, b", "s, c",
		hl.Xor("a=a, b=b, out=s"),
		hl.And("a=a, b=b, out=c"),
	)
	require.NoError(t, err)
	adder, err := hw.Chip("myFullAdder", "a, b, cin", "s, cout",
		h("a=a, b=b, s=s0, c=c0"),
		h("a=s0, b=cin, s=s, c=c1"),
		hl.Or("a=c0, b=c1, out=cout"),
	)
	require.NoError(t, err)
	hwtest.ComparePart(t, 3, hl.FullAdder, adder)
}

func TestAdderN(t *testing.T) {
	add4, err := hw.Chip("Adder4", "a[4], b[4]", "out[4], c",
		hl.HalfAdder("a=a[0], b=b[0], s=out[0], c=c0"),
		hl.FullAdder("a=a[1], b=b[1], cin=c0, s=out[1], cout=c1"),
		hl.FullAdder("a=a[2], b=b[2], cin=c1, s=out[2], cout=c2"),
		hl.FullAdder("a=a[3], b=b[3], cin=c2, s=out[3], cout=c"),
	)
	require.NoError(t, err)
	hwtest.ComparePart(t, 4, hl.AdderN(4), add4)
}

func TestAdderN_sum(t *testing.T) {
	c, err := hw.NewCircuit(1, hl.AdderN(8)("a=a, b=b, out=out, c=c"))
	require.NoError(t, err)
	defer c.Dispose()
	a, _ := c.Bus("a")
	b, _ := c.Bus("b")
	out, _ := c.Bus("out")
	carry, _ := c.Signal("c")

	rapid.Check(t, func(t *rapid.T) {
		va := rapid.Uint64Range(0, 255).Draw(t, "a")
		vb := rapid.Uint64Range(0, 255).Draw(t, "b")
		a.SetUint64(va)
		b.SetUint64(vb)
		c.Step()
		v, ok := out.Uint64()
		if !ok || v != (va+vb)&0xff {
			t.Fatalf("%d + %d: got %s", va, vb, out)
		}
		if want := hw.LogicOf(va+vb > 255); carry.Value() != want {
			t.Fatalf("%d + %d: carry %s, expected %s", va, vb, carry.Value(), want)
		}
	})
}

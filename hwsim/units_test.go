// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim_test

import (
	"testing"

	hw "github.com/db47h/hwbench/hwsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_String(t *testing.T) {
	td := []struct {
		t   hw.Time
		exp string
	}{
		{0, "0s"},
		{1, "1fs"},
		{hw.Time(hw.Microsecond), "1us"},
		{5001 * hw.Time(hw.Nanosecond), "5001ns"},
		{1500 * hw.Time(hw.Picosecond), "1500ps"},
		{2 * hw.Time(hw.Second), "2s"},
	}
	for _, d := range td {
		assert.Equal(t, d.exp, d.t.String())
	}
}

func TestParseTime(t *testing.T) {
	v, err := hw.ParseTime("10us")
	require.NoError(t, err)
	assert.Equal(t, 10*hw.Time(hw.Microsecond), v)

	v, err = hw.ParseTime(" 250 ns ")
	require.NoError(t, err)
	assert.Equal(t, 250*hw.Time(hw.Nanosecond), v)

	for _, s := range []string{"", "ns", "10", "10 minutes", "1.5us"} {
		_, err = hw.ParseTime(s)
		assert.Error(t, err, s)
	}

	// largest representable whole seconds
	v, err = hw.ParseTime("9223s")
	require.NoError(t, err)
	assert.Equal(t, 9223*hw.Time(hw.Second), v)

	td := []struct {
		in  string
		err string
	}{
		{"10000s", `invalid time "10000s": 10000s out of range`},
		{"20000s", `invalid time "20000s": 20000s out of range`},
		{"-10000s", `invalid time "-10000s": -10000s out of range`},
		{"9223372036855us", `invalid time "9223372036855us": 9223372036855us out of range`},
	}
	for _, d := range td {
		_, err = hw.ParseTime(d.in)
		assert.EqualError(t, err, d.err)
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range []hw.Unit{hw.Femtosecond, hw.Picosecond, hw.Nanosecond, hw.Microsecond, hw.Millisecond, hw.Second} {
		p, err := hw.ParseUnit(u.String())
		require.NoError(t, err)
		assert.Equal(t, u, p)
	}
	_, err := hw.ParseUnit("h")
	assert.Error(t, err)
}

func TestLogic(t *testing.T) {
	assert.Equal(t, hw.X, hw.Logic(0), "zero value")
	assert.Equal(t, hw.L1, hw.LogicOf(true))
	assert.Equal(t, hw.L0, hw.L1.Not())
	assert.Equal(t, hw.X, hw.X.Not())
	_, ok := hw.X.Bool()
	assert.False(t, ok)
	v, ok := hw.L1.Bool()
	assert.True(t, ok)
	assert.True(t, v)
	for _, l := range []hw.Logic{hw.X, hw.L0, hw.L1} {
		p, err := hw.ParseLogic(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, p)
	}
	_, err := hw.ParseLogic("z")
	assert.Error(t, err)
}

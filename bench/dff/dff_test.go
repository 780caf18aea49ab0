// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package dff_test

import (
	"context"
	"testing"

	"github.com/db47h/hwbench/bench/dff"
	hl "github.com/db47h/hwbench/hwlib"
	hw "github.com/db47h/hwbench/hwsim"
	"github.com/db47h/hwbench/hwtest"
	"github.com/pkg/errors"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// checkpoint returns the simulated time of the i-th check of a scenario: the
// reset cycle ends on the first rising edge at 1001ns, then each check takes
// two clock periods.
func checkpoint(i int) hw.Time {
	return hw.Time(1001+2000*i) * hw.Time(hw.Nanosecond)
}

func TestBasic(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	r := hwtest.RunBench(t, hwtest.Bench{Name: "basic", Build: dff.NewDUT, Body: dff.Basic},
		hwtest.Options{Workers: 1, Sim: hw.Config{Log: log}})
	assert.Equal(t, checkpoint(2), r.SimTime)
	assert.Equal(t, "5001ns", r.SimTime.String())

	e := hook.LastEntry()
	require.NotNil(t, e)
	assert.Equal(t, "All tests passed!", e.Message)
	assert.Equal(t, "main", e.Data["task"])
	assert.Equal(t, "5001ns", e.Data["time"])
	assert.Equal(t, "basic", e.Data["bench"])
}

func TestHold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "n")
		r := hwtest.RunOne(context.Background(),
			hwtest.Bench{Name: "hold", Build: dff.NewDUT, Body: dff.Hold(n)},
			hwtest.Options{Workers: 1})
		if r.Err != nil {
			t.Fatalf("%+v", r.Err)
		}
		if want := checkpoint(n + 2); r.SimTime != want {
			t.Fatalf("ended at %s, expected %s", r.SimTime, want)
		}
	})
}

func TestStuckOutput(t *testing.T) {
	// q is tied to the reset value and d goes nowhere useful.
	stuck := func(workers int) (*hw.Circuit, error) {
		return hw.NewCircuit(workers,
			hl.DFFR("clk=clk, rst=rst, in=false, out=q"),
			hl.Not("in=d, out=nd"),
		)
	}
	for _, body := range []hw.TaskFunc{dff.Basic, dff.Hold(3)} {
		r := hwtest.RunOne(context.Background(), hwtest.Bench{Name: "stuck", Build: stuck, Body: body}, hwtest.Options{})
		require.Error(t, r.Err)
		assert.True(t, hwtest.IsMismatch(r.Err))
		me, ok := r.Err.(*hwtest.MismatchError)
		require.True(t, ok)
		assert.Equal(t, hwtest.MismatchError{Signal: "q", Want: "1", Got: "0", Time: checkpoint(1)}, *me)
		assert.EqualError(t, r.Err, "expected q=1, got q=0 at 3001ns")
	}
}

func TestInverted(t *testing.T) {
	inv := func(workers int) (*hw.Circuit, error) {
		return hw.NewCircuit(workers,
			hl.DFFR("clk=clk, rst=rst, in=d, out=nq"),
			hl.Not("in=nq, out=q"),
		)
	}
	r := hwtest.RunOne(context.Background(), hwtest.Bench{Name: "inv", Build: inv, Body: dff.Basic}, hwtest.Options{})
	me, ok := r.Err.(*hwtest.MismatchError)
	require.True(t, ok, "%+v", r.Err)
	assert.Equal(t, "1", me.Want)
	assert.Equal(t, "0", me.Got)
}

func TestMissingSignal(t *testing.T) {
	noRst := func(workers int) (*hw.Circuit, error) {
		return hw.NewCircuit(workers, hl.DFF("clk=clk, in=d, out=q"))
	}
	r := hwtest.RunOne(context.Background(), hwtest.Bench{Name: "norst", Build: noRst, Body: dff.Basic}, hwtest.Options{})
	require.Error(t, r.Err)
	assert.Equal(t, hw.ErrUnknownSignal, errors.Cause(r.Err))
	assert.False(t, hwtest.IsMismatch(r.Err))
	assert.Equal(t, hw.Time(0), r.SimTime)
}

func TestBind(t *testing.T) {
	c, err := dff.NewDUT(1)
	require.NoError(t, err)
	defer c.Dispose()
	assert.Equal(t, []string{dff.Clk, dff.D, dff.Q, dff.Rst}, c.Signals())

	dut, err := dff.Bind(c)
	require.NoError(t, err)
	assert.Equal(t, dff.Clk, dut.Clk.Name())
	assert.Equal(t, dff.Rst, dut.Rst.Name())
	assert.Equal(t, dff.D, dut.D.Name())
	assert.Equal(t, dff.Q, dut.Q.Name())
}

func TestBenches(t *testing.T) {
	rs, err := dff.Benches.Run(context.Background(), hwtest.Options{Workers: 1})
	require.NoError(t, err)
	require.Len(t, rs, 2)
	for _, r := range rs {
		assert.True(t, r.Passed(), "%s: %v", r.Name, r.Err)
	}
	assert.Equal(t, "dff_basic", rs[0].Name)
	assert.Equal(t, "dff_hold", rs[1].Name)
	assert.Equal(t, checkpoint(10), rs[1].SimTime)
}

func TestBasic_timeout(t *testing.T) {
	r := hwtest.RunOne(context.Background(),
		hwtest.Bench{Name: "basic", Build: dff.NewDUT, Body: dff.Basic},
		hwtest.Options{Sim: hw.Config{MaxTime: 2 * hw.Time(hw.Microsecond)}})
	assert.Equal(t, hw.ErrTimeout, errors.Cause(r.Err))
	assert.False(t, hwtest.IsMismatch(r.Err))
}

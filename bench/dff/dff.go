// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package dff is a testbench for a D flip-flop with synchronous reset.
//
// The design under test exposes four top level signals: clk, rst, d and q.
// q must hold the value of d sampled at the previous rising edge of clk once
// rst has been released.
//
package dff

import (
	"github.com/db47h/hwbench/hwlib"
	"github.com/db47h/hwbench/hwsim"
	"github.com/db47h/hwbench/hwtest"
	"github.com/pkg/errors"
)

// Signal names of the design under test.
const (
	Clk = "clk"
	Rst = "rst"
	D   = "d"
	Q   = "q"
)

// ClockPeriod is the period of the bench clock, in ClockUnit.
const (
	ClockPeriod = 1
	ClockUnit   = hwsim.Microsecond
)

// NewDUT builds the design under test.
//
func NewDUT(workers int) (*hwsim.Circuit, error) {
	return hwsim.NewCircuit(workers, hwlib.DFFR("clk=clk, rst=rst, in=d, out=q"))
}

// DUT holds the signal handles of the design under test.
//
type DUT struct {
	Clk, Rst, D, Q *hwsim.Signal
}

// Bind looks up the DUT signals in c. Lookup errors are wrapped; their cause
// is hwsim.ErrUnknownSignal, as returned by Circuit.Signal.
//
func Bind(c *hwsim.Circuit) (*DUT, error) {
	var (
		dut DUT
		err error
	)
	for _, s := range []struct {
		name string
		h    **hwsim.Signal
	}{{Clk, &dut.Clk}, {Rst, &dut.Rst}, {D, &dut.D}, {Q, &dut.Q}} {
		if *s.h, err = c.Signal(s.name); err != nil {
			return nil, errors.Wrap(err, "bind DUT")
		}
	}
	return &dut, nil
}

// Basic is the basic DFF scenario: start the clock, reset for one cycle, then
// check that q follows d = 1 and d = 0 one cycle after the rising edge that
// samples them.
//
func Basic(t *hwsim.Task) error {
	dut, err := start(t)
	if err != nil {
		return err
	}
	if err = apply(t, dut, hwsim.L1); err != nil {
		return err
	}
	if err = apply(t, dut, hwsim.L0); err != nil {
		return err
	}
	t.Log().Info("All tests passed!")
	return nil
}

// Hold returns a scenario that runs Basic's sequence, then holds d at 0 for n
// more checkpoints, expecting q to stay at 0.
//
func Hold(n int) hwsim.TaskFunc {
	return func(t *hwsim.Task) error {
		dut, err := start(t)
		if err != nil {
			return err
		}
		if err = apply(t, dut, hwsim.L1); err != nil {
			return err
		}
		for i := 0; i <= n; i++ {
			if err = apply(t, dut, hwsim.L0); err != nil {
				return errors.Wrapf(err, "hold %d", i)
			}
		}
		t.Log().WithField("cycles", n).Info("q stable under constant input")
		return nil
	}
}

// start binds the DUT, starts the clock and applies reset for one cycle.
//
func start(t *hwsim.Task) (*DUT, error) {
	dut, err := Bind(t.Sim().Circuit())
	if err != nil {
		return nil, err
	}
	t.Start(hwsim.Clock(dut.Clk, ClockPeriod, ClockUnit))

	dut.Rst.Set(hwsim.L1)
	dut.D.Set(hwsim.L0)
	if err = t.ClockCycles(dut.Clk, 1); err != nil {
		return nil, err
	}
	dut.Rst.Set(hwsim.L0)
	return dut, nil
}

// apply drives d with v and checks q one full cycle after the next rising
// edge. q is never sampled in the step of the edge itself.
//
func apply(t *hwsim.Task, dut *DUT, v hwsim.Logic) error {
	dut.D.Set(v)
	if err := t.RisingEdge(dut.Clk); err != nil {
		return err
	}
	if err := t.ClockCycles(dut.Clk, 1); err != nil {
		return err
	}
	return hwtest.Expect(t, dut.Q, v)
}

// Benches holds the DFF testbenches.
//
var Benches = &hwtest.Suite{}

func init() {
	Benches.MustAdd(hwtest.Bench{
		Name:  "dff_basic",
		Doc:   "reset, then d=1 and d=0 each checked one cycle after the sampling edge",
		Build: NewDUT,
		Body:  Basic,
	})
	Benches.MustAdd(hwtest.Bench{
		Name:  "dff_hold",
		Doc:   "d held at 0 for 8 more cycles after dff_basic, q must stay 0",
		Build: NewDUT,
		Body:  Hold(8),
	})
}

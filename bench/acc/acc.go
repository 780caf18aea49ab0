// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package acc is a testbench for an 8 bits accumulator with synchronous
// reset.
//
// The design adds the input bus d to the register acc on each rising edge of
// clk. While rst is high, acc is cleared instead.
//
package acc

import (
	"strconv"

	"github.com/db47h/hwbench/hwlib"
	"github.com/db47h/hwbench/hwsim"
	"github.com/db47h/hwbench/hwtest"
	"github.com/pkg/errors"
)

// Bits is the accumulator width.
const Bits = 8

// Signal and bus names of the design under test.
const (
	Clk = "clk"
	Rst = "rst"
	D   = "d"
	Acc = "acc"
)

// ClockPeriod is the period of the bench clock, in ClockUnit.
const (
	ClockPeriod = 1
	ClockUnit   = hwsim.Microsecond
)

// NewDUT builds the design under test: an adder feeding a register through
// a row of AND gates that implement the reset.
//
func NewDUT(workers int) (*hwsim.Circuit, error) {
	parts := []hwsim.Part{
		hwlib.AdderN(Bits)("a=acc, b=d, out=sum, c=carry"),
		hwlib.Not("in=rst, out=nrst"),
		hwlib.DFFN(Bits)("clk=clk, in=next, out=acc"),
	}
	for i := 0; i < Bits; i++ {
		n := strconv.Itoa(i)
		parts = append(parts, hwlib.And("a=sum["+n+"], b=nrst, out=next["+n+"]"))
	}
	return hwsim.NewCircuit(workers, parts...)
}

// DUT holds the signal handles of the design under test.
//
type DUT struct {
	Clk, Rst *hwsim.Signal
	D, Acc   *hwsim.Bus
}

// Bind looks up the DUT signals in c. Lookup errors are wrapped; their cause
// is hwsim.ErrUnknownSignal.
//
func Bind(c *hwsim.Circuit) (*DUT, error) {
	var (
		dut DUT
		err error
	)
	if dut.Clk, err = c.Signal(Clk); err != nil {
		return nil, errors.Wrap(err, "bind DUT")
	}
	if dut.Rst, err = c.Signal(Rst); err != nil {
		return nil, errors.Wrap(err, "bind DUT")
	}
	if dut.D, err = c.Bus(D); err != nil {
		return nil, errors.Wrap(err, "bind DUT")
	}
	if dut.Acc, err = c.Bus(Acc); err != nil {
		return nil, errors.Wrap(err, "bind DUT")
	}
	if dut.D.Width() != Bits || dut.Acc.Width() != Bits {
		return nil, errors.Errorf("bind DUT: expected %d bits buses, got d[%d], acc[%d]", Bits, dut.D.Width(), dut.Acc.Width())
	}
	return &dut, nil
}

// Sum returns a scenario that resets the accumulator, then adds each value
// in turn. acc is checked between the rising edge that loads it and the next
// one, on the falling edge of clk.
//
func Sum(vs ...uint64) hwsim.TaskFunc {
	return func(t *hwsim.Task) error {
		dut, err := Bind(t.Sim().Circuit())
		if err != nil {
			return err
		}
		t.Start(hwsim.Clock(dut.Clk, ClockPeriod, ClockUnit))

		dut.Rst.Set(hwsim.L1)
		dut.D.SetUint64(0)
		if err = t.ClockCycles(dut.Clk, 1); err != nil {
			return err
		}
		dut.Rst.Set(hwsim.L0)
		if err = t.FallingEdge(dut.Clk); err != nil {
			return err
		}
		if err = hwtest.ExpectBus(t, dut.Acc, 0); err != nil {
			return errors.Wrap(err, "reset")
		}

		var want uint64
		for i, v := range vs {
			dut.D.SetUint64(v)
			if err = t.RisingEdge(dut.Clk); err != nil {
				return err
			}
			if err = t.FallingEdge(dut.Clk); err != nil {
				return err
			}
			want = (want + v) & (1<<Bits - 1)
			if err = hwtest.ExpectBus(t, dut.Acc, want); err != nil {
				return errors.Wrapf(err, "add #%d", i)
			}
		}
		t.Log().WithField("sum", want).Info("accumulator ok")
		return nil
	}
}

// Benches holds the accumulator testbenches.
//
var Benches = &hwtest.Suite{}

func init() {
	Benches.MustAdd(hwtest.Bench{
		Name:  "acc_sum",
		Doc:   "reset, then add 1, 2, 200, 100 and 255 modulo 256",
		Build: NewDUT,
		Body:  Sum(1, 2, 200, 100, 255),
	})
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/hwbench/hwsim"
)

// edgeDetector reports 0 to 1 transitions of a clock pin.
type edgeDetector struct {
	clk  int
	prev hwsim.Logic
}

func (e *edgeDetector) rising(c *hwsim.Circuit) bool {
	cur := c.Get(e.clk)
	r := e.prev == hwsim.L0 && cur == hwsim.L1
	e.prev = cur
	return r
}

// DFF returns a clocked data flip flop.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
// out is X until the first rising edge of clk.
//
func DFF(w string) hwsim.Part { return dff.NewPart(w) }

var dff = hwsim.PartSpec{
	Name:    "DFF",
	Inputs:  []string{pClk, pIn},
	Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		e := edgeDetector{clk: s.Pin(pClk)}
		var cur hwsim.Logic
		return []hwsim.Component{
			func(c *hwsim.Circuit) {
				if e.rising(c) {
					cur = c.Get(in)
				}
				c.Set(out, cur)
			}}
	},
}

// DFFR returns a clocked data flip flop with synchronous, active high reset.
//
//	Inputs: clk, rst, in
//	Outputs: out
//	Function: at each rising edge of clk: if rst { out = 0 } else { out = in }
//
// An undefined rst sampled on a rising edge sets out to X.
//
func DFFR(w string) hwsim.Part { return dffrSpec.NewPart(w) }

var dffrSpec = hwsim.MakePart((*dffr)(nil))

type dffr struct {
	Clk int `hw:"in"`
	Rst int `hw:"in"`
	In  int `hw:"in"`
	Out int `hw:"out"`

	prev hwsim.Logic
	cur  hwsim.Logic
}

func (d *dffr) Update(c *hwsim.Circuit) {
	clk := c.Get(d.Clk)
	if d.prev == hwsim.L0 && clk == hwsim.L1 {
		switch c.Get(d.Rst) {
		case hwsim.L1:
			d.cur = hwsim.L0
		case hwsim.L0:
			d.cur = c.Get(d.In)
		default:
			d.cur = hwsim.X
		}
	}
	d.prev = clk
	c.Set(d.Out, d.cur)
}

// DFFN returns an n-bits register with a shared clock.
//
//	Inputs: clk, in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i](t) = in[i](t-1) }
//
func DFFN(bits int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "DFF" + strconv.Itoa(bits),
		Inputs:  append([]string{pClk}, bus(bits, pIn)...),
		Outputs: bus(bits, pOut),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			ins, outs := s.Bus(pIn, bits), s.Bus(pOut, bits)
			e := edgeDetector{clk: s.Pin(pClk)}
			cur := make([]hwsim.Logic, bits)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					if e.rising(c) {
						for i, n := range ins {
							cur[i] = c.Get(n)
						}
					}
					for i, n := range outs {
						c.Set(n, cur[i])
					}
				}}
		}}).NewPart
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/hwbench/hwsim"
)

// sum returns the sum and carry bits of a + b + cin.
func sum(a, b, cin hwsim.Logic) (s, cout hwsim.Logic) {
	ab := xor(a, b)
	return xor(ab, cin), or(and(a, b), and(ab, cin))
}

var hAdder = &hwsim.PartSpec{
	Name:    "HALFADDER",
	Inputs:  []string{pA, pB},
	Outputs: []string{"s", "c"},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		a, b := s.Pin(pA), s.Pin(pB)
		sp, cp := s.Pin("s"), s.Pin("c")
		return []hwsim.Component{
			func(c *hwsim.Circuit) {
				va, vb := c.Get(a), c.Get(b)
				c.Set(sp, xor(va, vb))
				c.Set(cp, and(va, vb))
			}}
	}}

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(w string) hwsim.Part { return hAdder.NewPart(w) }

var fAdder = &hwsim.PartSpec{
	Name:    "FULLADDER",
	Inputs:  []string{pA, pB, "cin"},
	Outputs: []string{"s", "cout"},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		a, b, cin := s.Pin(pA), s.Pin(pB), s.Pin("cin")
		sp, cout := s.Pin("s"), s.Pin("cout")
		return []hwsim.Component{
			func(c *hwsim.Circuit) {
				vs, vc := sum(c.Get(a), c.Get(b), c.Get(cin))
				c.Set(sp, vs)
				c.Set(cout, vc)
			}}
	}}

// FullAdder returns a full adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(w string) hwsim.Part { return fAdder.NewPart(w) }

// AdderN returns a N-bits adder.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//
func AdderN(bits int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "ADDER" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: append(bus(bits, pOut), "c"),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			a, b := s.Bus(pA, bits), s.Bus(pB, bits)
			out, cout := s.Bus(pOut, bits), s.Pin("c")
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					cc := hwsim.L0
					for i, o := range out {
						var v hwsim.Logic
						v, cc = sum(c.Get(a[i]), c.Get(b[i]), cc)
						c.Set(o, v)
					}
					c.Set(cout, cc)
				}}
		}}).NewPart
}

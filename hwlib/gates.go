// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for hwsim.
//
// All parts use three-valued logic: an undefined (X) input yields an X output
// unless another input forces the result.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/hwbench/hwsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
	pClk = "clk"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = n + "[" + strconv.Itoa(j) + "]"
		}
	}
	return b
}

func and(a, b hwsim.Logic) hwsim.Logic {
	if a == hwsim.L0 || b == hwsim.L0 {
		return hwsim.L0
	}
	if a == hwsim.L1 && b == hwsim.L1 {
		return hwsim.L1
	}
	return hwsim.X
}

func or(a, b hwsim.Logic) hwsim.Logic {
	if a == hwsim.L1 || b == hwsim.L1 {
		return hwsim.L1
	}
	if a == hwsim.L0 && b == hwsim.L0 {
		return hwsim.L0
	}
	return hwsim.X
}

func xor(a, b hwsim.Logic) hwsim.Logic {
	if a == hwsim.X || b == hwsim.X {
		return hwsim.X
	}
	return hwsim.LogicOf(a != b)
}

var notGate = hwsim.PartSpec{Name: "NOT", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []hwsim.Component{
			func(c *hwsim.Circuit) { c.Set(out, c.Get(in).Not()) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) hwsim.Part {
	return notGate.NewPart(w)
}

// other gates
type gate func(a, b hwsim.Logic) hwsim.Logic

func (g gate) mount(s *hwsim.Socket) []hwsim.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []hwsim.Component{
		func(c *hwsim.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn gate) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  []string{pA, pB},
		Outputs: []string{pOut},
		Mount:   fn.mount,
	}
}

var (
	andGate  = newGate("AND", and)
	nandGate = newGate("NAND", func(a, b hwsim.Logic) hwsim.Logic { return and(a, b).Not() })
	orGate   = newGate("OR", or)
	norGate  = newGate("NOR", func(a, b hwsim.Logic) hwsim.Logic { return or(a, b).Not() })
	xorGate  = newGate("XOR", xor)
	xnorGate = newGate("XNOR", func(a, b hwsim.Logic) hwsim.Logic { return xor(a, b).Not() })
)

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) hwsim.Part { return andGate.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) hwsim.Part { return nandGate.NewPart(w) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) hwsim.Part { return orGate.NewPart(w) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor(w string) hwsim.Part { return norGate.NewPart(w) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
//
func Xor(w string) hwsim.Part { return xorGate.NewPart(w) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor(w string) hwsim.Part { return xnorGate.NewPart(w) }

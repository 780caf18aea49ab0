// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"github.com/pkg/errors"
)

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := hwsim.Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := hwsim.Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := IO(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": inputs")
	}
	outs, err := IO(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": outputs")
	}
	for _, in := range ins {
		for _, out := range outs {
			if in == out {
				return nil, errors.Errorf("%s: pin %q is both an input and an output", name, in)
			}
		}
	}
	if err = checkWiring(name, ins, outs, parts, false); err != nil {
		return nil, err
	}

	sp := &PartSpec{
		Name:    name,
		Inputs:  ins,
		Outputs: outs,
		Mount: func(s *Socket) []Component {
			var cs []Component
			for _, p := range parts {
				cs = append(cs, s.mount(p)...)
			}
			return cs
		},
	}
	return sp.NewPart, nil
}

// checkWiring makes sure that every wire is driven by at most one output. For
// chips (top == false), every wire read by a part and every chip output must
// also be driven. Top level wires with no driver are circuit inputs.
//
func checkWiring(name string, ins, outs []string, parts []Part, top bool) error {
	drv := make(map[string]string)
	for _, in := range ins {
		drv[in] = name
	}
	for _, p := range parts {
		for _, c := range p.Conns {
			if p.pinType(c.Pin) != typeOutput {
				continue
			}
			if isConstant(c.Wire) {
				return errors.Errorf("%s: output pin %s.%s connected to constant %q", name, p.Name, c.Pin, c.Wire)
			}
			if d, ok := drv[c.Wire]; ok {
				if d == name {
					return errors.Errorf("%s: output pin %s.%s drives chip input %q", name, p.Name, c.Pin, c.Wire)
				}
				return errors.Errorf("%s: wire %q driven by both %s and %s.%s", name, c.Wire, d, p.Name, c.Pin)
			}
			drv[c.Wire] = p.Name + "." + c.Pin
		}
	}
	if top {
		return nil
	}
	for _, out := range outs {
		if _, ok := drv[out]; !ok {
			return errors.Errorf("%s: output pin %q not connected to any part output", name, out)
		}
	}
	for _, p := range parts {
		for _, c := range p.Conns {
			if p.pinType(c.Pin) != typeInput || isConstant(c.Wire) {
				continue
			}
			if _, ok := drv[c.Wire]; !ok {
				return errors.Errorf("%s: pin %s.%s connected to undriven wire %q", name, p.Name, c.Pin, c.Wire)
			}
		}
	}
	return nil
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strings"

	"github.com/pkg/errors"
)

// A Component is an updatable element in a circuit. It is called once per
// simulation step, reads the current wire states with Circuit.Get and writes
// the next ones with Circuit.Set.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "Not",
//		Inputs: []string{"in"},
//		Outputs: []string{"out"},
//		Mount: func (s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func (c *Circuit) { c.Set(out, c.Get(in).Not()) },
//			}
//		}}
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string
	// Mount function (see MountFn).
	Mount MountFn
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a host
// chip.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
//
// It panics if the connection string is malformed or references pins that p
// does not have.
//
func (p *PartSpec) NewPart(connections string) Part {
	cs, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	cs, err = p.resolve(cs)
	if err != nil {
		panic(errors.Wrap(err, p.Name))
	}
	return Part{p, cs}
}

const (
	typeUnknown = iota
	typeInput
	typeOutput
)

func (p *PartSpec) pinType(name string) int {
	for _, n := range p.Inputs {
		if n == name {
			return typeInput
		}
	}
	for _, n := range p.Outputs {
		if n == name {
			return typeOutput
		}
	}
	return typeUnknown
}

// busWidth returns the width of bus name in p, 0 if no such bus.
//
func (p *PartSpec) busWidth(name string) int {
	n := 0
	for p.pinType(BusPinName(name, n)) != typeUnknown {
		n++
	}
	return n
}

// resolve expands bare bus names and checks pin names.
//
func (p *PartSpec) resolve(cs []Connection) ([]Connection, error) {
	out := make([]Connection, 0, len(cs))
	seen := make(map[string]bool, len(cs))
	add := func(c Connection) error {
		if seen[c.Pin] {
			return errors.Errorf("pin %q connected more than once", c.Pin)
		}
		seen[c.Pin] = true
		out = append(out, c)
		return nil
	}
	for _, c := range cs {
		if p.pinType(c.Pin) != typeUnknown {
			if err := add(c); err != nil {
				return nil, err
			}
			continue
		}
		w := p.busWidth(c.Pin)
		if w == 0 {
			return nil, errors.Errorf("invalid pin name %q", c.Pin)
		}
		if strings.ContainsRune(c.Wire, '[') {
			return nil, errors.Errorf("bus %q must be connected to a bus name or constant, got %q", c.Pin, c.Wire)
		}
		for i := 0; i < w; i++ {
			wire := c.Wire
			if !isConstant(wire) {
				wire = BusPinName(wire, i)
			}
			if err := add(Connection{BusPinName(c.Pin, i), wire}); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

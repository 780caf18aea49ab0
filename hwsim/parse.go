// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"

	"github.com/db47h/hwbench/internal/hdl"
	"github.com/pkg/errors"
)

// BusPinName returns the name of bit i of bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// IO parses a pin specification string and returns individual pin names,
// expanding bus declarations to individual pin names. For example:
//
//	IO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func IO(spec string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) error {
		if seen[name] {
			return errors.Errorf("in %q: duplicate pin name %q", spec, name)
		}
		seen[name] = true
		out = append(out, name)
		return nil
	}

	p := &hdl.Parser{Input: spec}
	for {
		item, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		switch v := item.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			if err = add(v.Name); err != nil {
				return nil, err
			}
		case hdl.PinIndex:
			if v.Index <= 0 {
				return nil, errors.Errorf("in %q at pos %d: invalid bus size %d", spec, v.Pos+1, v.Index)
			}
			for i := 0; i < v.Index; i++ {
				if err = add(BusPinName(v.Name, i)); err != nil {
					return nil, err
				}
			}
		case hdl.PinRange:
			return nil, errors.Errorf("in %q at pos %d: bus ranges not allowed in I/O specs", spec, v.Pos+1)
		}
	}
}

// A Connection connects the pin of a part to a wire in its host chip.
//
type Connection struct {
	Pin  string
	Wire string
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2". Bus ranges are expanded:
//
//	"a[0..1]=x[2..3]" // a[0]=x[2], a[1]=x[3]
//	"a[0..3]=false"   // all four pins wired to false
//
// Bare bus names like "in=x" are resolved against the part's pins by
// PartSpec.NewPart.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	p := &hdl.Parser{Input: c}
	for {
		item, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return conns, nil
		}
		a, ok := item.(hdl.PinAssignment)
		if !ok {
			return nil, errors.Errorf("in %q: expected pin assignment", c)
		}
		pins, err := expandPins(a.LHS)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", c)
		}
		wires, err := expandPins(a.RHS)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", c)
		}
		switch {
		case len(pins) == len(wires):
			for i := range pins {
				conns = append(conns, Connection{pins[i], wires[i]})
			}
		case len(wires) == 1:
			// many to one
			for i := range pins {
				conns = append(conns, Connection{pins[i], wires[0]})
			}
		default:
			return nil, errors.Errorf("in %q: pin count mismatch in pin mapping %v=%v", c, pins, wires)
		}
	}
}

func expandPins(v interface{}) ([]string, error) {
	switch p := v.(type) {
	case hdl.Pin:
		return []string{p.Name}, nil
	case hdl.PinIndex:
		return []string{BusPinName(p.Name, p.Index)}, nil
	case hdl.PinRange:
		var r []string
		if p.Start <= p.End {
			for i := p.Start; i <= p.End; i++ {
				r = append(r, BusPinName(p.Name, i))
			}
		} else {
			for i := p.Start; i >= p.End; i-- {
				r = append(r, BusPinName(p.Name, i))
			}
		}
		return r, nil
	}
	return nil, errors.Errorf("unexpected pin %v", v)
}

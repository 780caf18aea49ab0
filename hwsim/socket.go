// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// Constant input pin names.
//
const (
	True  = "true"
	False = "false"
	GND   = "false"
)

const (
	cstFalse = iota
	cstTrue
	cstCount
)

func isConstant(name string) bool {
	return name == True || name == False
}

// A Socket maps a part's pin names to pin numbers in a circuit.
//
type Socket struct {
	m map[string]int
	c *Circuit
}

func newSocket(c *Circuit) *Socket {
	return &Socket{
		m: map[string]int{False: cstFalse, True: cstTrue},
		c: c,
	}
}

// mount mounts the given sub-part and allocates new internal pins as necessary.
// Unconnected inputs are wired to False, unconnected outputs to a private pin.
//
func (s *Socket) mount(p Part) []Component {
	sub := newSocket(s.c)
	for _, cn := range p.Conns {
		sub.m[cn.Pin] = s.PinOrNew(cn.Wire)
	}
	for _, in := range p.Inputs {
		if _, ok := sub.m[in]; !ok {
			sub.m[in] = cstFalse
		}
	}
	for _, out := range p.Outputs {
		if _, ok := sub.m[out]; !ok {
			sub.m[out] = s.c.allocPin()
		}
	}
	return p.Mount(sub)
}

// Pin returns the pin number allocated to the given pin name.
// This function panics if the pin does not exist.
//
func (s *Socket) Pin(name string) int {
	n, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return n
}

// PinOrNew returns the pin number allocated to the given pin name.
// If no such pin exists a new one is allocated.
//
func (s *Socket) PinOrNew(name string) int {
	n, ok := s.m[name]
	if !ok {
		n = s.c.allocPin()
		s.m[name] = n
	}
	return n
}

// Bus returns the pin numbers allocated to the given bus name.
// This function panics if the bus does not have the requested size.
//
func (s *Socket) Bus(name string, size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = s.Pin(BusPinName(name, i))
	}
	return out
}

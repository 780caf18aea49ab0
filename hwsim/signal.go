// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// A Signal is a handle on a named top level wire of a Circuit.
//
// Signal methods must only be called from the goroutine driving the circuit,
// or from a running Task.
//
type Signal struct {
	c    *Circuit
	name string
	n    int
}

// Name returns the wire name.
//
func (s *Signal) Name() string { return s.name }

// Value returns the current state of the wire.
//
func (s *Signal) Value() Logic { return s.c.Get(s.n) }

// Set schedules a write of v to the wire. The new value becomes visible at
// the start of the next simulation step.
//
func (s *Signal) Set(v Logic) { s.c.deposit(s.n, v) }

func (s *Signal) String() string { return s.name + "=" + s.Value().String() }

// A Bus is a handle on a group of top level wires name[0], name[1], ...
// Bit 0 is the lsb.
//
type Bus struct {
	c    *Circuit
	name string
	pins []int
}

// Name returns the bus name.
//
func (b *Bus) Name() string { return b.name }

// Width returns the number of wires in the bus.
//
func (b *Bus) Width() int { return len(b.pins) }

// Bit returns a handle on wire i of the bus.
//
func (b *Bus) Bit(i int) *Signal {
	return &Signal{c: b.c, name: BusPinName(b.name, i), n: b.pins[i]}
}

// Uint64 returns the bus value. ok is false if any bit is X.
// Only the 64 low bits are considered.
//
func (b *Bus) Uint64() (v uint64, ok bool) {
	for bit, n := range b.pins {
		if bit >= 64 {
			break
		}
		switch b.c.Get(n) {
		case L1:
			v |= 1 << uint(bit)
		case X:
			return 0, false
		}
	}
	return v, true
}

// SetUint64 schedules a write of v to the bus.
//
func (b *Bus) SetUint64(v uint64) {
	for bit, n := range b.pins {
		b.c.deposit(n, LogicOf(bit < 64 && v&(1<<uint(bit)) != 0))
	}
}

func (b *Bus) String() string {
	buf := make([]byte, len(b.pins))
	for i, n := range b.pins {
		buf[len(buf)-1-i] = b.c.Get(n).String()[0]
	}
	return b.name + "=" + string(buf)
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type deposit struct {
	n int
	v Logic
}

// Circuit is a runnable circuit simulation.
//
type Circuit struct {
	s0    []Logic // wire states frame #0
	s1    []Logic // wire states frame #1
	cs    []Component
	count int    // wire count
	step  uint64 // step counter
	pins  map[string]int
	dep   []deposit

	wc []chan struct{}
	wg sync.WaitGroup
}

// NewCircuit builds a new circuit based on the given parts.
//
// workers is the number of goroutines used to update the state of the Circuit
// each step of the simulation. If less or equal to 0, the value of GOMAXPROCS
// will be used.
//
// Wire names used at the top level become named signals, see Signal and Bus.
// Top level wires not driven by any part are circuit inputs.
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
//
func NewCircuit(workers int, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}
	if err := checkWiring("CIRCUIT", nil, nil, parts, true); err != nil {
		return nil, err
	}

	// new circuit with room for constant value pins.
	c := &Circuit{count: cstCount}
	root := newSocket(c)
	var cs []Component
	for _, p := range parts {
		cs = append(cs, root.mount(p)...)
	}
	c.cs = cs
	c.pins = make(map[string]int, len(root.m))
	for k, n := range root.m {
		if !isConstant(k) {
			c.pins[k] = n
		}
	}
	c.s0 = make([]Logic, c.count)
	c.s1 = make([]Logic, c.count)
	// init constant pins
	c.s0[cstFalse], c.s1[cstFalse] = L0, L0
	c.s0[cstTrue], c.s1[cstTrue] = L1, L1

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 0 {
		workers = 1
	}
	for len(cs) > 0 {
		size := len(cs) / workers
		if size*workers < len(cs) {
			size++
		}
		wc := make(chan struct{}, 1)
		c.wc = append(c.wc, wc)
		go worker(c, cs[:size], wc)
		cs = cs[size:]
	}

	return c, nil
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
//
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
	c.wc = nil
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for {
		_, ok := <-wc
		if !ok {
			c.wg.Done()
			return
		}
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
}

// allocPin allocates a pin and returns its number.
//
func (c *Circuit) allocPin() int {
	cnt := c.count
	c.count++
	return cnt
}

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint64 {
	return c.step
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Get(n int) Logic {
	return c.s0[n]
}

// Set sets the state s of pin n for the next step. The value of n should be
// obtained in a MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Set(n int, s Logic) {
	c.s1[n] = s
}

// deposit schedules a write to pin n, applied at the start of the next step.
//
func (c *Circuit) deposit(n int, v Logic) {
	c.dep = append(c.dep, deposit{n, v})
}

// Step advances the simulation by one step.
//
// Pending signal writes are applied to both frames first so that every
// component sees them and undriven wires keep their value.
//
func (c *Circuit) Step() {
	for _, d := range c.dep {
		c.s0[d.n] = d.v
		c.s1[d.n] = d.v
	}
	c.dep = c.dep[:0]

	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}
	c.wg.Wait()

	c.step++
	c.s0, c.s1 = c.s1, c.s0
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }

// Signals returns the sorted names of all top level wires.
//
func (c *Circuit) Signals() []string {
	names := make([]string, 0, len(c.pins))
	for k := range c.pins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Signal returns a handle on the top level wire name. The returned error wraps
// ErrUnknownSignal if there is no such wire.
//
func (c *Circuit) Signal(name string) (*Signal, error) {
	n, ok := c.pins[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSignal, "%q", name)
	}
	return &Signal{c: c, name: name, n: n}, nil
}

// Bus returns a handle on the top level bus name, i.e. wires name[0],
// name[1], ... The returned error wraps ErrUnknownSignal if name[0] does not
// exist.
//
func (c *Circuit) Bus(name string) (*Bus, error) {
	if strings.ContainsRune(name, '[') {
		return nil, errors.Errorf("invalid bus name %q", name)
	}
	var pins []int
	for i := 0; ; i++ {
		n, ok := c.pins[BusPinName(name, i)]
		if !ok {
			break
		}
		pins = append(pins, n)
	}
	if len(pins) == 0 {
		return nil, errors.Wrapf(ErrUnknownSignal, "bus %q", name)
	}
	return &Bus{c: c, name: name, pins: pins}, nil
}

/*
Package hwsim provides a naive cycle simulator using Go as a hardware
description language, and a cooperative scheduler to write testbenches
against it.

Parts are composed with Chip and mounted on a Circuit. Every wire name used at
the top level becomes a Signal (or a Bus) that testbenches can sample and
drive:

	c, err := hwsim.NewCircuit(0, hwlib.DFFR("clk=clk, rst=rst, in=d, out=q"))
	if err != nil {
		// handle error
	}
	defer c.Dispose()

A Sim runs tasks against the circuit. Tasks suspend on triggers (RisingEdge,
FallingEdge, ClockCycles, Timer); when all of them are suspended, the circuit
is stepped once and the tasks whose trigger fired are resumed. The duration of
one step is the simulation precision.

	err = hwsim.NewSim(c, hwsim.Config{}).Run(ctx, func(t *hwsim.Task) error {
		clk, _ := c.Signal("clk")
		t.Start(hwsim.Clock(clk, 10, hwsim.Nanosecond))
		return t.ClockCycles(clk, 4)
	})

Values written to a signal by a task are applied at the start of the next
step and persist until overwritten, unless the wire is driven by a part
output.
*/
package hwsim

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "github.com/pkg/errors"

var (
	// ErrUnknownSignal is returned by Circuit.Signal and Circuit.Bus for
	// names that are not top level wires.
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrSessionEnded is returned by Task triggers once the session a task
	// belongs to has finished.
	ErrSessionEnded = errors.New("simulation session ended")

	// ErrTimeout is returned by Sim.Run when the simulation time limit is
	// reached before the main task returns.
	ErrTimeout = errors.New("simulation time limit reached")
)

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits: checkpoint
// assertions for testbench tasks, a registry of runnable testbenches and part
// comparison.
//
package hwtest

import (
	"fmt"
	"strconv"

	"github.com/db47h/hwbench/hwsim"
	"github.com/pkg/errors"
)

// MismatchError reports a signal whose observed value differs from the
// expected one at a checkpoint. It is the only design level failure of a
// testbench; any other error is an infrastructure failure.
//
type MismatchError struct {
	Signal string
	Want   string
	Got    string
	Time   hwsim.Time
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s=%s, got %s=%s at %s", e.Signal, e.Want, e.Signal, e.Got, e.Time)
}

// IsMismatch returns true if the cause of err is a *MismatchError.
//
func IsMismatch(err error) bool {
	_, ok := errors.Cause(err).(*MismatchError)
	return ok
}

// Expect checks that sig currently holds want. X never matches.
//
func Expect(t *hwsim.Task, sig *hwsim.Signal, want hwsim.Logic) error {
	got := sig.Value()
	if got == want && want != hwsim.X {
		return nil
	}
	return &MismatchError{
		Signal: sig.Name(),
		Want:   want.String(),
		Got:    got.String(),
		Time:   t.Now(),
	}
}

// ExpectBus checks that bus b currently holds want. A bus with any X bit
// never matches.
//
func ExpectBus(t *hwsim.Task, b *hwsim.Bus, want uint64) error {
	got, ok := b.Uint64()
	if ok && got == want {
		return nil
	}
	g := b.String()
	return &MismatchError{
		Signal: b.Name(),
		Want:   strconv.FormatUint(want, 10),
		Got:    g[len(b.Name())+1:],
		Time:   t.Now(),
	}
}

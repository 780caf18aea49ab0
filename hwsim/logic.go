// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "github.com/pkg/errors"

// Logic is the state of a single wire.
//
// The zero value is X: wires that have never been driven are undefined.
//
type Logic uint8

// Logic values.
//
const (
	X Logic = iota
	L0
	L1
)

// LogicOf converts a bool to L0 or L1.
//
func LogicOf(b bool) Logic {
	if b {
		return L1
	}
	return L0
}

// Bool returns the boolean value of l. ok is false if l is X.
//
func (l Logic) Bool() (v bool, ok bool) {
	switch l {
	case L0:
		return false, true
	case L1:
		return true, true
	}
	return false, false
}

// Not returns the complement of l. The complement of X is X.
//
func (l Logic) Not() Logic {
	switch l {
	case L0:
		return L1
	case L1:
		return L0
	}
	return X
}

func (l Logic) String() string {
	switch l {
	case L0:
		return "0"
	case L1:
		return "1"
	}
	return "x"
}

// ParseLogic parses "0", "1", "x" or "X" (also "false", "true").
//
func ParseLogic(s string) (Logic, error) {
	switch s {
	case "0", "false":
		return L0, nil
	case "1", "true":
		return L1, nil
	case "x", "X":
		return X, nil
	}
	return X, errors.Errorf("invalid logic value %q", s)
}

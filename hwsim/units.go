// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Unit is a unit of simulated time.
//
type Unit int64

// Time units.
//
const (
	Femtosecond Unit = 1
	Picosecond       = 1000 * Femtosecond
	Nanosecond       = 1000 * Picosecond
	Microsecond      = 1000 * Nanosecond
	Millisecond      = 1000 * Microsecond
	Second           = 1000 * Millisecond
)

var units = []struct {
	u    Unit
	name string
}{
	{Second, "s"},
	{Millisecond, "ms"},
	{Microsecond, "us"},
	{Nanosecond, "ns"},
	{Picosecond, "ps"},
	{Femtosecond, "fs"},
}

func (u Unit) String() string {
	for _, d := range units {
		if d.u == u {
			return d.name
		}
	}
	return Time(u).String()
}

// ParseUnit parses one of "fs", "ps", "ns", "us", "ms" or "s".
//
func ParseUnit(s string) (Unit, error) {
	for _, d := range units {
		if d.name == s {
			return d.u, nil
		}
	}
	return 0, errors.Errorf("invalid time unit %q", s)
}

// Time is a point in simulated time, or a duration, in femtoseconds.
//
type Time int64

// In returns t expressed in unit u. ok is false if t is not a whole multiple
// of u.
//
func (t Time) In(u Unit) (v int64, ok bool) {
	return int64(t) / int64(u), int64(t)%int64(u) == 0
}

func (t Time) String() string {
	if t == 0 {
		return "0s"
	}
	for _, d := range units {
		if v, ok := t.In(d.u); ok {
			return strconv.FormatInt(v, 10) + d.name
		}
	}
	panic("unreachable")
}

// ParseTime parses a time like "10us" or "250 ns".
//
func ParseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	v, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid time %q", s)
	}
	u, err := ParseUnit(strings.TrimSpace(s[i:]))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid time %q", s)
	}
	t, err := timeOf(v, u)
	return t, errors.Wrapf(err, "invalid time %q", s)
}

// timeOf returns v*u, or an error if the product does not fit in a Time.
//
func timeOf(v int64, u Unit) (Time, error) {
	if u > 0 && (v > math.MaxInt64/int64(u) || v < math.MinInt64/int64(u)) {
		return 0, errors.Errorf("%d%s out of range", v, u)
	}
	return Time(v) * Time(u), nil
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/db47h/hwbench/hwsim"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Bench is a testbench: a design and a task driving it.
//
type Bench struct {
	Name string
	Doc  string
	// Build returns a fresh instance of the design under test.
	Build func(workers int) (*hwsim.Circuit, error)
	// Body is the main task of the bench.
	Body hwsim.TaskFunc
}

// Options configures bench runs.
//
type Options struct {
	// Workers is passed to Bench.Build.
	Workers int
	// Sim configures the simulation session of each bench.
	Sim hwsim.Config
}

// Result is the outcome of a bench run.
//
type Result struct {
	Name    string
	Err     error
	SimTime hwsim.Time
	Elapsed time.Duration
}

// Passed returns true if the bench ran to completion without error.
//
func (r *Result) Passed() bool { return r.Err == nil }

// RunOne runs a single bench on a fresh circuit.
//
func RunOne(ctx context.Context, b Bench, opts Options) Result {
	start := time.Now()
	r := Result{Name: b.Name}
	c, err := b.Build(opts.Workers)
	if err != nil {
		r.Err = errors.Wrap(err, "build "+b.Name)
		r.Elapsed = time.Since(start)
		return r
	}
	defer c.Dispose()
	cfg := opts.Sim
	if cfg.Log != nil {
		cfg.Log = cfg.Log.WithField("bench", b.Name)
	}
	s := hwsim.NewSim(c, cfg)
	r.Err = s.Run(ctx, b.Body)
	r.SimTime = s.Now()
	r.Elapsed = time.Since(start)
	return r
}

// Suite is an ordered collection of benches.
//
type Suite struct {
	benches []Bench
	idx     map[string]int
}

// Add registers b. Bench names must be unique and non-empty.
//
func (s *Suite) Add(b Bench) error {
	if b.Name == "" || b.Build == nil || b.Body == nil {
		return errors.New("incomplete bench definition")
	}
	if s.idx == nil {
		s.idx = make(map[string]int)
	}
	if _, ok := s.idx[b.Name]; ok {
		return errors.Errorf("duplicate bench %q", b.Name)
	}
	s.idx[b.Name] = len(s.benches)
	s.benches = append(s.benches, b)
	return nil
}

// MustAdd is like Add but panics on error.
//
func (s *Suite) MustAdd(b Bench) {
	if err := s.Add(b); err != nil {
		panic(err)
	}
}

// Benches returns all benches in registration order.
//
func (s *Suite) Benches() []Bench {
	return append([]Bench(nil), s.benches...)
}

// Lookup returns the bench with the given name.
//
func (s *Suite) Lookup(name string) (Bench, bool) {
	i, ok := s.idx[name]
	if !ok {
		return Bench{}, false
	}
	return s.benches[i], true
}

// Run runs the named benches, or all of them if names is empty, and returns
// their results in order. A failing bench does not stop the others. The
// returned error is only non-nil for unknown bench names or if ctx is done
// before all benches ran.
//
func (s *Suite) Run(ctx context.Context, opts Options, names ...string) ([]Result, error) {
	bs := s.benches
	if len(names) > 0 {
		bs = make([]Bench, 0, len(names))
		for _, n := range names {
			b, ok := s.Lookup(n)
			if !ok {
				return nil, errors.Errorf("unknown bench %q", n)
			}
			bs = append(bs, b)
		}
	}
	log := opts.Sim.Log
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	var rs []Result
	for _, b := range bs {
		if err := ctx.Err(); err != nil {
			return rs, err
		}
		r := RunOne(ctx, b, opts)
		l := log.WithFields(logrus.Fields{
			"bench":   r.Name,
			"simTime": r.SimTime.String(),
			"elapsed": r.Elapsed,
		})
		switch {
		case r.Err == nil:
			l.Info("PASS")
		case IsMismatch(r.Err):
			l.WithError(r.Err).Error("FAIL")
		default:
			l.WithError(r.Err).Error("ERROR")
		}
		rs = append(rs, r)
	}
	return rs, nil
}

// RunBench runs b as part of a go test.
//
func RunBench(t *testing.T, b Bench, opts Options) Result {
	t.Helper()
	r := RunOne(context.Background(), b, opts)
	if r.Err != nil {
		if IsMismatch(r.Err) {
			t.Fatalf("%s: %v", b.Name, r.Err)
		}
		t.Fatalf("%s: infrastructure failure: %+v", b.Name, r.Err)
	}
	return r
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"context"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A TaskFunc is the body of a cooperative task. It drives and samples signals
// and suspends itself by calling the trigger methods of t. A TaskFunc must
// return as soon as one of these methods returns an error.
//
type TaskFunc func(t *Task) error

// Config holds the settings of a simulation session.
//
type Config struct {
	// Precision is the simulated duration of one circuit step. Defaults to
	// Nanosecond.
	Precision Unit
	// MaxTime aborts the session with ErrTimeout once that much simulated
	// time has elapsed in Run. Zero means no limit.
	MaxTime Time
	// Log receives debug traces of task activity. Defaults to a logger that
	// discards everything.
	Log logrus.FieldLogger
}

// Sim is a simulation session: it runs a set of cooperative tasks against a
// Circuit.
//
// Only one task runs at a time. When all live tasks are suspended, the
// circuit is stepped and the tasks whose trigger fired are resumed in the
// order they were suspended. Signal writes done by tasks are applied at the
// start of the next step.
//
type Sim struct {
	c        *Circuit
	prec     Unit
	maxSteps uint64
	log      logrus.FieldLogger

	ready    []*Task
	waiting  []*Task
	yield    chan struct{}
	ids      int
	used     bool
	stopping bool
}

// NewSim returns a new session for circuit c.
//
func NewSim(c *Circuit, cfg Config) *Sim {
	if cfg.Precision <= 0 {
		cfg.Precision = Nanosecond
	}
	if cfg.Log == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Log = l
	}
	s := &Sim{
		c:     c,
		prec:  cfg.Precision,
		log:   cfg.Log,
		yield: make(chan struct{}),
	}
	if cfg.MaxTime > 0 {
		n := int64(cfg.MaxTime) / int64(cfg.Precision)
		if n < 1 {
			n = 1
		}
		s.maxSteps = uint64(n)
	}
	return s
}

// Circuit returns the simulated circuit.
//
func (s *Sim) Circuit() *Circuit { return s.c }

// Now returns the current simulation time.
//
func (s *Sim) Now() Time {
	return Time(s.c.Steps()) * Time(s.prec)
}

// Run runs main and all the tasks it starts until main returns, ctx is done,
// or a task fails. Background tasks still alive when main returns are
// terminated: their pending trigger returns ErrSessionEnded.
//
// Run returns the error of the first failing task (wrapped with the task name
// for background tasks), ctx.Err(), or an error wrapping ErrTimeout.
// A Sim can only be run once.
//
func (s *Sim) Run(ctx context.Context, main TaskFunc) error {
	if s.used {
		return errors.New("simulation session already run")
	}
	s.used = true
	defer s.shutdown()

	limit := s.c.Steps() + s.maxSteps
	mt := s.spawn("main", main)
	for {
		for len(s.ready) > 0 {
			t := s.ready[0]
			s.ready = s.ready[1:]
			t.resume <- true
			<-s.yield
			if !t.done {
				continue
			}
			s.log.WithFields(logrus.Fields{"task": t.name, "time": s.Now().String()}).Debug("task done")
			if t.err != nil {
				if t != mt {
					return errors.Wrap(t.err, t.name)
				}
				return t.err
			}
			if t == mt {
				return nil
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.maxSteps > 0 && s.c.Steps() >= limit {
			return errors.Wrapf(ErrTimeout, "at %s", s.Now())
		}
		s.step()
	}
}

func (s *Sim) step() {
	s.c.Step()
	var still []*Task
	for _, t := range s.waiting {
		if t.trig.fired(s) {
			t.trig = nil
			s.ready = append(s.ready, t)
		} else {
			still = append(still, t)
		}
	}
	s.waiting = still
}

func (s *Sim) shutdown() {
	s.stopping = true
	ts := append(s.ready, s.waiting...)
	s.ready, s.waiting = nil, nil
	for _, t := range ts {
		t.resume <- false
		<-s.yield
	}
	s.log.WithFields(logrus.Fields{"time": s.Now().String(), "killed": len(ts)}).Debug("session ended")
}

func (s *Sim) spawn(name string, fn TaskFunc) *Task {
	t := &Task{s: s, name: name, resume: make(chan bool)}
	s.ready = append(s.ready, t)
	go t.run(fn)
	return t
}

// steps converts a duration to a step count.
//
func (s *Sim) steps(d int64, u Unit) (uint64, error) {
	if d <= 0 || u <= 0 {
		return 0, errors.Errorf("invalid duration %d%s", d, u)
	}
	t, err := timeOf(d, u)
	if err != nil {
		return 0, errors.Wrap(err, "invalid duration")
	}
	n, ok := t.In(s.prec)
	if !ok || n == 0 {
		return 0, errors.Errorf("duration %d%s is not a multiple of the simulation precision (%s)", d, u, s.prec)
	}
	return uint64(n), nil
}

// A Task is a handle on a running cooperative task.
//
type Task struct {
	s      *Sim
	name   string
	resume chan bool
	trig   trigger
	done   bool
	err    error
}

func (t *Task) run(fn TaskFunc) {
	if ok := <-t.resume; !ok {
		t.done, t.err = true, ErrSessionEnded
		t.s.yield <- struct{}{}
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.err = errors.Errorf("task %s panicked: %v", t.name, r)
		}
		t.done = true
		t.s.yield <- struct{}{}
	}()
	t.s.log.WithFields(logrus.Fields{"task": t.name, "time": t.s.Now().String()}).Debug("task started")
	t.err = fn(t)
}

// Name returns the task name.
//
func (t *Task) Name() string { return t.name }

// Sim returns the session t belongs to.
//
func (t *Task) Sim() *Sim { return t.s }

// Now returns the current simulation time.
//
func (t *Task) Now() Time { return t.s.Now() }

// Log returns the session logger with task and time fields set.
//
func (t *Task) Log() logrus.FieldLogger {
	return t.s.log.WithFields(logrus.Fields{"task": t.name, "time": t.s.Now().String()})
}

// Start schedules fn as a background task. It starts running once the
// calling task suspends and lives until it returns or the session ends.
//
func (t *Task) Start(fn TaskFunc) {
	if t.s.stopping {
		return
	}
	t.s.ids++
	t.s.spawn("task#"+strconv.Itoa(t.s.ids), fn)
}

func (t *Task) wait(tr trigger) error {
	s := t.s
	if s.stopping {
		return ErrSessionEnded
	}
	tr.arm(s)
	t.trig = tr
	s.waiting = append(s.waiting, t)
	s.yield <- struct{}{}
	if ok := <-t.resume; !ok {
		return ErrSessionEnded
	}
	return nil
}

func (t *Task) checkSignal(sig *Signal) error {
	if sig == nil || sig.c != t.s.c {
		return errors.New("signal does not belong to the simulated circuit")
	}
	return nil
}

// RisingEdge suspends t until the next 0 to 1 transition of sig.
//
func (t *Task) RisingEdge(sig *Signal) error {
	if err := t.checkSignal(sig); err != nil {
		return err
	}
	return t.wait(&edge{sig: sig, to: L1})
}

// FallingEdge suspends t until the next 1 to 0 transition of sig.
//
func (t *Task) FallingEdge(sig *Signal) error {
	if err := t.checkSignal(sig); err != nil {
		return err
	}
	return t.wait(&edge{sig: sig, to: L0})
}

// ClockCycles suspends t until n rising edges of clk have elapsed.
//
func (t *Task) ClockCycles(clk *Signal, n int) error {
	if n < 1 {
		return errors.Errorf("invalid cycle count %d", n)
	}
	for i := 0; i < n; i++ {
		if err := t.RisingEdge(clk); err != nil {
			return err
		}
	}
	return nil
}

// Timer suspends t for the given duration, which must be a whole number of
// simulation steps.
//
func (t *Task) Timer(d int64, u Unit) error {
	n, err := t.s.steps(d, u)
	if err != nil {
		return err
	}
	return t.waitSteps(n)
}

func (t *Task) waitSteps(n uint64) error {
	return t.wait(&timer{at: t.s.c.Steps() + n})
}

type trigger interface {
	arm(s *Sim)
	fired(s *Sim) bool
}

type edge struct {
	sig  *Signal
	to   Logic
	prev Logic
}

func (e *edge) arm(*Sim) { e.prev = e.sig.Value() }

func (e *edge) fired(*Sim) bool {
	cur := e.sig.Value()
	f := e.prev == e.to.Not() && cur == e.to
	e.prev = cur
	return f
}

type timer struct {
	at uint64
}

func (*timer) arm(*Sim) {}

func (tm *timer) fired(s *Sim) bool { return s.c.Steps() >= tm.at }

// Clock returns a TaskFunc that drives sig with a free running clock of the
// given period: 1 for the first half period, 0 for the second. The period must
// be an even number of simulation steps. Start it with Task.Start; it runs
// until the session ends.
//
func Clock(sig *Signal, period int64, u Unit) TaskFunc {
	return func(t *Task) error {
		if err := t.checkSignal(sig); err != nil {
			return err
		}
		n, err := t.s.steps(period, u)
		if err != nil {
			return errors.Wrap(err, "clock "+sig.Name())
		}
		if n < 2 || n%2 != 0 {
			return errors.Errorf("clock %s: period of %d steps cannot be split in two equal halves", sig.Name(), n)
		}
		half := n / 2
		for {
			sig.Set(L1)
			if err = t.waitSteps(half); err != nil {
				return err
			}
			sig.Set(L0)
			if err = t.waitSteps(half); err != nil {
				return err
			}
		}
	}
}

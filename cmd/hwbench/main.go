// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hwbench runs the registered hardware testbenches.
//
//	hwbench [-config file.yaml] [-workers n] [-precision ns] [-max-time 10ms] [-v] [bench ...]
//	hwbench -list
//
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/db47h/hwbench/bench/acc"
	"github.com/db47h/hwbench/bench/dff"
	"github.com/db47h/hwbench/hwtest"
	"github.com/db47h/hwbench/internal/config"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// benches merges suites into one, in order.
//
func benches(suites ...*hwtest.Suite) *hwtest.Suite {
	var all hwtest.Suite
	for _, s := range suites {
		for _, b := range s.Benches() {
			all.MustAdd(b)
		}
	}
	return &all
}

func run(args []string) int {
	fs := flag.NewFlagSet("hwbench", flag.ContinueOnError)
	var (
		cfgFile   = fs.String("config", "", "YAML configuration `file`")
		workers   = fs.Int("workers", 1, "goroutines per circuit (0 = GOMAXPROCS)")
		precision = fs.String("precision", "ns", "simulation step `unit`")
		maxTime   = fs.String("max-time", "", "simulated time limit per bench, e.g. 10ms")
		verbose   = fs.Bool("v", false, "debug logging")
		list      = fs.Bool("list", false, "list benches and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	cfg := config.Default()
	if *cfgFile != "" {
		var err error
		if cfg, err = config.Load(*cfgFile); err != nil {
			log.WithError(err).Error("configuration")
			return 2
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workers
		case "precision":
			cfg.Precision = *precision
		case "max-time":
			cfg.MaxTime = *maxTime
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if fs.NArg() > 0 {
		cfg.Benches = fs.Args()
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("configuration")
		return 2
	}
	lvl, _ := cfg.Level()
	log.SetLevel(lvl)

	suite := benches(dff.Benches, acc.Benches)
	if *list {
		for _, b := range suite.Benches() {
			fmt.Printf("%-12s %s\n", b.Name, b.Doc)
		}
		return 0
	}

	sc, _ := cfg.Sim()
	sc.Log = log
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rs, err := suite.Run(ctx, hwtest.Options{Workers: cfg.Workers, Sim: sc}, cfg.Benches...)
	if err != nil {
		log.WithError(err).Error("run")
		return 1
	}
	failed := 0
	for i := range rs {
		if !rs[i].Passed() {
			failed++
		}
	}
	log.WithFields(logrus.Fields{"total": len(rs), "failed": failed}).Info("done")
	if failed > 0 {
		return 1
	}
	return 0
}

// Command crewsearch generates the sequence 1..N and locates a target in it
// with the simulated CREW-PRAM search, printing every stage.
//
//	crewsearch --size 500
//	crewsearch --size 500 --target 499 --legacy --quiet
//	echo 120 | crewsearch --processors 3 --rate 2
package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the production logger at the given level.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = lvl
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}

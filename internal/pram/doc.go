// Package pram implements the concurrent-read phase of a CREW-PRAM search stage.
//
// Each of the P virtual processors owns one frontier position inside the
// current window. During the read phase every processor compares the element
// at its frontier against the target and records an Outcome in its own Probe
// slot. Processors only read the shared sequence and window bounds, so the
// phase can run sequentially or fan out across goroutines:
//
//	probes, err := pram.Sequential{}.Evaluate(ctx, read)
//	probes, err := pram.Parallel{Workers: 4}.Evaluate(ctx, read)
//
// Both evaluators return identical probes. The exclusive-write phase (window
// narrowing) is not part of this package; callers reduce the probes on a
// single goroutine.
package pram

// Package crewpram simulates the CREW-PRAM parallel search on a sorted
// sequence of integers.
//
// P virtual processors cooperate to narrow a search window in
// ceil(log_{P+1}(N+1)) synchronized stages. Every stage has two phases:
//
//   - Concurrent read: processor i probes position (low-1) + i*(P+1)^(g-1)
//     and reports whether the target lies left or right of it.
//   - Exclusive write: one reducer scans the directions and moves the window
//     to the sub-interval at the first change from right to left.
//
// # Quick Start
//
//	seq := []int{2, 5, 8, 12, 16, 23, 38, 56, 72, 91}
//	pos, _ := crewpram.Find(seq, 23, 10) // 6 (1-based), 0 when absent
//
// # Observing Stages
//
// Search never prints. Pass an Observer to receive one Stage per round, or
// drive a Stepper directly:
//
//	res, err := crewpram.Search(ctx, seq, 23, 10,
//	    crewpram.WithObserver(trace.New(os.Stdout)),
//	    crewpram.WithParallelReads(4),
//	)
//
//	st, _ := crewpram.NewStepper(seq, 23, 10)
//	for !st.Done() {
//	    stage, _ := st.Step(ctx)
//	    fmt.Println(stage.Window, "->", stage.Next)
//	}
//
// # Bounds Modes
//
// BoundsExact (default) computes the stage budget with integer arithmetic
// and never misses a present element. BoundsLegacy keeps the
// classic behavior, including the floating-point budget and the clamp of
// out-of-window frontiers to high-1.
package crewpram

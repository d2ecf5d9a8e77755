// Package trace renders crewpram stages as human-readable text.
//
// A Text tracer is a crewpram.Observer:
//
//	tr := trace.New(os.Stdout, trace.WithValues(seq, 32))
//	res, err := crewpram.Search(ctx, seq, 23, 10, crewpram.WithObserver(tr))
//	if err == nil {
//	    err = tr.Err()
//	}
//	trace.WriteResult(os.Stdout, 23, res.Position)
package trace

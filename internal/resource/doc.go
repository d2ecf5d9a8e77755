// Package resource governs the resources the crewsearch driver consumes.
//
// The Controller manages two resource types:
//
//   - Memory: a fail-fast budget charged when the working sequence is allocated
//   - Stages: a token bucket that paces how fast stages are executed and traced
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 4096,
//	})
//
//	if err := rc.AcquireMemory(int64(n) * 8); err != nil {
//	    // ErrMemoryLimitExceeded - the sequence cannot be allocated
//	}
//	defer rc.ReleaseMemory(int64(n) * 8)
//
// # Stage Pacing
//
//	rc := resource.NewController(resource.Config{StagesPerSecond: 2})
//	for !st.Done() {
//	    if err := rc.AcquireStage(ctx); err != nil {
//	        return err
//	    }
//	    st.Step(ctx)
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
package resource

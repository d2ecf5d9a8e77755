package crewpram

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/crewpram/testutil"
)

var reference = []int{2, 5, 8, 12, 16, 23, 38, 56, 72, 91}

func collect(stages *[]Stage) Option {
	return WithObserver(ObserverFunc(func(s Stage) {
		*stages = append(*stages, s)
	}))
}

func TestSearch_ReferenceScenarios(t *testing.T) {
	tests := []struct {
		name       string
		seq        []int
		target     int
		processors int
		want       int
	}{
		{"present", reference, 23, 10, 6},
		{"absent", reference, 99, 10, 0},
		{"generated", testutil.Ascending(500), 23, 10, 23},
	}

	for _, bounds := range []Bounds{BoundsExact, BoundsLegacy} {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%s", bounds, tt.name), func(t *testing.T) {
				res, err := Search(t.Context(), tt.seq, tt.target, tt.processors, WithBounds(bounds))
				require.NoError(t, err)
				assert.Equal(t, tt.want, res.Position)
				assert.Equal(t, tt.want != 0, res.Found())
			})
		}
	}
}

func TestFind(t *testing.T) {
	pos, err := Find(reference, 23, 10)
	require.NoError(t, err)
	assert.Equal(t, 6, pos)

	pos, err = Find(reference, 99, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	_, err = Find(reference, 23, 0)
	assert.ErrorIs(t, err, ErrInvalidProcessorCount)
}

func TestSearch_Correctness(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, n := range []int{1, 16, 17, 500} {
		seq := rng.SortedDistinct(n, 9)

		for _, p := range []int{1, 2, 5, 10} {
			t.Run(fmt.Sprintf("N=%d/P=%d", n, p), func(t *testing.T) {
				for i, target := range seq {
					res, err := Search(t.Context(), seq, target, p)
					require.NoError(t, err)
					require.Equal(t, i+1, res.Position, "target=%d", target)
					assert.LessOrEqual(t, res.Stages, res.Budget)
				}

				for _, target := range testutil.Absent(seq, 200) {
					res, err := Search(t.Context(), seq, target, p)
					require.NoError(t, err)
					require.Equal(t, 0, res.Position, "target=%d", target)
				}
			})
		}
	}
}

func TestSearch_ParallelReadsMatchSequential(t *testing.T) {
	seq := testutil.NewRNG(7).SortedDistinct(500, 4)

	for _, p := range []int{1, 3, 10, 64} {
		for _, target := range []int{seq[0], seq[137], seq[499], seq[499] + 1, seq[0] - 1} {
			var seqStages, parStages []Stage

			want, err := Search(t.Context(), seq, target, p, collect(&seqStages))
			require.NoError(t, err)

			got, err := Search(t.Context(), seq, target, p, collect(&parStages), WithParallelReads(4))
			require.NoError(t, err)

			assert.Equal(t, want.Position, got.Position)
			if diff := cmp.Diff(seqStages, parStages); diff != "" {
				t.Errorf("P=%d target=%d stages mismatch (-sequential +parallel):\n%s", p, target, diff)
			}
		}
	}
}

func TestSearch_MonotonicNarrowing(t *testing.T) {
	seq := testutil.NewRNG(99).SortedDistinct(500, 3)
	targets := append(append([]int{}, seq...), testutil.Absent(seq, 100)...)

	for _, p := range []int{1, 2, 5, 10} {
		for _, target := range targets {
			var stages []Stage
			_, err := Search(t.Context(), seq, target, p, collect(&stages))
			require.NoError(t, err)
			require.NotEmpty(t, stages)

			for _, s := range stages {
				assert.LessOrEqual(t, s.Next.Width(), s.Window.Width())
				assert.GreaterOrEqual(t, s.Next.Low, s.Window.Low)
				assert.LessOrEqual(t, s.Next.High, s.Window.High)
			}
			if first := stages[0]; first.Found == 0 {
				assert.Less(t, first.Next.Width(), first.Window.Width(), "P=%d target=%d", p, target)
			}
			for i := 1; i < len(stages); i++ {
				assert.Equal(t, stages[i-1].Next, stages[i].Window)
			}
		}
	}
}

func TestSearch_SingleProcessorIsBinarySearch(t *testing.T) {
	for _, n := range []int{1, 2, 16, 17, 100, 500} {
		seq := testutil.NewRNG(int64(n)).SortedDistinct(n, 5)
		targets := append(append([]int{}, seq...), testutil.Absent(seq, 50)...)

		for _, target := range targets {
			var stages []Stage
			res, err := Search(t.Context(), seq, target, 1, collect(&stages))
			require.NoError(t, err)

			assert.Equal(t, testutil.ReferenceSearch(seq, target), res.Position)
			assert.LessOrEqual(t, res.Comparisons, StageCount(n, 1))
			for _, s := range stages {
				assert.LessOrEqual(t, s.Comparisons, 1)
				assert.Len(t, s.Frontiers, 3)
			}
		}
	}
}

func TestSearch_BoundaryTargets(t *testing.T) {
	for _, n := range []int{1, 16, 17, 500} {
		seq := testutil.Ascending(n)

		for _, p := range []int{1, 2, 5, 10} {
			for _, target := range []int{seq[0], seq[n-1]} {
				res, err := Search(t.Context(), seq, target, p)
				require.NoError(t, err)
				assert.Equal(t, target, res.Position, "N=%d P=%d", n, p)
				assert.LessOrEqual(t, res.Stages, StageCount(n, p))
			}
		}
	}
}

func TestSearch_StageBudgetTightness(t *testing.T) {
	tests := []struct {
		n, p, budget int
	}{
		{26, 2, 3},   // (P+1)^g = N+1
		{27, 2, 4},   // one element past the power
		{120, 10, 2}, // (P+1)^g = N+1
		{121, 10, 3},
		{15, 1, 4},
		{16, 1, 5},
		{215, 5, 3},
	}

	for _, tt := range tests {
		seq := testutil.Ascending(tt.n)
		for _, target := range seq {
			res, err := Search(t.Context(), seq, target, tt.p)
			require.NoError(t, err)
			require.Equal(t, tt.budget, res.Budget)
			require.Equal(t, target, res.Position, "N=%d P=%d", tt.n, tt.p)
		}
	}
}

func TestSearch_ExactStages(t *testing.T) {
	var stages []Stage
	res, err := Search(t.Context(), reference, 99, 10, collect(&stages))
	require.NoError(t, err)
	require.Equal(t, 0, res.Position)

	frontiers := []Frontier{{Processor: 0, Position: 0, Direction: Right, Virtual: true}}
	for i := 1; i <= 10; i++ {
		frontiers = append(frontiers, Frontier{Processor: i, Position: i, Direction: Right})
	}
	frontiers = append(frontiers, Frontier{Processor: 11, Position: 11, Direction: Left, Virtual: true})

	want := []Stage{{
		Number:      1,
		Budget:      1,
		Step:        1,
		Window:      Window{Low: 1, High: 10},
		Next:        Window{Low: 11, High: 10},
		Frontiers:   frontiers,
		Comparisons: 10,
	}}
	if diff := cmp.Diff(want, stages); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_GeneratedWindows(t *testing.T) {
	var stages []Stage
	res, err := Search(t.Context(), testutil.Ascending(500), 23, 10, collect(&stages))
	require.NoError(t, err)
	require.Equal(t, 23, res.Position)
	require.Len(t, stages, 3)

	assert.Equal(t, 3, res.Budget)
	assert.Equal(t, []int{121, 11, 1}, []int{stages[0].Step, stages[1].Step, stages[2].Step})
	assert.Equal(t, Window{Low: 1, High: 120}, stages[0].Next)
	assert.Equal(t, Window{Low: 23, High: 32}, stages[1].Next)
	assert.Equal(t, 23, stages[2].Found)

	// Frontiers 5..10 of the first stage fall past 500.
	for _, f := range stages[0].Frontiers[5:11] {
		assert.True(t, f.Clamped)
		assert.Equal(t, Left, f.Direction)
		assert.Equal(t, 501, f.Position)
	}
	assert.Equal(t, 4, stages[0].Comparisons)
	assert.Equal(t, Hit, stages[2].Frontiers[1].Direction)
}

func TestSearch_LegacyLosesWindowTail(t *testing.T) {
	seq := testutil.Ascending(500)

	res, err := Search(t.Context(), seq, 500, 10, WithLegacyBounds())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Position)

	res, err = Search(t.Context(), seq, 500, 10)
	require.NoError(t, err)
	assert.Equal(t, 500, res.Position)
}

func TestSearch_LegacyClampPosition(t *testing.T) {
	var stages []Stage
	_, err := Search(t.Context(), testutil.Ascending(500), 500, 10, WithLegacyBounds(), collect(&stages))
	require.NoError(t, err)
	require.NotEmpty(t, stages)

	first := stages[0]
	assert.Equal(t, 499, first.Frontiers[5].Position)
	assert.True(t, first.Frontiers[5].Clamped)
	assert.Equal(t, 499, first.Frontiers[11].Position)
	assert.Equal(t, Window{Low: 485, High: 498}, first.Next)
}

func TestSearch_Probed(t *testing.T) {
	seq := testutil.NewRNG(3).SortedDistinct(500, 6)

	for _, p := range []int{1, 4, 10} {
		for _, target := range []int{seq[0], seq[250], seq[499], -1, seq[499] + 1} {
			res, err := Search(t.Context(), seq, target, p)
			require.NoError(t, err)
			require.NotNil(t, res.Probed)

			// Narrowed windows exclude earlier frontiers, so no position is probed twice.
			assert.Equal(t, uint64(res.Comparisons), res.Probed.GetCardinality())
			if res.Found() {
				assert.True(t, res.Probed.Contains(uint32(res.Position)))
			}
			if !res.Probed.IsEmpty() {
				assert.GreaterOrEqual(t, res.Probed.Minimum(), uint32(1))
				assert.LessOrEqual(t, res.Probed.Maximum(), uint32(len(seq)))
			}
		}
	}
}

func TestSearch_InvalidInput(t *testing.T) {
	_, err := Search(t.Context(), reference, 23, 0)
	assert.ErrorIs(t, err, ErrInvalidProcessorCount)

	_, err = Find([]int{1, 2, 3}, 2, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidProcessorCount)

	_, err = Find([]int{1, 2, 3}, 2, MaxProcessors+1)
	assert.ErrorIs(t, err, ErrInvalidProcessorCount)

	pos, err := Find([]int{1, 2, 3}, 2, MaxProcessors)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	_, err = Search(t.Context(), nil, 23, 10)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = Search(t.Context(), []int{1, 3, 2, 4}, 2, 2)
	assert.ErrorIs(t, err, ErrNotSorted)

	var unsorted *ErrUnsorted
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, 3, unsorted.Position)
	assert.Equal(t, 3, unsorted.Previous)
	assert.Equal(t, 2, unsorted.Value)
	assert.Contains(t, err.Error(), "position 3")

	_, err = Search(t.Context(), []int{1, 3, 2, 4}, 2, 2, WithTrustedInput())
	assert.NoError(t, err)
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Search(ctx, testutil.Ascending(100), 7, 3)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Search(ctx, testutil.Ascending(100), 7, 3, WithParallelReads(2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_Metrics(t *testing.T) {
	mc := &BasicMetricsCollector{}

	_, err := Search(t.Context(), reference, 23, 10, WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = Search(t.Context(), reference, 99, 10, WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = Search(t.Context(), reference, 99, 0, WithMetricsCollector(mc))
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(3), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, int64(1), stats.SearchHits)
	assert.Equal(t, int64(2), stats.StagesTotal)
	assert.Equal(t, int64(20), stats.ComparisonsTotal)
	assert.InDelta(t, 1.0, stats.AvgStages, 1e-9)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "R", Right.String())
	assert.Equal(t, "L", Left.String())
	assert.Equal(t, "*", Hit.String())
	assert.Equal(t, "exact", BoundsExact.String())
	assert.Equal(t, "legacy", BoundsLegacy.String())
}

func TestWindow(t *testing.T) {
	assert.Equal(t, 10, Window{Low: 1, High: 10}.Width())
	assert.Equal(t, 0, Window{Low: 11, High: 10}.Width())
	assert.Equal(t, 0, Window{Low: 497, High: 494}.Width())
	assert.True(t, Window{Low: 11, High: 10}.Empty())
	assert.False(t, Window{Low: 3, High: 3}.Empty())
}

package negamax

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestSolveDeepens(t *testing.T) {
	is := is.New(t)
	s := openingPosition(t)
	solver := NewSolver(newTestTable(t, 1024))

	var reported []int
	results, err := solver.Solve(context.Background(), s, 0, 4, func(r DepthResult) {
		reported = append(reported, r.Depth)
	})
	is.NoErr(err)
	is.Equal(reported, []int{0, 1, 2, 3, 4})
	is.Equal(len(results), 5)
	// Same table across depths, so the numbers match a shared-table run.
	is.Equal(results[2].Entries, uint64(30))
	is.Equal(results[4].Entries, uint64(244))
	is.Equal(results[4].Moves.String(), "7: 13.0, 4: 10.0, 6: 6.0, 3: 6.0, 1: 2.0, 2: 2.0, 5: 2.0")
	is.True(solver.Nodes() > 0)
	is.Equal(solver.Nodes(), results[4].Nodes)
}

func TestSolveCancelled(t *testing.T) {
	is := is.New(t)
	solver := NewSolver(newTestTable(t, 64))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := solver.Solve(ctx, openingPosition(t), 0, 3, nil)
	is.True(errors.Is(err, context.Canceled))
	is.Equal(len(results), 0)
}

func TestSolveBadRange(t *testing.T) {
	is := is.New(t)
	solver := NewSolver(newTestTable(t, 64))
	_, err := solver.Solve(context.Background(), openingPosition(t), 3, 2, nil)
	is.True(errors.Is(err, ErrBadDepthRange))
}

package plico

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: under natural ordering the first solution is x=1, y=1.
func TestSolveS1(t *testing.T) {
	p := s1Problem(t)
	res := Solve(context.Background(), p, nil)
	require.Equal(t, ResultSolution, res.Kind())

	sol := res.Solution()
	require.True(t, sol.IsSolved())
	x, _ := sol.Value(0)
	y, _ := sol.Value(1)
	assert.True(t, x.Equal(Int(1)))
	assert.True(t, y.Equal(Int(1)))
}

// S2: three variables over {1,2} cannot be pairwise distinct.
func TestSolvePigeonholeUnsatisfiable(t *testing.T) {
	p := intProblem(t, 3, 1, 2, AllDifferent(0, 1, 2))
	res := Solve(context.Background(), p, nil)
	assert.Equal(t, ResultUnsatisfiable, res.Kind())
}

// S6: over-constrained equality.
func TestSolveOverConstrainedEqual(t *testing.T) {
	b := NewBuilder(NewStdSemantics())
	u := b.sem.(*StdSemantics).Universe()
	x := b.AddVariable(NewDomain(u, Int(1)))
	y := b.AddVariable(NewDomain(u, Int(2)))
	b.AddConstraint(Equal(x, y))
	p, err := b.Seal()
	require.NoError(t, err)

	res := Solve(context.Background(), p, nil)
	assert.Equal(t, ResultUnsatisfiable, res.Kind())
}

// S4: Australian map colouring over NotEqual edges.
func TestSolveMapColouring(t *testing.T) {
	sem := NewStdSemantics()
	b := NewBuilder(sem)
	regions := []string{"WA", "NT", "SA", "Q", "NSW", "V", "T"}
	ids := make(map[string]VariableID, len(regions))
	for _, r := range regions {
		ids[r] = b.AddVariable(sem.Symbols("red", "green", "blue"))
	}
	edges := [][2]string{
		{"WA", "NT"}, {"WA", "SA"}, {"NT", "SA"}, {"NT", "Q"},
		{"SA", "Q"}, {"SA", "NSW"}, {"SA", "V"}, {"Q", "NSW"}, {"NSW", "V"},
	}
	for _, e := range edges {
		b.AddConstraint(NotEqual(ids[e[0]], ids[e[1]]))
	}
	p, err := b.Seal()
	require.NoError(t, err)

	res := Solve(context.Background(), p, nil)
	require.Equal(t, ResultSolution, res.Kind())
	sol := res.Solution()
	for _, e := range edges {
		a, _ := sol.Value(ids[e[0]])
		z, _ := sol.Value(ids[e[1]])
		assert.False(t, a.Equal(z), "%s and %s share colour %s", e[0], e[1], a)
	}
}

// S5: a firing cancel predicate yields Cancelled and leaves the input intact.
func TestSolveCancellation(t *testing.T) {
	// An empty Sudoku grid gives the search plenty of depth.
	p := buildSudoku(t, [81]int{})
	before := domainTable(p)

	polls := 0
	res := Solve(context.Background(), p, &Options{
		Cancel: func() bool {
			polls++
			return polls > 3
		},
	})
	assert.Equal(t, ResultCancelled, res.Kind())
	assert.Nil(t, res.Solution())
	assert.Empty(t, cmp.Diff(before, domainTable(p)))
}

func TestSolveContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Solve(ctx, buildSudoku(t, [81]int{}), nil)
	assert.Equal(t, ResultCancelled, res.Kind())
}

// Completeness on exhaustively checkable problems: Solve finds a solution
// exactly when brute force does.
func TestSolveCompletenessSmall(t *testing.T) {
	cases := []struct {
		name string
		cons []Constraint
		sat  bool
	}{
		{"chain-equal", []Constraint{Equal(0, 1), Equal(1, 2)}, true},
		{"distinct-three", []Constraint{AllDifferent(0, 1, 2)}, true},
		{"distinct-plus-equal", []Constraint{AllDifferent(0, 1, 2), Equal(0, 1)}, false},
		{"odd-cycle", []Constraint{NotEqual(0, 1), NotEqual(1, 2), NotEqual(0, 2)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := intProblem(t, 3, 1, 3, tc.cons...)
			res := Solve(context.Background(), p, nil)
			if tc.sat {
				require.Equal(t, ResultSolution, res.Kind())
				assertSatisfies(t, res.Solution(), tc.cons)
			} else {
				assert.Equal(t, ResultUnsatisfiable, res.Kind())
			}
		})
	}
}

// assertSatisfies re-propagates every constraint on the solved problem; a
// satisfied solution admits no change and no inconsistency.
func assertSatisfies(t *testing.T, sol *Problem, cons []Constraint) {
	t.Helper()
	for _, c := range cons {
		out := c.Propagate(sol, NoTrigger)
		assert.Equal(t, OutcomeNoChange, out.Kind(), "constraint %s unsatisfied", c)
	}
}

// Determinism: identical inputs and options explore the identical path.
func TestSolveDeterministicPath(t *testing.T) {
	run := func() ([]VariableID, map[VariableID]Value) {
		var picks []VariableID
		p := intProblem(t, 4, 1, 4, AllDifferent(0, 1, 2, 3), NotEqual(0, 3))
		res := Solve(context.Background(), p, &Options{
			VariableOrder: VariableOrderCustom,
			VariableHint: func(p *Problem, candidates []VariableID) VariableID {
				// MRV with ascending-id ties, recording each choice.
				best := candidates[0]
				for _, v := range candidates[1:] {
					if p.Domain(v).Size() < p.Domain(best).Size() {
						best = v
					}
				}
				picks = append(picks, best)
				return best
			},
		})
		require.Equal(t, ResultSolution, res.Kind())
		return picks, res.Solution().Assignment()
	}

	picks1, sol1 := run()
	picks2, sol2 := run()
	assert.Equal(t, picks1, picks2)
	require.Len(t, sol2, len(sol1))
	for v, val := range sol1 {
		assert.True(t, sol2[v].Equal(val))
	}
}

// Snapshot isolation: the input problem is unchanged after Solve returns.
func TestSolveSnapshotIsolation(t *testing.T) {
	p := intProblem(t, 3, 1, 3, AllDifferent(0, 1, 2), NotEqual(0, 2))
	before := domainTable(p)

	res := Solve(context.Background(), p, nil)
	require.Equal(t, ResultSolution, res.Kind())
	assert.Empty(t, cmp.Diff(before, domainTable(p)))
}

func TestSolveSmallestIDOrder(t *testing.T) {
	// Variable 2 has the smallest domain; SmallestID must still branch on
	// variable 0 first.
	b := NewBuilder(NewStdSemantics())
	u := b.sem.(*StdSemantics).Universe()
	_, err := b.AddStandard(IntRange(1, 4))
	require.NoError(t, err)
	_, err = b.AddStandard(IntRange(1, 4))
	require.NoError(t, err)
	b.AddVariable(NewDomain(u, Int(1), Int(2)))
	b.AddConstraint(NotEqual(0, 1))
	p, err := b.Seal()
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	res := Solve(context.Background(), p, &Options{
		VariableOrder: VariableOrderSmallestID,
		Tracer:        logger,
	})
	require.Equal(t, ResultSolution, res.Kind())

	var first VariableID = -1
	for _, e := range hook.Entries {
		if e.Message == "branching" {
			first = e.Data["variable"].(VariableID)
			break
		}
	}
	assert.Equal(t, VariableID(0), first)
}

func TestSolveCustomValueOrder(t *testing.T) {
	p := intProblem(t, 1, 1, 3)
	res := Solve(context.Background(), p, &Options{
		ValueOrder: ValueOrderCustom,
		ValueHint: func(_ *Problem, _ VariableID, values []Value) []Value {
			// Reverse: try the largest first.
			out := make([]Value, len(values))
			for i, v := range values {
				out[len(values)-1-i] = v
			}
			return out
		},
	})
	require.Equal(t, ResultSolution, res.Kind())
	v, _ := res.Solution().Value(0)
	assert.True(t, v.Equal(Int(3)))
}

func TestSolveStatsAccumulate(t *testing.T) {
	p := intProblem(t, 3, 1, 3, AllDifferent(0, 1, 2))
	res := Solve(context.Background(), p, nil)
	require.Equal(t, ResultSolution, res.Kind())
	assert.Greater(t, res.Stats.Nodes, 0)
	assert.Greater(t, res.Stats.Revisions, 0)
	assert.Greater(t, res.Stats.Prunings, 0)
}

func TestSolveTracerReceivesEvents(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := intProblem(t, 3, 1, 3, AllDifferent(0, 1, 2))
	res := Solve(context.Background(), p, &Options{Tracer: logger})
	require.Equal(t, ResultSolution, res.Kind())
	require.NotEmpty(t, hook.Entries)

	seen := make(map[string]bool)
	for _, e := range hook.Entries {
		seen[e.Message] = true
	}
	assert.True(t, seen["branching"])
	assert.True(t, seen["domain pruned"])
	assert.True(t, seen["solve finished"])
}

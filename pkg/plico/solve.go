package plico

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ResultKind tags the outcome of a Solve call.
type ResultKind int

const (
	// ResultSolution means a total satisfying assignment was found.
	ResultSolution ResultKind = iota
	// ResultUnsatisfiable means no satisfying assignment exists.
	ResultUnsatisfiable
	// ResultCancelled means the cancel predicate or context fired.
	ResultCancelled
	// ResultError means solving aborted on an error, e.g. a constraint
	// contract violation detected under Options.CheckContracts.
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultSolution:
		return "solution"
	case ResultUnsatisfiable:
		return "unsatisfiable"
	case ResultCancelled:
		return "cancelled"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a Solve call. The input problem is never mutated;
// a Solution carries a derived problem whose domains are all singletons.
type Result struct {
	kind    ResultKind
	problem *Problem
	err     error

	// Stats holds diagnostic counters for the completed call.
	Stats Stats
}

// Kind returns the result tag.
func (r Result) Kind() ResultKind { return r.kind }

// Solution returns the solved problem of a ResultSolution, or nil.
func (r Result) Solution() *Problem { return r.problem }

// Err returns the error of a ResultError, or nil.
func (r Result) Err() error { return r.err }

// Solve decides satisfiability of p: it propagates to a fixed point, then
// labels variables depth-first, propagating after every tentative
// assignment and backtracking on wipeout by discarding the derived snapshot.
//
// With finite domains and sound, monotone constraints the procedure is a
// complete decision procedure, and for fixed inputs and options the outcome
// (including the explored path) is reproducible. Cancellation is cooperative:
// the context and Options.Cancel are polled between propagation passes and
// before each branch.
func Solve(ctx context.Context, p *Problem, opts *Options) Result {
	opts = opts.orDefault()
	s := &searcher{opts: opts}
	kind, solved := s.search(ctx, p, initialSeeds(p))
	r := Result{kind: kind, problem: solved, err: s.err, Stats: s.stats}
	if opts.Tracer != nil {
		opts.Tracer.WithFields(logrus.Fields{
			"result":     kind,
			"nodes":      s.stats.Nodes,
			"backtracks": s.stats.Backtracks,
			"revisions":  s.stats.Revisions,
		}).Debug("solve finished")
	}
	return r
}

func initialSeeds(p *Problem) []workItem {
	seeds := make([]workItem, p.NumConstraints())
	for i := range seeds {
		seeds[i] = workItem{c: ConstraintID(i), trigger: NoTrigger}
	}
	return seeds
}

type searcher struct {
	opts  *Options
	stats Stats
	err   error
}

// search propagates the seeded constraints, then branches. It returns the
// subtree's outcome; ResultUnsatisfiable means only that this subtree is
// exhausted, the caller keeps trying siblings.
func (s *searcher) search(ctx context.Context, p *Problem, seeds []workItem) (ResultKind, *Problem) {
	fixed, status, err := propagateSeeded(ctx, p, seeds, s.opts, &s.stats)
	if err != nil {
		s.err = err
		return ResultError, nil
	}
	switch status {
	case PropagationCancelled:
		return ResultCancelled, nil
	case PropagationInconsistent:
		return ResultUnsatisfiable, nil
	}
	if fixed.IsSolved() {
		return ResultSolution, fixed
	}

	v := s.selectVariable(fixed)
	values := s.orderValues(fixed, v)
	s.stats.Nodes++
	if s.opts.Tracer != nil {
		s.opts.Tracer.WithFields(logrus.Fields{
			"variable": v,
			"domain":   fixed.Domain(v).String(),
		}).Debug("branching")
	}

	for _, val := range values {
		if ctx.Err() != nil || s.opts.cancelled() {
			return ResultCancelled, nil
		}
		branch := fixed.Assign(v, val)
		branchSeeds := make([]workItem, 0, len(fixed.ConstraintsOn(v)))
		for _, cid := range fixed.ConstraintsOn(v) {
			branchSeeds = append(branchSeeds, workItem{c: cid, trigger: v})
		}
		kind, solved := s.search(ctx, branch, branchSeeds)
		if kind != ResultUnsatisfiable {
			return kind, solved
		}
		// Drop the branch snapshot; fixed remains authoritative.
		s.stats.Backtracks++
	}
	return ResultUnsatisfiable, nil
}

// selectVariable picks the next branching variable per the configured
// policy. MRV ties break by ascending id because candidates are scanned in
// id order and only strict improvements replace the incumbent.
func (s *searcher) selectVariable(p *Problem) VariableID {
	var candidates []VariableID
	for i := 0; i < p.NumVariables(); i++ {
		if p.Domain(VariableID(i)).Size() > 1 {
			candidates = append(candidates, VariableID(i))
		}
	}

	switch s.opts.VariableOrder {
	case VariableOrderSmallestID:
		return candidates[0]
	case VariableOrderCustom:
		if s.opts.VariableHint != nil {
			return s.opts.VariableHint(p, candidates)
		}
		if hint, ok := p.Semantics().(VariableOrderHint); ok {
			return hint.SelectVariable(p, candidates)
		}
	}

	best := candidates[0]
	bestSize := p.Domain(best).Size()
	for _, v := range candidates[1:] {
		if size := p.Domain(v).Size(); size < bestSize {
			best, bestSize = v, size
		}
	}
	return best
}

// orderValues lists v's candidate values in branching order.
func (s *searcher) orderValues(p *Problem, v VariableID) []Value {
	values := p.Domain(v).Values()
	if s.opts.ValueOrder == ValueOrderCustom {
		if s.opts.ValueHint != nil {
			return s.opts.ValueHint(p, v, values)
		}
		if hint, ok := p.Semantics().(ValueOrderHint); ok {
			return hint.OrderValues(p, v, values)
		}
	}
	return values
}

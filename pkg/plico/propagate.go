package plico

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// PropagationStatus reports how a propagation pass ended.
type PropagationStatus int

const (
	// PropagationFixedPoint means the worklist drained: no constraint can
	// prune further.
	PropagationFixedPoint PropagationStatus = iota
	// PropagationInconsistent means some constraint proved the problem
	// unsatisfiable. The caller's input problem is unchanged.
	PropagationInconsistent
	// PropagationCancelled means the cancel predicate or context fired
	// before a fixed point was reached.
	PropagationCancelled
)

// workItem is one pending revision: a constraint and the variable whose
// domain change triggered it (NoTrigger for initial seeding).
type workItem struct {
	c       ConstraintID
	trigger VariableID
}

// worklist is the propagator's pending-revision queue with per-item
// de-duplication: pushing an item equivalent to one already pending is a
// no-op, which bounds the queue by constraints × variables.
type worklist struct {
	items   []workItem
	pending map[workItem]struct{}
	lifo    bool
}

func newWorklist(policy WorklistPolicy, capacity int) *worklist {
	return &worklist{
		items:   make([]workItem, 0, capacity),
		pending: make(map[workItem]struct{}, capacity),
		lifo:    policy == WorklistLIFO,
	}
}

func (w *worklist) push(it workItem) {
	if _, ok := w.pending[it]; ok {
		return
	}
	w.pending[it] = struct{}{}
	w.items = append(w.items, it)
}

func (w *worklist) pop() (workItem, bool) {
	if len(w.items) == 0 {
		return workItem{}, false
	}
	var it workItem
	if w.lifo {
		it = w.items[len(w.items)-1]
		w.items = w.items[:len(w.items)-1]
	} else {
		it = w.items[0]
		w.items = w.items[1:]
	}
	delete(w.pending, it)
	return it, true
}

// Propagate drives every constraint of p to a consistent fixed point and
// returns the pruned problem. On inconsistency or cancellation the input
// problem is returned unchanged (it is immutable; all pruning happened in
// derived snapshots that are dropped). A non-nil error reports a contract
// violation detected under Options.CheckContracts; the status carries no
// meaning in that case.
func Propagate(ctx context.Context, p *Problem, opts *Options) (*Problem, PropagationStatus, error) {
	opts = opts.orDefault()
	seeds := make([]workItem, p.NumConstraints())
	for i := range seeds {
		seeds[i] = workItem{c: ConstraintID(i), trigger: NoTrigger}
	}
	var st Stats
	return propagateSeeded(ctx, p, seeds, opts, &st)
}

// propagateSeeded is the AC-3 worklist driver shared by Propagate and the
// search engine. seeds are enqueued in order; FIFO is the canonical drain
// order, LIFO is available via options. Each Changed outcome re-enqueues
// (constraint, variable) pairs for every other constraint scoping a modified
// variable.
func propagateSeeded(ctx context.Context, p *Problem, seeds []workItem, opts *Options, st *Stats) (*Problem, PropagationStatus, error) {
	input := p
	wl := newWorklist(opts.Worklist, len(seeds))
	for _, it := range seeds {
		wl.push(it)
	}

	for {
		if ctx.Err() != nil || opts.cancelled() {
			return input, PropagationCancelled, nil
		}
		it, ok := wl.pop()
		if !ok {
			return p, PropagationFixedPoint, nil
		}
		c := p.Constraint(it.c)
		out := c.Propagate(p, it.trigger)
		st.Revisions++
		if opts.CheckContracts {
			if err := checkContract(p, c, out); err != nil {
				return input, PropagationFixedPoint, fmt.Errorf("constraint %d (%s): %w", it.c, c, err)
			}
		}

		switch out.Kind() {
		case OutcomeNoChange:
			continue
		case OutcomeInconsistent:
			if opts.Tracer != nil {
				opts.Tracer.WithField("constraint", c.String()).Debug("propagation wipeout")
			}
			return input, PropagationInconsistent, nil
		case OutcomeChanged:
			next := out.Problem()
			for _, v := range out.Modified() {
				st.Prunings += p.Domain(v).Size() - next.Domain(v).Size()
				for _, cid := range p.ConstraintsOn(v) {
					if cid == it.c {
						continue
					}
					wl.push(workItem{c: cid, trigger: v})
				}
				if opts.Tracer != nil {
					opts.Tracer.WithFields(logrus.Fields{
						"constraint": c.String(),
						"variable":   v,
						"domain":     next.Domain(v).String(),
					}).Debug("domain pruned")
				}
			}
			p = next
		}
	}
}

// checkContract verifies a single revision against the constraint protocol:
// Changed outcomes must carry a derived problem and a non-empty modified set,
// the modified set must lie within the constraint's scope, and exactly the
// reported domains may differ from the input.
func checkContract(prev *Problem, c Constraint, out Outcome) error {
	if out.Kind() != OutcomeChanged {
		return nil
	}
	next := out.Problem()
	if next == nil {
		return fmt.Errorf("%w: Changed outcome carries no problem", ErrContractViolation)
	}
	if len(out.Modified()) == 0 {
		return fmt.Errorf("%w: Changed outcome reports no modified variables", ErrContractViolation)
	}
	inScope := make(map[VariableID]bool, len(c.Scope()))
	for _, v := range c.Scope() {
		inScope[v] = true
	}
	reported := make(map[VariableID]bool, len(out.Modified()))
	for _, v := range out.Modified() {
		if !inScope[v] {
			return fmt.Errorf("%w: modified variable %d outside scope", ErrContractViolation, v)
		}
		reported[v] = true
	}
	for i := 0; i < prev.NumVariables(); i++ {
		v := VariableID(i)
		same := prev.Domain(v).Equal(next.Domain(v))
		if reported[v] && same {
			return fmt.Errorf("%w: variable %d reported modified but unchanged", ErrContractViolation, v)
		}
		if !reported[v] && !same {
			return fmt.Errorf("%w: variable %d changed but not reported", ErrContractViolation, v)
		}
	}
	return nil
}

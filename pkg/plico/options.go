package plico

import "github.com/sirupsen/logrus"

// VariableOrderPolicy selects how the search engine picks the next variable
// to branch on.
type VariableOrderPolicy int

const (
	// VariableOrderMRV picks the unassigned variable with the smallest
	// domain, ties broken by ascending VariableID. The default.
	VariableOrderMRV VariableOrderPolicy = iota
	// VariableOrderSmallestID picks the unassigned variable with the
	// smallest id.
	VariableOrderSmallestID
	// VariableOrderCustom delegates to Options.VariableHint, or to the
	// problem semantics' VariableOrderHint, falling back to MRV when
	// neither is present.
	VariableOrderCustom
)

// ValueOrderPolicy selects the order in which branching tries a variable's
// candidate values.
type ValueOrderPolicy int

const (
	// ValueOrderNatural tries values in the domain's deterministic
	// iteration order. The default.
	ValueOrderNatural ValueOrderPolicy = iota
	// ValueOrderCustom delegates to Options.ValueHint, or to the problem
	// semantics' ValueOrderHint, falling back to natural order.
	ValueOrderCustom
)

// WorklistPolicy selects the order the propagator drains its worklist.
// The fixed point is the same either way; only the path differs.
type WorklistPolicy int

const (
	// WorklistFIFO pops the oldest pending item first. The default, and
	// the documented canonical ordering.
	WorklistFIFO WorklistPolicy = iota
	// WorklistLIFO pops the newest pending item first.
	WorklistLIFO
)

// Options configures a Solve call. The zero value is the default
// configuration; nil is accepted everywhere Options are taken.
type Options struct {
	VariableOrder VariableOrderPolicy
	ValueOrder    ValueOrderPolicy
	Worklist      WorklistPolicy

	// VariableHint and ValueHint back the Custom ordering policies.
	VariableHint func(p *Problem, candidates []VariableID) VariableID
	ValueHint    func(p *Problem, v VariableID, values []Value) []Value

	// Cancel is polled between propagation passes and before each branch.
	// When it reports true, Solve returns a Cancelled result. Timeouts are
	// implemented by wiring a clock into this predicate (or by cancelling
	// the context passed to Solve).
	Cancel func() bool

	// Seed is reserved for future randomised tie-breaking. The default
	// policies are deterministic and ignore it; it is carried so that
	// callers pinning options today keep identical behaviour when
	// randomised policies arrive.
	Seed int64

	// Tracer receives debug-level propagation and search events. Nil
	// disables tracing. Diagnostics never affect search.
	Tracer logrus.FieldLogger

	// CheckContracts enables per-revision verification of the constraint
	// propagation contract. Violations surface as Error results. Intended
	// for tests and for debugging custom constraints.
	CheckContracts bool
}

// DefaultOptions returns the default configuration: MRV variable order,
// natural value order, FIFO worklist, no cancellation, no tracing.
func DefaultOptions() *Options { return &Options{} }

func (o *Options) orDefault() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

func (o *Options) cancelled() bool {
	return o.Cancel != nil && o.Cancel()
}

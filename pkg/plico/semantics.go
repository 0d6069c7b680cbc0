package plico

import "fmt"

// StandardTagKind identifies a family of standard value enumerations.
type StandardTagKind int

const (
	// TagIntRange denotes the integers Lo..Hi inclusive.
	TagIntRange StandardTagKind = iota
	// TagBooleans denotes {false, true}.
	TagBooleans
)

// StandardTag names a standard value enumeration, e.g. "integers 1..9".
// Generic constraints and clients hand tags to DomainSemantics to build
// auxiliary domains without knowing the problem's value universe.
type StandardTag struct {
	Kind   StandardTagKind
	Lo, Hi int
}

// IntRange returns the tag for the integers lo..hi inclusive.
func IntRange(lo, hi int) StandardTag {
	return StandardTag{Kind: TagIntRange, Lo: lo, Hi: hi}
}

// Booleans returns the tag for {false, true}.
func Booleans() StandardTag {
	return StandardTag{Kind: TagBooleans}
}

// DomainSemantics parameterises the engine for a problem-specific value
// universe. Implementations must be pure and deterministic: the engine may
// call them any number of times in any order and expects identical answers.
type DomainSemantics interface {
	// EnumerateStandard maps a standard tag to a fresh domain over the
	// semantics' universe.
	EnumerateStandard(tag StandardTag) (Domain, error)

	// Describe renders a value for tracing. It never affects search.
	Describe(v Value) string
}

// VariableOrderHint is an optional DomainSemantics extension consulted when
// Options.VariableOrder is VariableOrderCustom and no explicit hint function
// was supplied. It picks the next variable to branch on from the unassigned
// candidates (all with domain size > 1, listed in ascending id order).
type VariableOrderHint interface {
	SelectVariable(p *Problem, candidates []VariableID) VariableID
}

// ValueOrderHint is the value-ordering counterpart of VariableOrderHint,
// consulted when Options.ValueOrder is ValueOrderCustom. It returns the
// candidate values for v in the order branching should try them.
type ValueOrderHint interface {
	OrderValues(p *Problem, v VariableID, values []Value) []Value
}

// StdSemantics is a ready-made DomainSemantics over the standard value
// universe. It is sufficient for problems whose values are integers,
// booleans, or symbols.
type StdSemantics struct {
	u *Universe
}

// NewStdSemantics creates a standard semantics with a fresh universe.
func NewStdSemantics() *StdSemantics {
	return &StdSemantics{u: NewUniverse()}
}

// Universe returns the backing value universe, for building domains directly.
func (s *StdSemantics) Universe() *Universe { return s.u }

// EnumerateStandard builds the domain named by tag. Integer ranges intern
// their new values ascending, so the resulting domains iterate numerically
// unless some of their values were interned earlier in another order.
func (s *StdSemantics) EnumerateStandard(tag StandardTag) (Domain, error) {
	switch tag.Kind {
	case TagIntRange:
		if tag.Lo > tag.Hi {
			return Domain{}, fmt.Errorf("%w: empty range %d..%d", ErrEmptyInitialDomain, tag.Lo, tag.Hi)
		}
		values := make([]Value, 0, tag.Hi-tag.Lo+1)
		for n := tag.Lo; n <= tag.Hi; n++ {
			values = append(values, Int(n))
		}
		return NewDomain(s.u, values...), nil
	case TagBooleans:
		return NewDomain(s.u, Bool(false), Bool(true)), nil
	default:
		return Domain{}, fmt.Errorf("unknown standard tag kind %d", tag.Kind)
	}
}

// Describe renders v via its String method.
func (s *StdSemantics) Describe(v Value) string { return v.String() }

// Symbols builds a domain of symbolic tags over the semantics' universe.
func (s *StdSemantics) Symbols(names ...string) Domain {
	values := make([]Value, len(names))
	for i, n := range names {
		values[i] = Symbol(n)
	}
	return NewDomain(s.u, values...)
}

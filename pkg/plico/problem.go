package plico

import "fmt"

// VariableID is a dense handle identifying a variable within a problem.
type VariableID int

// ConstraintID is a dense handle into a problem's constraint table.
type ConstraintID int

// Problem is an immutable CSP state: a variable domain table plus a shared
// constraint table and scope index. Search progresses by deriving new
// Problems (SetDomain, Assign) and discards them to backtrack; the parent
// value is never mutated, so any snapshot is safe to read concurrently.
//
// The domain table is copied on write while the constraint table, scope
// index, semantics, and the Domain bitsets themselves are shared between
// snapshots.
type Problem struct {
	sem     DomainSemantics
	domains []Domain
	cons    []Constraint
	scope   [][]ConstraintID
}

// Semantics returns the domain semantics the problem was built with.
func (p *Problem) Semantics() DomainSemantics { return p.sem }

// NumVariables returns the number of declared variables.
func (p *Problem) NumVariables() int { return len(p.domains) }

// NumConstraints returns the number of constraints.
func (p *Problem) NumConstraints() int { return len(p.cons) }

// Domain returns the current domain of v.
func (p *Problem) Domain(v VariableID) Domain { return p.domains[v] }

// Constraint returns the constraint with the given id.
func (p *Problem) Constraint(c ConstraintID) Constraint { return p.cons[c] }

// ConstraintsOn returns the ids of every constraint whose scope includes v.
// The returned slice is shared; callers must not modify it.
func (p *Problem) ConstraintsOn(v VariableID) []ConstraintID { return p.scope[v] }

// SetDomain returns a derived problem in which v's domain is d. The receiver
// is untouched.
func (p *Problem) SetDomain(v VariableID, d Domain) *Problem {
	domains := make([]Domain, len(p.domains))
	copy(domains, p.domains)
	domains[v] = d
	return &Problem{sem: p.sem, domains: domains, cons: p.cons, scope: p.scope}
}

// Assign returns a derived problem in which v's domain is narrowed to val.
// If val is not in v's current domain the derived domain is empty, the usual
// transient inconsistency signal.
func (p *Problem) Assign(v VariableID, val Value) *Problem {
	return p.SetDomain(v, p.domains[v].Retain(func(x Value) bool { return x.Equal(val) }))
}

// IsSolved reports whether every domain is a singleton.
func (p *Problem) IsSolved() bool {
	for _, d := range p.domains {
		if !d.IsSingleton() {
			return false
		}
	}
	return true
}

// Value returns v's assigned value when its domain is a singleton.
func (p *Problem) Value(v VariableID) (Value, bool) {
	return p.domains[v].Singleton()
}

// Assignment extracts the total assignment of a solved problem. Variables
// whose domains are not singletons are omitted.
func (p *Problem) Assignment() map[VariableID]Value {
	out := make(map[VariableID]Value, len(p.domains))
	for i, d := range p.domains {
		if v, ok := d.Singleton(); ok {
			out[VariableID(i)] = v
		}
	}
	return out
}

// Builder accumulates variable declarations and constraint instances and
// seals them into a Problem. Validation is eager: Seal refuses to produce a
// problem with an empty initial domain or a constraint whose scope references
// an undeclared variable.
type Builder struct {
	sem     DomainSemantics
	domains []Domain
	cons    []Constraint
}

// NewBuilder creates a builder over the given semantics.
func NewBuilder(sem DomainSemantics) *Builder {
	return &Builder{sem: sem}
}

// AddVariable declares a variable with the given initial domain and returns
// its id. Ids are assigned densely in declaration order.
func (b *Builder) AddVariable(d Domain) VariableID {
	b.domains = append(b.domains, d)
	return VariableID(len(b.domains) - 1)
}

// AddStandard declares a variable whose initial domain is the enumeration of
// a standard tag.
func (b *Builder) AddStandard(tag StandardTag) (VariableID, error) {
	d, err := b.sem.EnumerateStandard(tag)
	if err != nil {
		return 0, err
	}
	return b.AddVariable(d), nil
}

// AddConstraint registers a constraint instance and returns its id.
// Constraints must be immutable once added.
func (b *Builder) AddConstraint(c Constraint) ConstraintID {
	b.cons = append(b.cons, c)
	return ConstraintID(len(b.cons) - 1)
}

// Seal validates the accumulated declarations and returns the sealed
// Problem. The builder may not be reused after a successful Seal.
func (b *Builder) Seal() (*Problem, error) {
	for i, d := range b.domains {
		if d.bits == nil || d.IsEmpty() {
			return nil, fmt.Errorf("%w: variable %d", ErrEmptyInitialDomain, i)
		}
	}
	scope := make([][]ConstraintID, len(b.domains))
	for ci, c := range b.cons {
		vars := c.Scope()
		if len(vars) == 0 {
			return nil, fmt.Errorf("%w: constraint %d (%s) has empty scope", ErrMalformedProblem, ci, c)
		}
		for _, v := range vars {
			if v < 0 || int(v) >= len(b.domains) {
				return nil, fmt.Errorf("%w: constraint %d (%s) references unknown variable %d", ErrMalformedProblem, ci, c, v)
			}
			scope[v] = append(scope[v], ConstraintID(ci))
		}
	}
	return &Problem{sem: b.sem, domains: b.domains, cons: b.cons, scope: scope}, nil
}

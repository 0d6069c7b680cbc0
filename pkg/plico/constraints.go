package plico

import (
	"fmt"
	"strings"
)

// EqualConstraint forces two variables to take the same value. One revision
// replaces both domains with their intersection, so it is idempotent after a
// single pass.
type EqualConstraint struct {
	a, b VariableID
}

// Equal builds an equality constraint between a and b.
func Equal(a, b VariableID) *EqualConstraint {
	return &EqualConstraint{a: a, b: b}
}

// Scope returns the constrained variable pair.
func (c *EqualConstraint) Scope() []VariableID { return []VariableID{c.a, c.b} }

// Propagate intersects both domains. An empty intersection is inconsistent.
func (c *EqualConstraint) Propagate(p *Problem, trigger VariableID) Outcome {
	da, db := p.Domain(c.a), p.Domain(c.b)
	inter := da.Intersect(db)
	if inter.IsEmpty() {
		return Inconsistent()
	}
	var modified []VariableID
	next := p
	if inter.Size() != da.Size() {
		next = next.SetDomain(c.a, inter)
		modified = append(modified, c.a)
	}
	if inter.Size() != db.Size() {
		next = next.SetDomain(c.b, inter)
		modified = append(modified, c.b)
	}
	if len(modified) == 0 {
		return NoChange()
	}
	return Changed(next, modified...)
}

func (c *EqualConstraint) String() string {
	return fmt.Sprintf("(= v%d v%d)", c.a, c.b)
}

// NotEqualConstraint forbids two variables from taking the same value. It
// prunes only once either side is a singleton.
type NotEqualConstraint struct {
	a, b VariableID
}

// NotEqual builds a disequality constraint between a and b.
func NotEqual(a, b VariableID) *NotEqualConstraint {
	return &NotEqualConstraint{a: a, b: b}
}

// Scope returns the constrained variable pair.
func (c *NotEqualConstraint) Scope() []VariableID { return []VariableID{c.a, c.b} }

// Propagate removes a singleton side's value from the other side's domain.
func (c *NotEqualConstraint) Propagate(p *Problem, trigger VariableID) Outcome {
	var modified []VariableID
	next := p
	if val, ok := next.Domain(c.a).Singleton(); ok {
		if db := next.Domain(c.b); db.Contains(val) {
			db = db.Remove(val)
			if db.IsEmpty() {
				return Inconsistent()
			}
			next = next.SetDomain(c.b, db)
			modified = append(modified, c.b)
		}
	}
	if val, ok := next.Domain(c.b).Singleton(); ok {
		if da := next.Domain(c.a); da.Contains(val) {
			da = da.Remove(val)
			if da.IsEmpty() {
				return Inconsistent()
			}
			next = next.SetDomain(c.a, da)
			modified = append(modified, c.a)
		}
	}
	if len(modified) == 0 {
		return NoChange()
	}
	return Changed(next, modified...)
}

func (c *NotEqualConstraint) String() string {
	return fmt.Sprintf("(!= v%d v%d)", c.a, c.b)
}

// AllDifferentConstraint forces every scope variable to take a distinct
// value. Pruning is forward-checking plus singleton pruning: each singleton's
// value is removed from every other scope domain. The propagation loop does
// not re-enqueue a constraint for its own changes, so each invocation repeats
// the pass until it leaves no new singleton behind.
//
// Regin-style matching would prune more per call; the decomposition here
// matches the observable behaviour the solver's tests pin down.
type AllDifferentConstraint struct {
	vars []VariableID
}

// AllDifferent builds an all-different constraint over vars.
func AllDifferent(vars ...VariableID) *AllDifferentConstraint {
	scope := make([]VariableID, len(vars))
	copy(scope, vars)
	return &AllDifferentConstraint{vars: scope}
}

// Scope returns the constrained variables in declaration order.
func (c *AllDifferentConstraint) Scope() []VariableID { return c.vars }

// Propagate removes every singleton's value from the other scope domains,
// repeating while the pruning leaves new singletons behind. Two distinct
// singletons sharing a value, or a removal emptying a domain, is
// inconsistent.
func (c *AllDifferentConstraint) Propagate(p *Problem, trigger VariableID) Outcome {
	type fixed struct {
		v   VariableID
		val Value
	}
	next := p
	var modified []VariableID
	reported := make(map[VariableID]bool)
	for {
		var singletons []fixed
		for _, v := range c.vars {
			if val, ok := next.Domain(v).Singleton(); ok {
				for _, s := range singletons {
					if s.val.Equal(val) {
						return Inconsistent()
					}
				}
				singletons = append(singletons, fixed{v: v, val: val})
			}
		}

		pruning := false
		for _, v := range c.vars {
			d := next.Domain(v)
			pruned := d
			for _, s := range singletons {
				if s.v == v {
					continue
				}
				pruned = pruned.Remove(s.val)
			}
			if pruned.Size() == d.Size() {
				continue
			}
			if pruned.IsEmpty() {
				return Inconsistent()
			}
			next = next.SetDomain(v, pruned)
			pruning = true
			if !reported[v] {
				reported[v] = true
				modified = append(modified, v)
			}
		}
		if !pruning {
			break
		}
	}
	if len(modified) == 0 {
		return NoChange()
	}
	return Changed(next, modified...)
}

func (c *AllDifferentConstraint) String() string {
	parts := make([]string, len(c.vars))
	for i, v := range c.vars {
		parts[i] = fmt.Sprintf("v%d", v)
	}
	return fmt.Sprintf("(alldifferent %s)", strings.Join(parts, " "))
}

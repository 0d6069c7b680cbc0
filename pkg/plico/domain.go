package plico

import (
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Domain is the set of values a variable may still take. Domains are
// immutable: every mutating operation returns a fresh Domain and leaves the
// receiver untouched, so problem snapshots share domain structure freely.
//
// Iteration ascends the universe's interning order, which is stable for the
// lifetime of a problem. Domains only shrink during propagation; values
// reappear only by backtracking to an earlier problem snapshot.
type Domain struct {
	u    *Universe
	bits *bitset.BitSet
}

// NewDomain builds a domain over u containing the given values, interning any
// that are new. Values are interned in sorted order so that domains built
// from unsorted literals still iterate deterministically.
func NewDomain(u *Universe, values ...Value) Domain {
	sorted := make([]Value, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })
	bits := bitset.New(uint(u.Size() + len(sorted)))
	for _, v := range sorted {
		bits.Set(uint(u.Intern(v)))
	}
	return Domain{u: u, bits: bits}
}

// Universe returns the value universe this domain indexes into.
func (d Domain) Universe() *Universe { return d.u }

// Contains reports whether v is in the domain.
func (d Domain) Contains(v Value) bool {
	i, ok := d.u.Lookup(v)
	return ok && d.bits.Test(uint(i))
}

// Remove returns a domain without v. Removing an absent value returns an
// equivalent domain.
func (d Domain) Remove(v Value) Domain {
	i, ok := d.u.Lookup(v)
	if !ok || !d.bits.Test(uint(i)) {
		return d
	}
	bits := d.bits.Clone()
	bits.Clear(uint(i))
	return Domain{u: d.u, bits: bits}
}

// Retain returns a domain containing only the values for which pred holds.
func (d Domain) Retain(pred func(Value) bool) Domain {
	bits := d.bits.Clone()
	for i, ok := d.bits.NextSet(0); ok; i, ok = d.bits.NextSet(i + 1) {
		if !pred(d.u.Value(int(i))) {
			bits.Clear(i)
		}
	}
	return Domain{u: d.u, bits: bits}
}

// Intersect returns the intersection with other. Both domains must share a
// universe.
func (d Domain) Intersect(other Domain) Domain {
	return Domain{u: d.u, bits: d.bits.Intersection(other.bits)}
}

// Size returns the number of values in the domain.
func (d Domain) Size() int { return int(d.bits.Count()) }

// IsEmpty reports whether the domain has no values. An empty domain is a
// transient inconsistency signal, never part of a live problem.
func (d Domain) IsEmpty() bool { return d.bits.None() }

// IsSingleton reports whether exactly one value remains.
func (d Domain) IsSingleton() bool { return d.bits.Count() == 1 }

// Singleton returns the sole remaining value, if the domain is a singleton.
func (d Domain) Singleton() (Value, bool) {
	if d.bits.Count() != 1 {
		return nil, false
	}
	i, _ := d.bits.NextSet(0)
	return d.u.Value(int(i)), true
}

// Iter calls f for each value in deterministic (universe index) order.
func (d Domain) Iter(f func(Value)) {
	for i, ok := d.bits.NextSet(0); ok; i, ok = d.bits.NextSet(i + 1) {
		f(d.u.Value(int(i)))
	}
}

// Values returns the domain's values in iteration order.
func (d Domain) Values() []Value {
	out := make([]Value, 0, d.Size())
	d.Iter(func(v Value) { out = append(out, v) })
	return out
}

// Equal reports whether both domains hold exactly the same values. Domains
// over different universes are never equal. Comparison is by content, not by
// bitset length, since domains built at different universe sizes may carry
// different-length backing words.
func (d Domain) Equal(other Domain) bool {
	if d.u != other.u {
		return false
	}
	i, iok := d.bits.NextSet(0)
	j, jok := other.bits.NextSet(0)
	for iok && jok {
		if i != j {
			return false
		}
		i, iok = d.bits.NextSet(i + 1)
		j, jok = other.bits.NextSet(j + 1)
	}
	return iok == jok
}

// String renders the domain as a braced value list, for tracing.
func (d Domain) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	d.Iter(func(v Value) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(v.String())
	})
	sb.WriteByte('}')
	return sb.String()
}

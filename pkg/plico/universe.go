package plico

// Universe interns Values to dense indices so that every Domain over the same
// universe is a bitset over the same index space. Interning order is the
// deterministic iteration order of every domain built from the universe.
// EnumerateStandard interns a range's new values ascending, so a range whose
// values were not interned earlier iterates numerically; values interned
// earlier keep their earlier position.
//
// A Universe is append-only while a problem is under construction and frozen
// once every domain that search will ever produce has been built (search only
// narrows domains, it never introduces values).
type Universe struct {
	values []Value
	index  map[uint64][]int
}

// NewUniverse creates an empty value universe.
func NewUniverse() *Universe {
	return &Universe{index: make(map[uint64][]int)}
}

// Intern returns the dense index of v, adding it to the universe if absent.
func (u *Universe) Intern(v Value) int {
	if i, ok := u.Lookup(v); ok {
		return i
	}
	i := len(u.values)
	u.values = append(u.values, v)
	h := v.Hash()
	u.index[h] = append(u.index[h], i)
	return i
}

// Lookup returns the index of v and whether it is interned.
func (u *Universe) Lookup(v Value) (int, bool) {
	for _, i := range u.index[v.Hash()] {
		if u.values[i].Equal(v) {
			return i, true
		}
	}
	return -1, false
}

// Value returns the value interned at index i.
func (u *Universe) Value(i int) Value { return u.values[i] }

// Size returns the number of interned values.
func (u *Universe) Size() int { return len(u.values) }

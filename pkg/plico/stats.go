package plico

// Stats accumulates counters over a single Solve call. All counting is
// best-effort diagnostics; nothing in the engine branches on it.
type Stats struct {
	// Nodes is the number of branch points the search explored.
	Nodes int
	// Backtracks is the number of abandoned branches.
	Backtracks int
	// Revisions is the number of constraint Propagate invocations.
	Revisions int
	// Prunings is the total number of values removed across all revisions.
	Prunings int
}

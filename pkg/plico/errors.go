package plico

import "errors"

// Construction and contract errors. Inconsistency, unsatisfiability, and
// cancellation are expected outcomes carried by Result values, never errors.
var (
	// ErrMalformedProblem indicates a constraint references a variable the
	// problem does not declare, or an empty constraint scope.
	ErrMalformedProblem = errors.New("malformed problem")

	// ErrEmptyInitialDomain indicates a variable was declared with no values.
	ErrEmptyInitialDomain = errors.New("variable has empty initial domain")

	// ErrContractViolation indicates a constraint broke the propagation
	// contract: it reported Changed with no modified variables, touched a
	// variable outside its scope, or misreported which domains changed.
	// Detected only when Options.CheckContracts is set.
	ErrContractViolation = errors.New("constraint violated propagation contract")
)

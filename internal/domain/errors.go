package domain

import "fmt"

// InvalidInputError reports a classify() call with a negative or non-finite
// input value. Field names the violated precondition.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid classification input: %s = %v", e.Field, e.Value)
}

// UnclassifiedError reports an input that no rule contained. For a validated
// rule set this is a contract violation (the validator was bypassed or the
// input escaped precondition checks), never a condition to paper over with a
// default segment.
type UnclassifiedError struct {
	EmployeeCount int
	GMV           float64
}

func (e *UnclassifiedError) Error() string {
	return fmt.Sprintf("no rule matched employee_count=%d gmv=%v", e.EmployeeCount, e.GMV)
}

// MatrixParseError reports an unparseable band label or cell in an authored
// matrix. Compilation halts on the first one; skipping a cell would silently
// open a gap.
type MatrixParseError struct {
	Axis  string // "employee" or "gmv"
	Index int    // band position on that axis
	Label string
	Cause string
}

func (e *MatrixParseError) Error() string {
	return fmt.Sprintf("%s band %d: cannot parse label %q: %s", e.Axis, e.Index, e.Label, e.Cause)
}

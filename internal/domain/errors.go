package domain

import "fmt"

// DataIntegrityError marks input data the engine cannot trust: an ambiguous
// catalog or registry lookup, an unknown category, an unparseable ledger
// amount. It is distinct from a business rejection, which is a normal Result;
// an integrity fault must surface as an operational failure, never as a
// subsidy decision.
type DataIntegrityError struct {
	Op     string
	Detail string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: %s: %s", e.Op, e.Detail)
}

// MissingDataError reports that a required source document for the case was
// absent from the data drop.
type MissingDataError struct {
	Source string
	Path   string
	Err    error
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing %s data at %s: %v", e.Source, e.Path, e.Err)
}

func (e *MissingDataError) Unwrap() error { return e.Err }

package numbering

import "errors"

var (
	// ErrCounterNotFound is returned by a CounterStore when no value exists for a key.
	ErrCounterNotFound = errors.New("counter not found")

	// ErrCounterNotSaved is wrapped into the error returned by Numberer.Next when
	// the new count could not be persisted. The generated number is still returned.
	ErrCounterNotSaved = errors.New("document counter was not saved")

	// ErrUnknownKind is returned for sequence kinds other than invoice and proposal.
	ErrUnknownKind = errors.New("unknown document kind")
)

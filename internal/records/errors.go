package records

import "errors"

var (
	// ErrCorruptStore indicates an existing store file could not be parsed
	// or carries an unexpected schema version. The file is left untouched.
	ErrCorruptStore = errors.New("records: store file is corrupt")

	// ErrPersistence indicates the store file could not be written.
	ErrPersistence = errors.New("records: store write failed")
)

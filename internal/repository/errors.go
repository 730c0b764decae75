package repository

import "fmt"

// PersistenceError wraps any store-level failure, carrying the underlying
// driver message. The gateway never retries; callers decide whether the
// failure aborts (report creation) or degrades (narrative update, admin
// mirror write). Unwrap keeps errors.Is(err, pgx.ErrNoRows) working.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

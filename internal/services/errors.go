package services

import "fmt"

// StorageError marks a failure in the persistence layer. It is never retried;
// the HTTP layer reports it as an internal error.
type StorageError struct {
	Op  string
	Err error
}

func (err *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", err.Op, err.Err)
}

func (err *StorageError) Unwrap() error {
	return err.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

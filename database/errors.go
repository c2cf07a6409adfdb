package database

import (
	"errors"
	"log"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned when a conditional write matched nothing.
	ErrConflict = errors.New("document changed or precondition failed")
)

// LogIndexError reports a failed index build without stopping startup.
func LogIndexError(collection string, err error) {
	log.Printf("failed to create indexes on %s: %v", collection, err)
}

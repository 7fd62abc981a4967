package inmemory

import "errors"

// Book errors
var (
	// ErrEntryNotFound ...
	ErrEntryNotFound = errors.New("book entry not found")
)

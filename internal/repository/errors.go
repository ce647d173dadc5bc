package repository

import "errors"

var (
	// ErrListingNotFound — объявление не найдено в каталоге.
	ErrListingNotFound = errors.New("listing not found")
)

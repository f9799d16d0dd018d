package service

import (
	"errors"

	"github.com/gatherhall/gatherhall/internal/repository"
)

// mapStoreErr translates the storage layer's generic not-found into the
// event-scoped sentinel; other errors pass through wrapped by the caller.
func mapStoreErr(err error) error {
	return replaceNotFound(err, ErrEventNotFound)
}

// replaceNotFound swaps repository.ErrNotFound for a resource-scoped
// sentinel so handlers can report which resource was missing.
func replaceNotFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}

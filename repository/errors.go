package repository

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrOutOfStock is returned when a reservation would drive a
	// product's stock below zero.
	ErrOutOfStock = errors.New("insufficient stock")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate document")
)

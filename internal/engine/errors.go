package engine

import "errors"

var (
	// ErrForeignBody indicates a handle created by a different world or adapter.
	ErrForeignBody = errors.New("engine: body does not belong to this world")

	// ErrDestroyed indicates a handle used after its body was destroyed.
	ErrDestroyed = errors.New("engine: body already destroyed")

	// ErrUnknownEngine indicates Open was called with an unregistered name.
	ErrUnknownEngine = errors.New("engine: unknown engine")

	// ErrUnsupportedShape indicates a fixture shape the adapter cannot build.
	ErrUnsupportedShape = errors.New("engine: unsupported shape")
)

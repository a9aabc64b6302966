package service

import "errors"

var (
	// ErrGameNotFound is returned when a game id is neither scheduled nor in the game log.
	ErrGameNotFound = errors.New("game not found")
	// ErrNoStore is returned when the service has no dataset store.
	ErrNoStore = errors.New("no dataset store configured")
)

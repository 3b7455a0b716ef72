package player

import "errors"

// ErrPlayerNotFound is returned when a player id is not in the store.
var ErrPlayerNotFound = errors.New("player not found")

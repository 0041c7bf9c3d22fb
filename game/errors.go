package game

import "errors"

var (
	// ErrAlreadyInGame rejects a second concurrent session for one player.
	ErrAlreadyInGame = errors.New("you are already in a game")

	// ErrNotInGame rejects reveal/flag/stop for a player with no session.
	ErrNotInGame = errors.New("you are not in a game")

	// ErrNotSessionOwner rejects a stop request from anyone but the owner.
	ErrNotSessionOwner = errors.New("only the session owner may stop the game")
)

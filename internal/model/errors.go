package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrNoPlayers    = errors.New("game needs at least one player")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found in game")

	// Claim errors
	ErrAlreadyClaimed     = errors.New("achievement already claimed")
	ErrUnknownAchievement = errors.New("unknown achievement type")
)

package model

import "errors"

// Common errors used across the application
var (
	// Backend errors
	ErrBackendUnavailable = errors.New("backend unavailable")

	// Player errors
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPlayerCreationFailed = errors.New("player creation failed")

	// Room errors
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomAlreadyPlaying = errors.New("room is already playing")
	ErrRoomFull           = errors.New("room is full")
	ErrNotInRoom          = errors.New("player is not in this room")
	ErrWrongMode          = errors.New("operation not valid for this game mode")
	ErrInvalidMode        = errors.New("invalid game mode")
	ErrWordTooShort       = errors.New("word is too short")

	// Guess errors
	ErrInvalidLetter = errors.New("invalid letter")

	// Progress errors
	ErrProgressNotFound = errors.New("progress record not found")

	// Word list errors
	ErrUnknownCategory = errors.New("unknown word category")
)

package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerOffline  = errors.New("player is not online")

	// Profile store errors
	ErrProfileNotFound = errors.New("player profile not found")
	ErrStoreNotReady   = errors.New("profile store failed to initialize")

	// Verification errors
	ErrInvalidCode = errors.New("invalid or expired verification code")

	// Host bridge errors
	ErrBridgeBusy   = errors.New("host task queue is saturated")
	ErrBridgeClosed = errors.New("host task bridge is shut down")
)

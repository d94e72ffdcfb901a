package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNoEligibleParticipants    = "no eligible participants"
	ErrMsgDrawAlreadyInProgress     = "a draw is already in progress"
	ErrMsgPersistenceFailure        = "persistence failure"
	ErrMsgChannelUnavailable        = "change channel unavailable"
	ErrMsgAnimationTargetMissing    = "animation target missing"
	ErrMsgNotificationDispatch      = "notification dispatch failed"
	ErrMsgHistoryNotFound           = "history record not found"
	ErrMsgInvalidAnimationMode      = "invalid animation mode"
	ErrMsgInvalidTrackConfig        = "invalid track config"
	ErrMsgStateNotFound             = "lottery state not found"
	ErrMsgInvalidInput              = "invalid input"
	ErrMsgNotificationsNotAvailable = "notifications not configured"
	ErrMsgDrawLockExpired           = "draw lock expired and was released"
)

// Common domain errors.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Draw rejections, surfaced to the admin and never retried
	ErrNoEligibleParticipants = errors.New(ErrMsgNoEligibleParticipants)
	ErrDrawAlreadyInProgress  = errors.New(ErrMsgDrawAlreadyInProgress)

	// Storage
	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)
	ErrStateNotFound      = errors.New(ErrMsgStateNotFound)
	ErrHistoryNotFound    = errors.New(ErrMsgHistoryNotFound)

	// Push channel down; displays keep polling
	ErrChannelUnavailable = errors.New(ErrMsgChannelUnavailable)

	// Display side
	ErrAnimationTargetMissing = errors.New(ErrMsgAnimationTargetMissing)

	// Notifications never fail a draw
	ErrNotificationDispatchFailure = errors.New(ErrMsgNotificationDispatch)
	ErrNotificationsNotAvailable   = errors.New(ErrMsgNotificationsNotAvailable)

	// Input
	ErrInvalidInput         = errors.New(ErrMsgInvalidInput)
	ErrInvalidAnimationMode = errors.New(ErrMsgInvalidAnimationMode)
	ErrInvalidTrackConfig   = errors.New(ErrMsgInvalidTrackConfig)
)

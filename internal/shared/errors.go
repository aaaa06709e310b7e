package shared

import "fmt"

var (
	// Validation errors: the caller supplied invalid or missing input.
	// These are raised before any store access happens.
	ErrValidation     = fmt.Errorf("invalid input")
	ErrMissingUserID  = fmt.Errorf("%w: user id is required", ErrValidation)
	ErrBadPlaylistID  = fmt.Errorf("%w: playlist id must be positive", ErrValidation)
	ErrNoFavorites    = fmt.Errorf("%w: user has no favorites playlist", ErrValidation)

	// Not-found errors: a referenced entity does not exist.
	ErrNotFound         = fmt.Errorf("not found")
	ErrTrackNotFound    = fmt.Errorf("track %w", ErrNotFound)
	ErrPlaylistNotFound = fmt.Errorf("playlist %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	// Conflict errors: the operation would violate a domain invariant.
	ErrConflict          = fmt.Errorf("conflict")
	ErrDuplicateFavorite = fmt.Errorf("%w: track already in favorites", ErrConflict)
	ErrDuplicateTrack    = fmt.Errorf("%w: track already in playlist", ErrConflict)
	ErrDuplicatePlaylist = fmt.Errorf("%w: playlist name already exists", ErrConflict)
)

package interest

import "errors"

// Domain errors. Messages are user-facing: the frontend alerts them verbatim.
var (
	ErrInvalidAmount           = errors.New("Please enter a valid investment amount.")
	ErrDuplicateActiveInterest = errors.New("An active interest already exists for this financing.")
	ErrAlreadyExpressed        = errors.New("You have already expressed interest in this financing.")
	ErrInvalidState            = errors.New("This interest has been withdrawn and can no longer be changed.")
	ErrNotFound                = errors.New("We could not find that interest record.")
	ErrFinancingNotFound       = errors.New("We could not find that financing.")
	ErrFinancingClosed         = errors.New("This financing is no longer accepting investment interest.")
)

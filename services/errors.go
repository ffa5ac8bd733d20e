package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns wraps one of them, so callers
// classify with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("requested resource not found")
	ErrConflict   = errors.New("conflict with existing state")
	ErrState      = errors.New("operation not allowed in the current state")
	ErrPermission = errors.New("operation not allowed for the current user")
)

var (
	ErrCompetitionNotFound = fmt.Errorf("%w: competition not found", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("%w: participant not found", ErrNotFound)
	ErrMatchNotFound       = fmt.Errorf("%w: match not found", ErrNotFound)
	ErrEventNotFound       = fmt.Errorf("%w: scoring event not found", ErrNotFound)
	ErrCardNotFound        = fmt.Errorf("%w: card event not found", ErrNotFound)
	ErrCompetitorNotFound  = fmt.Errorf("%w: competitor not found", ErrNotFound)

	ErrNotEnoughParticipants = fmt.Errorf("%w: at least two participants are required", ErrValidation)
	ErrInvalidScores         = fmt.Errorf("%w: scores must be non-negative and supplied together", ErrValidation)
	ErrSlotsNotFilled        = fmt.Errorf("%w: both match slots must be filled", ErrValidation)
	ErrDrawNotAllowed        = fmt.Errorf("%w: draws are not allowed", ErrValidation)
	ErrInvalidScoringRule    = fmt.Errorf("%w: invalid scoring rule", ErrValidation)
	ErrInvalidEvent          = fmt.Errorf("%w: invalid scoring event", ErrValidation)
	ErrInvalidCard           = fmt.Errorf("%w: invalid card event", ErrValidation)
	ErrNotOnRoster           = fmt.Errorf("%w: competitor is not on the required roster", ErrValidation)

	ErrScheduleAlreadyGenerated = fmt.Errorf("%w: schedule already generated", ErrConflict)
	ErrKnockoutAlreadySeeded    = fmt.Errorf("%w: knockout stage already seeded", ErrConflict)
	ErrAlreadyOnRoster          = fmt.Errorf("%w: competitor is already on the roster", ErrConflict)
	ErrOnAnotherRoster          = fmt.Errorf("%w: competitor already plays for another participant in this competition", ErrConflict)

	ErrMatchAlreadyFinished = fmt.Errorf("%w: match already finished", ErrState)
	ErrMatchCanceled        = fmt.Errorf("%w: match was canceled", ErrState)
	ErrScheduleNotGenerated = fmt.Errorf("%w: schedule not generated", ErrState)
	ErrGroupStageIncomplete = fmt.Errorf("%w: group stage is not complete", ErrState)
	ErrCompetitionClosed    = fmt.Errorf("%w: competition is closed", ErrState)
)

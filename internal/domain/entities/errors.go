package entities

import (
	"errors"
	"fmt"
)

// Failure kinds shared by the domain packages. Callers match with errors.Is;
// detail is added with fmt.Errorf("%w: ...").
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrIncompleteOffer        = errors.New("incomplete offer")
	ErrValidation             = errors.New("validation error")

	// ErrConcurrentModification is also an ErrInvalidStateTransition: the
	// conditional write found the quotation in another state.
	ErrConcurrentModification = fmt.Errorf("%w: concurrent modification", ErrInvalidStateTransition)
)

package usecase

import (
	"errors"
	"fmt"

	"cotacao_service/internal/domain/entities"
)

var (
	ErrQuotationNotFound  = fmt.Errorf("quotation %w", entities.ErrNotFound)
	ErrSupplierNotFound   = fmt.Errorf("supplier %w", entities.ErrNotFound)
	ErrLineOfferNotFound  = fmt.Errorf("line offer %w", entities.ErrNotFound)
	ErrSavingNotFound     = fmt.Errorf("saving record %w", entities.ErrNotFound)
	ErrInvalidQuotationID = fmt.Errorf("%w: invalid quotation id", entities.ErrValidation)
	ErrInvalidActor       = fmt.Errorf("%w: invalid actor", entities.ErrValidation)
	ErrSupplierExists     = fmt.Errorf("%w: supplier already added", entities.ErrValidation)
	ErrQuotationLocked    = fmt.Errorf("%w: quotation is not editable in its current status", entities.ErrInvalidStateTransition)

	// ErrForbidden is returned when an actor edits a quotation it does not own.
	ErrForbidden = errors.New("forbidden")
)

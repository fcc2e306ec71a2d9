package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/daftarhq/daftar/internal/apperrors"
	"github.com/daftarhq/daftar/internal/utils/accounting"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs tag validation and the double-entry balance check. Tag
// failures wrap apperrors.ErrValidation; an unbalanced line set wraps
// apperrors.ErrUnbalanced.
func (r CreateTransactionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := accounting.ValidateBalanced(r.ToDomainLines()); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrUnbalanced, err.Error())
	}
	return nil
}

// Validate runs tag validation on a fee rule request.
func (r UpsertFeeRuleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// Validate runs tag validation on a fee computation request.
func (r ComputeFeeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

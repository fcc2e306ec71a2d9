package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that a candidate transaction's debit and credit totals differ.
var ErrUnbalanced = errors.New("transaction lines do not balance")

// ErrNoFeeRule indicates that no active fee rule is mapped for a payment
// method and bank as of the requested date. Callers decide whether to
// prompt the user to configure one.
var ErrNoFeeRule = errors.New("no fee rule mapped")

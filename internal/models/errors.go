package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountNameNotUnique  = errors.New("the account name must be unique")
	ErrBinderNameNotUnique   = errors.New("the binder name must be unique")
	ErrEnvelopeNameNotUnique = errors.New("the envelope name must be unique per binder")

	ErrAmountNotPositive     = errors.New("the amount must be larger than zero")
	ErrCashFlowWithoutAmount = errors.New("cash flow can only be enabled with a cash flow amount larger than zero")
	ErrTargetAmountNegative  = errors.New("the target amount must not be negative")
)

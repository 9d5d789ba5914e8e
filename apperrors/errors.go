// Package apperrors defines the error kinds shared by services and
// controllers. Validation failures never reach the store; persistence
// failures wrap the driver error; partial-operation failures name the step
// that succeeded and the step that did not so an operator can reconcile.
package apperrors

import (
	"errors"
	"fmt"
)

// Common sentinels.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrRoomUnavailable    = errors.New("room is not available for booking")
	ErrNotCheckedIn       = errors.New("booking is not checked in")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrRefExhausted       = errors.New("booking reference collisions exhausted retries")
	ErrGuestLocked        = errors.New("guest record is settled; only contact fields may change")
	ErrOverpayment        = errors.New("amount paid would exceed total amount")
)

// Validation carries field-level messages for rejected form input.
type Validation struct {
	Fields map[string]string
}

func (v *Validation) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v.Fields))
}

// NewValidation builds a Validation error from a field->message map.
func NewValidation(fields map[string]string) *Validation {
	return &Validation{Fields: fields}
}

// AsValidation unwraps err into a Validation error if it is one.
func AsValidation(err error) (*Validation, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Persistence marks a failed remote create/update/query.
type Persistence struct {
	Op  string
	Err error
}

func (p *Persistence) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", p.Op, p.Err)
}

func (p *Persistence) Unwrap() error { return p.Err }

// NewPersistence wraps a store error with the operation it broke.
func NewPersistence(op string, err error) *Persistence {
	return &Persistence{Op: op, Err: err}
}

// PartialOperation records a dependent step failing after an earlier step
// committed. It is not compensated automatically.
type PartialOperation struct {
	Op     string
	Done   string
	Failed string
	Err    error
}

func (p *PartialOperation) Error() string {
	return fmt.Sprintf("%s partially applied: %s succeeded but %s failed: %v", p.Op, p.Done, p.Failed, p.Err)
}

func (p *PartialOperation) Unwrap() error { return p.Err }

// AsPartial unwraps err into a PartialOperation if it is one.
func AsPartial(err error) (*PartialOperation, bool) {
	var p *PartialOperation
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

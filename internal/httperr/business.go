package httperr

import (
	"errors"
	"fmt"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ======================================================
// Erros de domínio tipados
// ======================================================

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NotFoundOf(entity string, id uint) error {
	return NotFoundError{Entity: entity, ID: id}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

type SlotUnavailableError struct {
	Date string
	Time string
}

func (e SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot %s %s is not available", e.Date, e.Time)
}

func IsSlotUnavailable(err error) bool {
	var su SlotUnavailableError
	return errors.As(err, &su)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type ConcurrentModificationError struct {
	Err error
}

func (e ConcurrentModificationError) Error() string {
	return fmt.Sprintf("concurrent modification: %v", e.Err)
}

func (e ConcurrentModificationError) Unwrap() error {
	return e.Err
}

func IsConcurrentModification(err error) bool {
	var cm ConcurrentModificationError
	return errors.As(err, &cm)
}

// ReassignmentError reports a promotion that failed for a reason other than
// the slot being taken. The cancellation that triggered it is already committed.
type ReassignmentError struct {
	WaitingListEntryID uint
	Err                error
}

func (e ReassignmentError) Error() string {
	return fmt.Sprintf("waiting list entry %d: reassignment failed: %v", e.WaitingListEntryID, e.Err)
}

func (e ReassignmentError) Unwrap() error {
	return e.Err
}

package bbs

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is against the typed errors below.
var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidUnit     = errors.New("invalid unit value")
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownCode     = errors.New("unknown design code")
)

// OptionsIndex is the ItemIndex reported for errors in the schedule options.
const OptionsIndex = -1

// ItemError locates a failure on one bar group.
type ItemError struct {
	ItemIndex int
	MemberID  string
	Field     string
	Reason    string
}

func (e *ItemError) locate(index int, memberID string) {
	e.ItemIndex = index
	e.MemberID = memberID
}

func (e *ItemError) describe(kind string) string {
	where := "schedule"
	if e.ItemIndex != OptionsIndex {
		where = fmt.Sprintf("item %d", e.ItemIndex)
		if e.MemberID != "" {
			where += fmt.Sprintf(" (%s)", e.MemberID)
		}
	}
	return fmt.Sprintf("%s: %s: %s %s", where, kind, e.Field, e.Reason)
}

// ValidationError reports a missing or invalid required field.
type ValidationError struct{ ItemError }

func (e *ValidationError) Error() string        { return e.describe("validation error") }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidUnitError reports a non-finite or negative numeric input.
type InvalidUnitError struct {
	ItemError
	Value float64
}

func (e *InvalidUnitError) Error() string        { return e.describe("invalid unit value") }
func (e *InvalidUnitError) Is(target error) bool { return target == ErrInvalidUnit }

// InvalidGeometryError reports a resolved cutting length that is not positive.
type InvalidGeometryError struct {
	ItemError
	CuttingLengthM float64
}

func (e *InvalidGeometryError) Error() string        { return e.describe("invalid geometry") }
func (e *InvalidGeometryError) Is(target error) bool { return target == ErrInvalidGeometry }

// UnknownCodeError reports an unsupported design code.
type UnknownCodeError struct {
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown design code %q (supported: IS, NBC, ACI)", e.Code)
}
func (e *UnknownCodeError) Is(target error) bool { return target == ErrUnknownCode }

// Locate returns the item index, member id and field of an engine error.
// ok is false for errors that are not tied to a field.
func Locate(err error) (item ItemError, ok bool) {
	var (
		ve *ValidationError
		ue *InvalidUnitError
		ge *InvalidGeometryError
	)
	switch {
	case errors.As(err, &ve):
		return ve.ItemError, true
	case errors.As(err, &ue):
		return ue.ItemError, true
	case errors.As(err, &ge):
		return ge.ItemError, true
	}
	return ItemError{}, false
}

type locator interface {
	locate(index int, memberID string)
}

// atItem stamps the item position on a located error.
func atItem(err error, index int, memberID string) error {
	var l locator
	if errors.As(err, &l) {
		l.locate(index, memberID)
	}
	return err
}

func validationErr(field, reason string) error {
	return &ValidationError{ItemError{ItemIndex: OptionsIndex, Field: field, Reason: reason}}
}

func unitErr(field string, value float64) error {
	reason := "must be a finite, non-negative number"
	return &InvalidUnitError{ItemError: ItemError{ItemIndex: OptionsIndex, Field: field, Reason: reason}, Value: value}
}

func geometryErr(field string, cutting float64, reason string) error {
	return &InvalidGeometryError{
		ItemError:      ItemError{ItemIndex: OptionsIndex, Field: field, Reason: reason},
		CuttingLengthM: cutting,
	}
}

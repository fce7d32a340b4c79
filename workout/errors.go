package workout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownActivityCode is returned when a package carries a code the factory does not recognise.
	ErrUnknownActivityCode = errors.New("unknown activity code")
	// ErrInvalidArgumentCount is returned when a package carries too few or too many values.
	ErrInvalidArgumentCount = errors.New("invalid argument count")
	// ErrInvalidParameter is returned when a value would make a computation divide by zero.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnimplementedCalorieModel is the panic value raised when calories are requested
	// from the shared base of the workout types.
	ErrUnimplementedCalorieModel = errors.New("calorie model not implemented")
)

// UnknownActivityCodeError reports the offending code together with the codes the factory accepts.
type UnknownActivityCodeError struct {
	Code  string
	Valid []string
}

func (e *UnknownActivityCodeError) Error() string {
	return fmt.Sprintf("unknown activity code %q (valid: %s)", e.Code, strings.Join(e.Valid, ", "))
}

func (e *UnknownActivityCodeError) Unwrap() error {
	return ErrUnknownActivityCode
}

// InvalidArgumentCountError reports a mismatch between the values supplied and the values a workout type needs.
type InvalidArgumentCountError struct {
	Code string
	Want int
	Got  int
}

func (e *InvalidArgumentCountError) Error() string {
	return fmt.Sprintf("activity %s expects %d values, got %d", e.Code, e.Want, e.Got)
}

func (e *InvalidArgumentCountError) Unwrap() error {
	return ErrInvalidArgumentCount
}

// InvalidParameterError names the field that failed validation and why.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s %s, got %v", e.Field, e.Reason, e.Value)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Package errors provides a small categorized error type used at the settings
// and storage boundaries.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category classifies an error by the boundary it came from.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryStorage    Category = "storage"
	CategoryFeedback   Category = "feedback"
	CategoryInternal   Category = "internal"
)

// Error is a categorized error with an optional cause.
type Error struct {
	Category Category
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error without a cause.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Wrap creates an Error wrapping cause.
func Wrap(err error, category Category, message string) *Error {
	return &Error{Category: category, Message: message, Cause: err}
}

// Validation wraps err as a validation failure.
func Validation(err error) *Error {
	return Wrap(err, CategoryValidation, "invalid settings")
}

// IsCategory reports whether any error in the chain has the given category.
func IsCategory(err error, category Category) bool {
	var typed *Error
	if stderrors.As(err, &typed) {
		return typed.Category == category
	}
	return false
}

// GetCategory returns the category of the first Error in the chain, or
// CategoryInternal.
func GetCategory(err error) Category {
	var typed *Error
	if stderrors.As(err, &typed) {
		return typed.Category
	}
	return CategoryInternal
}

package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors
var (
	ErrBlueprintNotFound      = errors.New("blueprint not found")
	ErrBlueprintAlreadyExists = errors.New("blueprint already exists")
)

// BlueprintError carries a caller-facing message while unwrapping to a
// domain sentinel, so errors.Is keeps working across layers.
type BlueprintError struct {
	Message string
	Err     error
}

func (e *BlueprintError) Error() string {
	return e.Message
}

func (e *BlueprintError) Unwrap() error {
	return e.Err
}

// Error constructors

func NewBlueprintNotFoundError(author, name string) *BlueprintError {
	return &BlueprintError{
		Message: fmt.Sprintf("Blueprint not found: %s/%s", author, name),
		Err:     ErrBlueprintNotFound,
	}
}

func NewAuthorNotFoundError(author string) *BlueprintError {
	return &BlueprintError{
		Message: "No blueprints for author: " + author,
		Err:     ErrBlueprintNotFound,
	}
}

func NewBlueprintAlreadyExistsError(author, name string) *BlueprintError {
	return &BlueprintError{
		Message: fmt.Sprintf("Blueprint already exists: %s/%s", author, name),
		Err:     ErrBlueprintAlreadyExists,
	}
}

// ToHTTPStatus maps a domain error to its HTTP status
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBlueprintNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBlueprintAlreadyExists):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

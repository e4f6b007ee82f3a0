package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that the store is unreachable or a store operation failed.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that the requested service is not registered or has no live instance.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrConfiguration means that the process configuration or descriptor is malformed.
	ErrConfiguration = "configuration_error"
	// ErrRegistration means that a registration is invalid or conflicts with the stored service metadata.
	ErrRegistration = "registration_error"
	// ErrInvalidAddress means that a UMF "to" address does not match the address grammar.
	ErrInvalidAddress = "invalid_address"
	// ErrUnreachableInstance means that a direct message had no subscriber on the instance channel.
	ErrUnreachableInstance = "unreachable_instance"
)

// MyError represents an error within the context of myfabric services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

// NewServiceNotFoundError creates the discovery miss error for the named service.
func NewServiceNotFoundError(name string) *MyError {
	return NewMyError(ErrEntityNotFound, fmt.Sprintf("Can't find %s service", name), nil)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

func NewConfigurationError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrConfiguration, message, inner)
}

func NewRegistrationError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrRegistration, message, inner)
}

func NewInvalidAddressError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInvalidAddress, message, inner)
}

func NewUnreachableInstanceError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrUnreachableInstance, message, inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a myfabric error, or nil if it is not a myfabric error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsConfigurationError(err error) bool {
	return IsMyError(err, ErrConfiguration)
}

func IsRegistrationError(err error) bool {
	return IsMyError(err, ErrRegistration)
}

func IsInvalidAddressError(err error) bool {
	return IsMyError(err, ErrInvalidAddress)
}

func IsUnreachableInstanceError(err error) bool {
	return IsMyError(err, ErrUnreachableInstance)
}

// Package apperrors defines the error taxonomy shared by services,
// handlers and the resilience wrapper. Auth, permission and not-found
// failures are terminal; everything else is treated as transient.
package apperrors

import (
	"errors"
	"fmt"
	"regexp"
)

type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func NewAuth(msg string) error       { return &AuthError{Msg: msg} }
func NewPermission(msg string) error { return &PermissionError{Msg: msg} }
func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
func NewConflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

func IsPermission(err error) bool {
	var e *PermissionError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

var nonRetriablePattern = regexp.MustCompile(`(?i)unauthorized|forbidden|not found|invalid|validation`)

// Retriable reports whether a failed remote call is worth retrying.
// Typed auth/permission/not-found errors fail fast, as does anything
// whose message matches the non-retriable pattern.
func Retriable(err error) bool {
	if err == nil {
		return false
	}
	if IsAuth(err) || IsPermission(err) || IsNotFound(err) {
		return false
	}
	return !nonRetriablePattern.MatchString(err.Error())
}

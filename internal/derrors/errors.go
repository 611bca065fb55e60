// Package derrors provides custom error types for fastcomplete.
// The completion path distinguishes "no completions" (a normal, silent outcome)
// from the failures below, which callers recover from in different ways.
package derrors

import (
	"errors"
	"fmt"
)

// CompletionError is the base interface for all fastcomplete errors
type CompletionError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all fastcomplete errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// TokenizeError is returned when the command line cannot be split into shell words,
// for instance because of an unterminated quote.
// Callers treat it as "no completions available".
type TokenizeError struct {
	baseError
	Line string
}

// NewTokenizeError creates a new tokenize error
func NewTokenizeError(line string, message string, cause error) *TokenizeError {
	return &TokenizeError{
		baseError: baseError{
			code:    "TOKENIZE_ERROR",
			message: message,
			cause:   cause,
		},
		Line: line,
	}
}

// CannotHandleCompletionError signals that static completion cannot answer the request
// and the caller should fall back to another completion mechanism.
type CannotHandleCompletionError struct {
	baseError
	Reason string
}

// Reasons carried by CannotHandleCompletionError
const (
	ReasonDynamic    = "dynamic"
	ReasonPositional = "positional"
	ReasonNoTree     = "no-tree"
)

// NewCannotHandleError creates a new cannot-handle error
func NewCannotHandleError(reason string, message string, cause error) *CannotHandleCompletionError {
	return &CannotHandleCompletionError{
		baseError: baseError{
			code:    "CANNOT_HANDLE",
			message: message,
			cause:   cause,
		},
		Reason: reason,
	}
}

// TreeLoadError represents a failure to locate, read or decode the static command tree
type TreeLoadError struct {
	baseError
	Path string
}

// NewTreeLoadError creates a new tree load error
func NewTreeLoadError(path string, message string, cause error) *TreeLoadError {
	return &TreeLoadError{
		baseError: baseError{
			code:    "TREE_LOAD_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// IsCannotHandle reports whether err (or any error it wraps) is a CannotHandleCompletionError
func IsCannotHandle(err error) bool {
	var target *CannotHandleCompletionError
	return errors.As(err, &target)
}

// IsTokenize reports whether err (or any error it wraps) is a TokenizeError
func IsTokenize(err error) bool {
	var target *TokenizeError
	return errors.As(err, &target)
}

/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rpn

// This source file contains all error types that can be returned by the RPN
// evaluator. Every failure is reported as *EvalError value that carries the
// error kind together with the offending token. Error kinds implement the
// error interface too, so it is possible to check the kind of failure by
// using errors.Is(err, rpn.InvalidToken) etc.

import (
	"errors"
	"fmt"
)

// ErrorKind describes the reason why an expression can not be evaluated.
type ErrorKind int

// List of all error kinds
const (
	// InvalidToken means that token is neither integer literal nor
	// recognized operator symbol
	InvalidToken ErrorKind = iota
	// InsufficientOperands means that operator has been found with less
	// than two values on stack
	InsufficientOperands
	// ArithmeticError means division or remainder by zero or integer
	// overflow
	ArithmeticError
	// InvalidSyntax means that the stack does not hold exactly one value
	// after all tokens have been consumed
	InvalidSyntax
)

var kindNames = []string{
	"InvalidToken",
	"InsufficientOperands",
	"ArithmeticError",
	"InvalidSyntax",
}

// String returns name of error kind, the same name is used in logs, in
// history storage, and in published messages.
func (kind ErrorKind) String() string {
	if kind < 0 || int(kind) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
	return kindNames[kind]
}

func (kind ErrorKind) Error() string {
	return kind.String()
}

// Arithmetic failures
var (
	// ErrDivisionByZero is reported for both / and % operators
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is reported when result does not fit into int32
	ErrOverflow = errors.New("integer overflow")
)

// EvalError represents failure of one expression evaluation
type EvalError struct {
	Kind ErrorKind
	// Token is the offending token, empty for InvalidSyntax
	Token string
	// Position is 1-based index of the offending token in the line
	Position int
	// StackDepth is number of values left on stack, set for InvalidSyntax
	StackDepth int
	// Err is the arithmetic failure when Kind is ArithmeticError
	Err error
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case InvalidToken:
		return fmt.Sprintf("invalid token %q at position %d", e.Token, e.Position)
	case InsufficientOperands:
		return fmt.Sprintf("insufficient operands for %q at position %d", e.Token, e.Position)
	case ArithmeticError:
		return fmt.Sprintf("arithmetic error in %q at position %d: %v", e.Token, e.Position, e.Err)
	case InvalidSyntax:
		return fmt.Sprintf("invalid syntax: %d value(s) left on stack", e.StackDepth)
	}
	return e.Kind.String()
}

// Is makes it possible to match evaluation errors by their kind.
func (e *EvalError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// KindOf returns error kind of the given error and flag if the error was
// produced by the evaluator at all.
func KindOf(err error) (ErrorKind, bool) {
	var evalError *EvalError
	if errors.As(err, &evalError) {
		return evalError.Kind, true
	}
	return 0, false
}

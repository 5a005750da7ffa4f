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

// Package rpn contains an evaluator of integer expressions written in Reverse
// Polish Notation (postfix notation), for example:
//
//	5 1 2 + 4 * + 3 -
//
// Tokens are separated by any amount of white space. Each token is either a
// signed integer literal that is pushed onto the evaluation stack, or one of
// the operators +, -, *, /, and % that pops two values from the stack and
// pushes the result back. All arithmetic is performed on int32 values;
// division truncates toward zero and the remainder has the sign of the
// dividend. Division by zero and overflows are reported as errors.
package rpn

import (
	"strconv"
	"strings"
)

// Evaluator evaluates RPN expressions. It holds configuration only and it is
// safe to reuse it for any number of expressions.
type Evaluator struct {
	verbose bool
	tracer  Tracer
}

// Option changes evaluator configuration
type Option func(*Evaluator)

// WithTracer selects tracer used in verbose mode
func WithTracer(tracer Tracer) Option {
	return func(evaluator *Evaluator) {
		if tracer != nil {
			evaluator.tracer = tracer
		}
	}
}

// New constructs new evaluator. When verbose is set, every processed token is
// reported to tracer; LogTracer is used by default.
func New(verbose bool, options ...Option) Evaluator {
	evaluator := Evaluator{
		verbose: verbose,
		tracer:  LogTracer{},
	}
	for _, option := range options {
		option(&evaluator)
	}
	return evaluator
}

// Evaluate function evaluates one expression with a default evaluator.
func Evaluate(line string, verbose bool) (int32, error) {
	return New(verbose).Evaluate(line)
}

// Verbose returns true when evaluation steps are traced
func (evaluator Evaluator) Verbose() bool {
	return evaluator.verbose
}

// Evaluate method evaluates one expression and returns its value. Evaluation
// stops on the first failure and *EvalError is returned in this case.
func (evaluator Evaluator) Evaluate(line string) (int32, error) {
	tokens := strings.Fields(line)
	stack := make([]int32, 0, len(tokens))

	for i, token := range tokens {
		position := i + 1

		if value, err := strconv.ParseInt(token, 10, 32); err == nil {
			stack = append(stack, int32(value))
		} else {
			op, found := operators[token]
			if !found {
				return 0, &EvalError{Kind: InvalidToken, Token: token, Position: position}
			}
			if len(stack) < 2 {
				return 0, &EvalError{Kind: InsufficientOperands, Token: token, Position: position}
			}

			y := stack[len(stack)-1]
			x := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			result, err := op(x, y)
			if err != nil {
				return 0, &EvalError{Kind: ArithmeticError, Token: token, Position: position, Err: err}
			}
			stack = append(stack, result)
		}

		if evaluator.verbose {
			evaluator.trace(token, position, tokens[i+1:], stack)
		}
	}

	if len(stack) != 1 {
		return 0, &EvalError{Kind: InvalidSyntax, Position: len(tokens), StackDepth: len(stack)}
	}

	return stack[0], nil
}

// trace passes copies of evaluation state to tracer
func (evaluator Evaluator) trace(token string, position int, remaining []string, stack []int32) {
	evaluator.tracer.Trace(Step{
		Token:     token,
		Position:  position,
		Remaining: append([]string{}, remaining...),
		Stack:     append([]int32{}, stack...),
	})
}

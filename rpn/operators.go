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

import "math"

// operator computes x op y where x was pushed onto stack before y
type operator func(x, y int32) (int32, error)

// operators table, keyed by operator symbol
var operators = map[string]operator{
	"+": add,
	"-": sub,
	"*": mul,
	"/": quo,
	"%": rem,
}

// IsOperator returns true if token is one of recognized operator symbols.
func IsOperator(token string) bool {
	_, found := operators[token]
	return found
}

// narrow converts result computed in 64 bits back to int32
func narrow(value int64) (int32, error) {
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int32(value), nil
}

func add(x, y int32) (int32, error) {
	return narrow(int64(x) + int64(y))
}

func sub(x, y int32) (int32, error) {
	return narrow(int64(x) - int64(y))
}

func mul(x, y int32) (int32, error) {
	return narrow(int64(x) * int64(y))
}

// quo truncates toward zero
func quo(x, y int32) (int32, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	if x == math.MinInt32 && y == -1 {
		return 0, ErrOverflow
	}
	return x / y, nil
}

// rem result has the sign of dividend
func rem(x, y int32) (int32, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	if x == math.MinInt32 && y == -1 {
		return 0, ErrOverflow
	}
	return x % y, nil
}

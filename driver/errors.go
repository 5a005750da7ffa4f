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

package driver

import (
	"fmt"

	"github.com/RedHatInsights/rpn-calculator/types"
)

// SourceUnavailableError represents an error when formula file can not be
// opened
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s is unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// LineError represents failed evaluation of one input line
type LineError struct {
	LineNumber types.LineNumber
	Line       string
	Err        error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.LineNumber, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// EvaluationFailedError is returned when evaluation continued after errors
// and at least one line failed
type EvaluationFailedError struct {
	Failed int
	Lines  int
}

func (e *EvaluationFailedError) Error() string {
	return fmt.Sprintf("evaluation of %d line(s) out of %d failed", e.Failed, e.Lines)
}

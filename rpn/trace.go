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

// Verbose evaluation emits one trace step after each processed token. Steps
// are passed to a Tracer that is selected when the evaluator is constructed.

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Step represents state of evaluation right after one token has been
// processed.
type Step struct {
	Token    string
	Position int
	// Remaining tokens in the order they are going to be consumed
	Remaining []string
	// Stack contents, bottom first
	Stack []int32
}

// Tracer receives trace steps during verbose evaluation
type Tracer interface {
	Trace(step Step)
}

// LogTracer writes trace steps into the global structured logger
type LogTracer struct{}

// Trace method logs one trace step
func (LogTracer) Trace(step Step) {
	log.Info().
		Str("token", step.Token).
		Int("position", step.Position).
		Strs("remaining", step.Remaining).
		Ints32("stack", step.Stack).
		Msg("Evaluation step")
}

// WriterTracer writes trace steps as plain text lines in format
// ["remaining" "tokens"] [stack]
type WriterTracer struct {
	Writer io.Writer
}

// Trace method writes one trace step
func (tracer WriterTracer) Trace(step Step) {
	// trace is diagnostic only, write errors are ignored
	_, _ = fmt.Fprintf(tracer.Writer, "%q %v\n", step.Remaining, step.Stack)
}

// NopTracer drops all trace steps
type NopTracer struct{}

// Trace method does nothing
func (NopTracer) Trace(Step) {}

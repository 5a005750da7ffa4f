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

// Package types contains data types shared by all other packages of the RPN
// calculator.
package types

import (
	"time"
)

// RunID identifies one run of the calculator. It is stored together with
// all evaluation records and published messages.
type RunID string

// LineNumber is 1-based number of line in formula file or standard input.
type LineNumber int

// ProducerMessage is a message to be published by any producer.
type ProducerMessage []byte

// DBDriver type for db driver enum
type DBDriver int

const (
	// DBDriverSQLite3 shows that db driver is sqlite
	DBDriverSQLite3 DBDriver = iota
	// DBDriverPostgres shows that db driver is postgres
	DBDriverPostgres
	// DBDriverGeneral general sql(used for mock now)
	DBDriverGeneral
)

// CliFlags represents structure holding all command line arguments/flags.
type CliFlags struct {
	Verbose                       bool
	ContinueOnError               bool
	ShowVersion                   bool
	ShowAuthors                   bool
	ShowConfiguration             bool
	PrintOldEvaluationsForCleanup bool
	PerformOldEvaluationsCleanup  bool
	MaxAge                        string
	// FormulaFile is path to file with expressions, empty for standard
	// input
	FormulaFile string
}

// EvaluationRecord represents outcome of evaluation of one input line.
// ErrorKind is empty for successful evaluations.
type EvaluationRecord struct {
	RunID       RunID
	LineNumber  LineNumber
	Expression  string
	Result      int32
	ErrorKind   string
	EvaluatedAt time.Time
}

// Failed returns true if the evaluation was not successful
func (record EvaluationRecord) Failed() bool {
	return record.ErrorKind != ""
}

// EvaluationEvent is a message published for every evaluated line.
type EvaluationEvent struct {
	RunID       RunID      `json:"run_id"`
	LineNumber  LineNumber `json:"line_number"`
	Expression  string     `json:"expression"`
	Result      *int32     `json:"result,omitempty"`
	ErrorKind   string     `json:"error_kind,omitempty"`
	Error       string     `json:"error,omitempty"`
	EvaluatedAt string     `json:"evaluated_at"`
}

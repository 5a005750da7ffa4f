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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-calculator/producer"
	"github.com/RedHatInsights/rpn-calculator/rpn"
	"github.com/RedHatInsights/rpn-calculator/types"
)

// maxLineSize is the longest accepted input line
const maxLineSize = 1024 * 1024

// unknownErrorKind is used for errors not produced by evaluator
const unknownErrorKind = "Unknown"

// ProcessOptions controls how input lines are processed and where the
// outcomes are recorded. Storage and Producer are optional.
type ProcessOptions struct {
	// ContinueOnError skips failed lines instead of halting on the first
	// one
	ContinueOnError bool
	RunID           types.RunID
	Storage         Storage
	Producer        producer.Producer
}

// Summary contains statistic about processed lines
type Summary struct {
	Lines     int
	Evaluated int
	Failed    int
}

// Process function reads source line by line, evaluates each line as RPN
// expression and writes results to output, one result per line.
//
// By default processing halts on the first failure and *LineError is
// returned. When ContinueOnError is set, failed lines are reported and
// skipped, and *EvaluationFailedError is returned at the end if any line
// failed.
func Process(source io.Reader, output io.Writer, evaluator rpn.Evaluator, options ProcessOptions) (Summary, error) {
	var summary Summary

	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	var lineNumber types.LineNumber
	for scanner.Scan() {
		lineNumber++
		summary.Lines++
		LinesRead.Inc()

		line := scanner.Text()
		record := types.EvaluationRecord{
			RunID:       options.RunID,
			LineNumber:  lineNumber,
			Expression:  line,
			EvaluatedAt: time.Now().UTC(),
		}

		result, err := evaluator.Evaluate(line)
		if err != nil {
			summary.Failed++
			record.ErrorKind = errorKindName(err)
			EvaluationErrors.WithLabelValues(record.ErrorKind).Inc()

			log.Error().
				Int(lineNumberAttribute, int(lineNumber)).
				Str(expressionAttribute, line).
				Str(errorKindAttribute, record.ErrorKind).
				Err(err).
				Msg(evaluationFailedMessage)

			recordOutcome(record, err, options)
			if !options.ContinueOnError {
				return summary, &LineError{LineNumber: lineNumber, Line: line, Err: err}
			}
			continue
		}

		summary.Evaluated++
		ExpressionsEvaluated.Inc()
		record.Result = result
		recordOutcome(record, nil, options)

		if _, err := fmt.Fprintln(output, result); err != nil {
			log.Error().Err(err).Msg("Unable to write result")
			return summary, err
		}
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Reading formulas failed")
		return summary, err
	}

	if summary.Failed > 0 {
		return summary, &EvaluationFailedError{Failed: summary.Failed, Lines: summary.Lines}
	}

	return summary, nil
}

// errorKindName returns name of error kind used in logs, storage and
// messages
func errorKindName(err error) string {
	if kind, ok := rpn.KindOf(err); ok {
		return kind.String()
	}
	return unknownErrorKind
}

// recordOutcome stores and publishes outcome of one evaluation. Failures are
// logged and counted only, they never stop the processing.
func recordOutcome(record types.EvaluationRecord, evalErr error, options ProcessOptions) {
	if options.Storage != nil {
		if err := options.Storage.WriteEvaluation(record); err != nil {
			StorageWriteErrors.Inc()
			log.Error().
				Err(err).
				Int(lineNumberAttribute, int(record.LineNumber)).
				Msg(storageWriteFailedMessage)
		}
	}

	if options.Producer != nil {
		publishEvaluation(options.Producer, record, evalErr)
	}
}

// evaluationEvent converts evaluation record into message payload
func evaluationEvent(record types.EvaluationRecord, evalErr error) types.EvaluationEvent {
	event := types.EvaluationEvent{
		RunID:       record.RunID,
		LineNumber:  record.LineNumber,
		Expression:  record.Expression,
		EvaluatedAt: record.EvaluatedAt.Format(time.RFC3339Nano),
	}

	if evalErr != nil {
		event.ErrorKind = record.ErrorKind
		event.Error = evalErr.Error()
	} else {
		result := record.Result
		event.Result = &result
	}

	return event
}

func publishEvaluation(notifier producer.Producer, record types.EvaluationRecord, evalErr error) {
	message, err := json.Marshal(evaluationEvent(record, evalErr))
	if err != nil {
		ProducerErrors.Inc()
		log.Error().Err(err).Msg(invalidJSONContent)
		return
	}

	_, offset, err := notifier.ProduceMessage(message)
	if err != nil {
		ProducerErrors.Inc()
		log.Error().
			Err(err).
			Int(lineNumberAttribute, int(record.LineNumber)).
			Msg(producerFailedMessage)
		return
	}

	// disabled producer reports negative offset
	if offset >= 0 {
		MessagesProduced.Inc()
	}
}

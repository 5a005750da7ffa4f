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

// This source file contains the Run function that wires together formula
// source, RPN evaluator, history storage, result producer and metrics, and
// computes exit status of the whole calculator.

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-calculator/conf"
	"github.com/RedHatInsights/rpn-calculator/producer"
	"github.com/RedHatInsights/rpn-calculator/producer/disabled"
	"github.com/RedHatInsights/rpn-calculator/producer/kafka"
	"github.com/RedHatInsights/rpn-calculator/rpn"
	"github.com/RedHatInsights/rpn-calculator/types"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration
	// ExitStatusSourceError is returned when formulas can not be read
	ExitStatusSourceError
	// ExitStatusEvaluationError is returned when at least one expression
	// could not be evaluated
	ExitStatusEvaluationError
	// ExitStatusStorageError is returned in case of any storage-related error
	ExitStatusStorageError
	// ExitStatusKafkaBrokerError is for kafka broker connection establishment errors
	ExitStatusKafkaBrokerError
	// ExitStatusCleanerError is raised when clean operation is not successful
	ExitStatusCleanerError
	// ExitStatusMetricsError is raised when prometheus metrics cannot be pushed
	ExitStatusMetricsError
)

// Messages
const (
	operationFailedMessage    = "Operation failed"
	evaluationFailedMessage   = "Evaluation failed"
	storageWriteFailedMessage = "Unable to write evaluation record into storage"
	producerFailedMessage     = "Unable to publish evaluation result"
	invalidJSONContent        = "The provided content cannot be encoded as JSON."
	metricsPushFailedMessage  = "Couldn't push prometheus metrics"
	cleanerFailedMessage      = "Cleanup operation failed"
	storageNotConfigured      = "Storage needs to be configured for cleanup operations"
)

// Attributes used in structured logs
const (
	fileAttribute       = "file"
	lineNumberAttribute = "line"
	expressionAttribute = "expression"
	errorKindAttribute  = "kind"
	runIDAttribute      = "run ID"
	linesAttribute      = "lines"
	evaluatedAttribute  = "evaluated"
	failedAttribute     = "failed"
)

// Run function evaluates all formulas from file selected on command line (or
// from standard input), writes results to standard output, and returns exit
// status of the calculator.
func Run(config conf.ConfigStruct, cliFlags types.CliFlags) int {
	return run(config, cliFlags, os.Stdout)
}

func run(config conf.ConfigStruct, cliFlags types.CliFlags, output io.Writer) int {
	registerMetrics(conf.GetMetricsConfiguration(&config))

	if CleanupOperationSpecified(cliFlags) {
		return cleanup(config, cliFlags)
	}

	source, err := OpenSource(cliFlags.FormulaFile)
	if err != nil {
		SourceErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusSourceError
	}
	defer closeSource(source)

	runID := types.RunID(uuid.New().String())
	log.Info().Str(runIDAttribute, string(runID)).Msg("Starting evaluation")

	options := ProcessOptions{
		ContinueOnError: cliFlags.ContinueOnError || config.Evaluation.ContinueOnError,
		RunID:           runID,
	}

	storageConfiguration := conf.GetStorageConfiguration(&config)
	if storageConfiguration.Enabled {
		storage, err := setupStorage(storageConfiguration)
		if err != nil {
			StorageSetupErrors.Inc()
			log.Err(err).Msg(operationFailedMessage)
			return ExitStatusStorageError
		}
		defer closeStorage(storage)
		options.Storage = storage
	}

	notifier, err := setupProducer(&config)
	if err != nil {
		ProducerSetupErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusKafkaBrokerError
	}
	defer closeNotifier(notifier)
	options.Producer = notifier

	evaluationConfiguration := conf.GetEvaluationConfiguration(&config)
	evaluator := rpn.New(
		cliFlags.Verbose || evaluationConfiguration.Verbose,
		rpn.WithTracer(newTracer(evaluationConfiguration.TraceOutput, output)),
	)

	summary, err := Process(source, output, evaluator, options)
	log.Info().
		Str(runIDAttribute, string(runID)).
		Int(linesAttribute, summary.Lines).
		Int(evaluatedAttribute, summary.Evaluated).
		Int(failedAttribute, summary.Failed).
		Msg("Evaluation finished")

	status := exitStatusFor(err)

	metricsConfiguration := conf.GetMetricsConfiguration(&config)
	if metricsConfiguration.GatewayURL != "" {
		err := pushMetrics(metricsConfiguration)
		if err != nil && status == ExitStatusOK {
			status = ExitStatusMetricsError
		}
	}

	return status
}

// cleanup performs history cleanup operation selected on command line
func cleanup(config conf.ConfigStruct, cliFlags types.CliFlags) int {
	storageConfiguration := conf.GetStorageConfiguration(&config)
	if storageConfiguration.Driver == "" {
		log.Error().Msg(storageNotConfigured)
		return ExitStatusConfiguration
	}

	storage, err := NewStorage(storageConfiguration)
	if err != nil {
		StorageSetupErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusStorageError
	}
	defer closeStorage(storage)

	err = PerformCleanupOperation(storage, cliFlags)
	if err != nil {
		log.Err(err).Msg(cleanerFailedMessage)
		return ExitStatusCleanerError
	}
	return ExitStatusOK
}

// exitStatusFor maps error returned by Process to exit status
func exitStatusFor(err error) int {
	if err == nil {
		return ExitStatusOK
	}

	var lineError *LineError
	var evaluationFailedError *EvaluationFailedError
	if errors.As(err, &lineError) || errors.As(err, &evaluationFailedError) {
		return ExitStatusEvaluationError
	}
	return ExitStatusSourceError
}

// newTracer selects tracer for verbose mode according to configuration
func newTracer(traceOutput string, output io.Writer) rpn.Tracer {
	if traceOutput == conf.TraceOutputStdout {
		return rpn.WriterTracer{Writer: output}
	}
	return rpn.LogTracer{}
}

func setupStorage(configuration conf.StorageConfiguration) (*DBStorage, error) {
	storage, err := NewStorage(configuration)
	if err != nil {
		return nil, err
	}

	err = storage.CreateSchema()
	if err != nil {
		closeStorage(storage)
		return nil, err
	}
	return storage, nil
}

// setupProducer creates Kafka producer when it is enabled in configuration,
// disabled producer otherwise
func setupProducer(config *conf.ConfigStruct) (producer.Producer, error) {
	if !conf.GetKafkaBrokerConfiguration(config).Enabled {
		log.Info().Msg("Broker config for Kafka is disabled")
		return &disabled.Producer{}, nil
	}

	return kafka.New(config)
}

// registerMetrics registers metrics using the provided namespace, if any
func registerMetrics(metricsConfig conf.MetricsConfiguration) {
	if metricsConfig.Namespace != "" {
		log.Info().Str("namespace", metricsConfig.Namespace).Msg("Setting metrics namespace")
		AddMetricsWithNamespace(metricsConfig.Namespace)
	}
}

func closeStorage(storage Storage) {
	err := storage.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
	}
}

func closeNotifier(notifier producer.Producer) {
	err := notifier.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
	}
}

// pushMetrics pushes metrics to the push gateway, retrying the operation
// when configured
func pushMetrics(metricsConf conf.MetricsConfiguration) error {
	err := PushMetrics(metricsConf)
	if err == nil {
		log.Info().Msg("Metrics pushed successfully")
		return nil
	}

	log.Err(err).Msg(metricsPushFailedMessage)
	for i := metricsConf.Retries; i > 0; i-- {
		if metricsConf.RetryAfter == 0 {
			break
		}
		time.Sleep(metricsConf.RetryAfter)
		log.Info().Msgf("Push metrics. Retrying (%d/%d attempts left)", i, metricsConf.Retries)
		err = PushMetrics(metricsConf)
		if err == nil {
			log.Info().Msg("Metrics pushed successfully")
			return nil
		}
		log.Err(err).Msg(metricsPushFailedMessage)
	}
	return err
}

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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-calculator/conf"
	"github.com/RedHatInsights/rpn-calculator/driver"
	"github.com/RedHatInsights/rpn-calculator/types"
)

// Messages
const (
	programName    = "rpn-calculator"
	versionMessage = "RPN calculator version 1.0.0"
	authorsMessage = "Red Hat Inc."
	description    = "Calculator for integer formulas written in Reverse Polish Notation"
)

// output used by show* functions
var output io.Writer = os.Stdout

// showVersion function displays version information.
func showVersion() {
	fmt.Fprintln(output, versionMessage)
}

// showAuthors function displays information about authors.
func showAuthors() {
	fmt.Fprintln(output, authorsMessage)
}

// parseCliFlags defines and parses all command line options. The only
// positional argument is path to formula file.
func parseCliFlags(args []string) (types.CliFlags, error) {
	var cliFlags types.CliFlags

	flags := flag.NewFlagSet(programName, flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "%s: %s\n\nUsage: %s [options] [formula file]\n\n", programName, description, programName)
		flags.PrintDefaults()
	}

	flags.BoolVar(&cliFlags.Verbose, "v", false, "trace every token and the evaluation stack (shorthand)")
	flags.BoolVar(&cliFlags.Verbose, "verbose", false, "trace every token and the evaluation stack")
	flags.BoolVar(&cliFlags.ContinueOnError, "continue-on-error", false, "skip formulas that can not be evaluated")
	flags.BoolVar(&cliFlags.ShowVersion, "show-version", false, "show version and exit")
	flags.BoolVar(&cliFlags.ShowAuthors, "show-authors", false, "show authors and exit")
	flags.BoolVar(&cliFlags.ShowConfiguration, "show-configuration", false, "show configuration and exit")
	flags.BoolVar(&cliFlags.PrintOldEvaluationsForCleanup, "print-old-evaluations", false, "print old evaluations to be cleaned up")
	flags.BoolVar(&cliFlags.PerformOldEvaluationsCleanup, "cleanup-old-evaluations", false, "perform old evaluations clean up")
	flags.StringVar(&cliFlags.MaxAge, "max-age", "", "max age for displaying/cleaning old records")

	if err := flags.Parse(args); err != nil {
		return cliFlags, err
	}

	cliFlags.FormulaFile = flags.Arg(0)
	return cliFlags, nil
}

// checkArgs function handles command line options passed to the process. It
// returns exit status and flag telling whether the process should exit.
func checkArgs(args *types.CliFlags) (int, bool) {
	switch {
	case args.ShowVersion:
		showVersion()
		return driver.ExitStatusOK, true
	case args.ShowAuthors:
		showAuthors()
		return driver.ExitStatusOK, true
	case args.PrintOldEvaluationsForCleanup && args.PerformOldEvaluationsCleanup:
		log.Error().Msg("Only one cleanup operation can be specified on command line")
		return driver.ExitStatusConfiguration, true
	case args.ShowConfiguration:
		// config not loaded yet, just skip the rest of function for
		// now
		return driver.ExitStatusOK, false
	default:
	}

	if args.FormulaFile != "" {
		log.Info().Str("file", args.FormulaFile).Msg("File specified")
	} else {
		log.Info().Msg("No file specified")
	}
	log.Info().Bool("verbose", args.Verbose).Msg("Verbosity")

	return driver.ExitStatusOK, false
}

// showConfiguration function displays actual configuration.
func showConfiguration(config *conf.ConfigStruct) {
	loggingConfig := conf.GetLoggingConfiguration(config)
	log.Info().
		Str("Level", loggingConfig.LogLevel).
		Bool("Pretty colored debug logging", loggingConfig.Debug).
		Msg("Logging configuration")

	evaluationConfig := conf.GetEvaluationConfiguration(config)
	log.Info().
		Bool("Verbose", evaluationConfig.Verbose).
		Bool("Continue on error", evaluationConfig.ContinueOnError).
		Str("Trace output", evaluationConfig.TraceOutput).
		Msg("Evaluation configuration")

	storageConfig := conf.GetStorageConfiguration(config)
	log.Info().
		Bool("Enabled", storageConfig.Enabled).
		Str("Driver", storageConfig.Driver).
		Str("SQLite data source", storageConfig.SQLiteDataSource).
		Str("DB Name", storageConfig.PGDBName).
		Str("Username", storageConfig.PGUsername). // password is omitted on purpose
		Str("Host", storageConfig.PGHost).
		Int("Port", storageConfig.PGPort).
		Str("Parameters", storageConfig.PGParams).
		Msg("Storage configuration")

	brokerConfig := conf.GetKafkaBrokerConfiguration(config)
	log.Info().
		Bool("Enabled", brokerConfig.Enabled).
		Str("Addresses", brokerConfig.Addresses).
		Str("SecurityProtocol", brokerConfig.SecurityProtocol).
		Str("SaslMechanism", brokerConfig.SaslMechanism).
		Str("Topic", brokerConfig.Topic).
		Str("Timeout", brokerConfig.Timeout.String()).
		Msg("Broker configuration")

	metricsConfig := conf.GetMetricsConfiguration(config)

	// Authentication token is omitted on purpose
	log.Info().
		Str("Job", metricsConfig.Job).
		Str("Namespace", metricsConfig.Namespace).
		Str("Push Gateway", metricsConfig.GatewayURL).
		Int("Retries", metricsConfig.Retries).
		Str("Retry after", metricsConfig.RetryAfter.String()).
		Msg("Metrics configuration")

	cleanerConfig := conf.GetCleanerConfiguration(config)
	log.Info().
		Str("Max age", cleanerConfig.MaxAge).
		Msg("Cleaner configuration")
}

func convertLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	}

	return zerolog.DebugLevel
}

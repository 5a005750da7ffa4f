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

// Entry point to the RPN calculator.
//
// The calculator reads formulas written in Reverse Polish Notation from the
// file given on command line, or from standard input when no file is given,
// evaluates them one line at a time and prints one result per line on
// standard output. When verbose mode is selected, every processed token is
// traced together with the remaining tokens and the actual content of the
// evaluation stack.
//
// Optionally all evaluations are journaled into SQL storage (SQLite or
// PostgreSQL), published into a Kafka topic, and counted by Prometheus
// metrics pushed into the configured push gateway.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-calculator/conf"
	"github.com/RedHatInsights/rpn-calculator/driver"
)

// Configuration-related constants
const (
	loadConfigurationMessage = "Load configuration"
)

func main() {
	cliFlags, err := parseCliFlags(os.Args[1:])
	if err != nil {
		// error has already been reported by flag package
		os.Exit(driver.ExitStatusConfiguration)
	}

	if status, exit := checkArgs(&cliFlags); exit {
		os.Exit(status)
	}

	// config has exactly the same structure as *.toml file
	config, err := conf.LoadConfiguration(conf.ConfigFileEnvVariableName, conf.DefaultConfigFileName)
	if err != nil {
		log.Err(err).Msg(loadConfigurationMessage)
		os.Exit(driver.ExitStatusConfiguration)
	}

	setupLogging(conf.GetLoggingConfiguration(&config))

	// configuration is loaded, so it would be possible to display it if
	// asked by user
	if cliFlags.ShowConfiguration {
		showConfiguration(&config)
		os.Exit(driver.ExitStatusOK)
	}

	// override default value by one read from configuration file
	if cliFlags.MaxAge == "" {
		cliFlags.MaxAge = conf.GetCleanerConfiguration(&config).MaxAge
	}

	os.Exit(driver.Run(config, cliFlags))
}

// setupLogging sets pretty colored output and log level
func setupLogging(loggingConf conf.LoggingConfiguration) {
	if loggingConf.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logLevel := convertLogLevel(loggingConf.LogLevel)
	zerolog.SetGlobalLevel(logLevel)
	log.Debug().
		Str("configured", loggingConf.LogLevel).
		Int("internal", int(logLevel)).
		Msg("Log level")
}

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

package conf

// This source file contains definition of data type named ConfigStruct that
// represents configuration of RPN calculator. This source file also contains
// function named LoadConfiguration that can be used to load configuration
// from provided configuration file and/or from environment variables.
// Additionally several specific functions named GetLoggingConfiguration,
// GetEvaluationConfiguration, GetStorageConfiguration,
// GetKafkaBrokerConfiguration, GetMetricsConfiguration and
// GetCleanerConfiguration are to be used to return specific configuration
// options.

// Default name of configuration file is config.toml
// It can be changed via environment variable RPN_CALCULATOR_CONFIG_FILE

// An example of configuration file that can be used in devel environment:
//
// [logging]
// debug = true
// log_level = "info"
//
// [evaluation]
// verbose = false
// continue_on_error = false
// trace_output = "log"
//
// [storage]
// enabled = true
// db_driver = "sqlite3"
// sqlite_datasource = "history.db"
//
// [kafka_broker]
// enabled = false
// addresses = "localhost:9092"
// topic = "rpn_calculator_results"
// timeout = "30s"
//
// [metrics]
// job_name = "rpn_calculator"
// namespace = "rpn_calculator"
// gateway_url = ""
//
// Environment variables that can be used to override configuration file
// settings have prefix RPN_CALCULATOR_ and use double underscore as section
// separator, for example RPN_CALCULATOR_LOGGING__LOG_LEVEL.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	clowder "github.com/redhatinsights/app-common-go/pkg/api/v1"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Configuration-related constants
const (
	// ConfigFileEnvVariableName is name of environment variable that
	// contains name of configuration file
	ConfigFileEnvVariableName = "RPN_CALCULATOR_CONFIG_FILE"
	// DefaultConfigFileName is name of configuration file used when the
	// environment variable is not set
	DefaultConfigFileName = "config"

	envPrefix = "RPN_CALCULATOR"
)

// Trace outputs
const (
	// TraceOutputLog sends evaluation trace into structured log
	TraceOutputLog = "log"
	// TraceOutputStdout prints evaluation trace as plain text to standard
	// output
	TraceOutputStdout = "stdout"
)

// ConfigStruct is a structure holding the whole RPN calculator configuration
type ConfigStruct struct {
	Logging    LoggingConfiguration    `mapstructure:"logging" toml:"logging"`
	Evaluation EvaluationConfiguration `mapstructure:"evaluation" toml:"evaluation"`
	Storage    StorageConfiguration    `mapstructure:"storage" toml:"storage"`
	Kafka      KafkaConfiguration      `mapstructure:"kafka_broker" toml:"kafka_broker"`
	Metrics    MetricsConfiguration    `mapstructure:"metrics" toml:"metrics"`
	Cleaner    CleanerConfiguration    `mapstructure:"cleaner" toml:"cleaner"`
}

// LoggingConfiguration represents configuration for logging in general
type LoggingConfiguration struct {
	// Debug enables pretty colored logging
	Debug bool `mapstructure:"debug" toml:"debug"`

	// LogLevel sets logging level to show. Possible values are:
	// "debug"
	// "info"
	// "warn", "warning"
	// "error"
	// "fatal"
	//
	// debug level is used if value is not one of listed above
	LogLevel string `mapstructure:"log_level" toml:"log_level"`
}

// EvaluationConfiguration represents defaults for expression evaluation.
// Command line flags can only enable these options, not disable them.
type EvaluationConfiguration struct {
	Verbose         bool   `mapstructure:"verbose" toml:"verbose"`
	ContinueOnError bool   `mapstructure:"continue_on_error" toml:"continue_on_error"`
	TraceOutput     string `mapstructure:"trace_output" toml:"trace_output"`
}

// StorageConfiguration represents configuration of evaluation history
// storage
type StorageConfiguration struct {
	Enabled          bool   `mapstructure:"enabled"           toml:"enabled"`
	Driver           string `mapstructure:"db_driver"         toml:"db_driver"`
	SQLiteDataSource string `mapstructure:"sqlite_datasource" toml:"sqlite_datasource"`
	PGUsername       string `mapstructure:"pg_username"       toml:"pg_username"`
	PGPassword       string `mapstructure:"pg_password"       toml:"pg_password"`
	PGHost           string `mapstructure:"pg_host"           toml:"pg_host"`
	PGPort           int    `mapstructure:"pg_port"           toml:"pg_port"`
	PGDBName         string `mapstructure:"pg_db_name"        toml:"pg_db_name"`
	PGParams         string `mapstructure:"pg_params"         toml:"pg_params"`
}

// KafkaConfiguration represents configuration of Kafka broker used to
// publish evaluation results
type KafkaConfiguration struct {
	Enabled          bool          `mapstructure:"enabled"           toml:"enabled"`
	Addresses        string        `mapstructure:"addresses"         toml:"addresses"`
	SecurityProtocol string        `mapstructure:"security_protocol" toml:"security_protocol"`
	CertPath         string        `mapstructure:"cert_path"         toml:"cert_path"`
	SaslMechanism    string        `mapstructure:"sasl_mechanism"    toml:"sasl_mechanism"`
	SaslUsername     string        `mapstructure:"sasl_username"     toml:"sasl_username"`
	SaslPassword     string        `mapstructure:"sasl_password"     toml:"sasl_password"`
	Topic            string        `mapstructure:"topic"             toml:"topic"`
	Timeout          time.Duration `mapstructure:"timeout"           toml:"timeout"`
}

// MetricsConfiguration holds metrics related configuration
type MetricsConfiguration struct {
	Job              string        `mapstructure:"job_name" toml:"job_name"`
	Namespace        string        `mapstructure:"namespace" toml:"namespace"`
	GatewayURL       string        `mapstructure:"gateway_url" toml:"gateway_url"`
	GatewayAuthToken string        `mapstructure:"gateway_auth_token" toml:"gateway_auth_token"`
	Retries          int           `mapstructure:"retries" toml:"retries"`
	RetryAfter       time.Duration `mapstructure:"retry_after" toml:"retry_after"`
}

// CleanerConfiguration represents configuration for the history cleaner
type CleanerConfiguration struct {
	// MaxAge is max age of records to be cleaned, for example "90 days"
	MaxAge string `mapstructure:"max_age" toml:"max_age"`
}

// LoadConfiguration loads configuration from defaultConfigFile, file set in
// configFileEnvVariableName or from env
func LoadConfiguration(configFileEnvVariableName, defaultConfigFile string) (ConfigStruct, error) {
	var config ConfigStruct

	// env. variable holding name of configuration file
	configFile, specified := os.LookupEnv(configFileEnvVariableName)
	if specified {
		// we need to separate the directory name and filename without
		// extension
		directory, basename := filepath.Split(configFile)
		file := strings.TrimSuffix(basename, filepath.Ext(basename))
		// parse the configuration
		viper.SetConfigName(file)
		viper.AddConfigPath(directory)
	} else {
		log.Info().Str("filename", defaultConfigFile).Msg("Parsing configuration file")
		// parse the configuration
		viper.SetConfigName(defaultConfigFile)
		viper.AddConfigPath(".")
	}

	// try to read the whole configuration
	err := viper.ReadInConfig()
	if _, isNotFoundError := err.(viper.ConfigFileNotFoundError); !specified && isNotFoundError {
		// If config file is not present (which might be correct in
		// some environment) we need to read configuration from
		// environment variables The problem is that Viper is not smart
		// enough to understand the structure of config by itself, so
		// we need to read fake config file
		fakeTomlConfigWriter := new(bytes.Buffer)

		err := toml.NewEncoder(fakeTomlConfigWriter).Encode(config)
		if err != nil {
			return config, err
		}

		fakeTomlConfig := fakeTomlConfigWriter.String()

		viper.SetConfigType("toml")

		err = viper.ReadConfig(strings.NewReader(fakeTomlConfig))
		if err != nil {
			return config, err
		}
	} else if err != nil {
		// error is processed on caller side
		return config, fmt.Errorf("fatal error config file: %s", err)
	}

	// override config from env if there's variable in env
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "__"))

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Evaluation.TraceOutput == "" {
		config.Evaluation.TraceOutput = TraceOutputLog
	}

	if clowder.IsClowderEnabled() {
		// can not use Zerolog at this moment!
		fmt.Println("Clowder is enabled")
		updateBrokerConfigFromClowder(&config.Kafka)
	}

	// everything's should be ok
	return config, nil
}

// updateBrokerConfigFromClowder replaces broker address by the first broker
// provided by Clowder
func updateBrokerConfigFromClowder(kafkaConfig *KafkaConfiguration) {
	if clowder.LoadedConfig == nil || clowder.LoadedConfig.Kafka == nil {
		fmt.Println("No Kafka configuration available in Clowder, using default one")
		return
	}

	brokers := clowder.LoadedConfig.Kafka.Brokers
	if len(brokers) == 0 {
		fmt.Println("No broker provided by Clowder, using default one")
		return
	}

	broker := brokers[0]
	if broker.Port != nil {
		kafkaConfig.Addresses = fmt.Sprintf("%s:%d", broker.Hostname, *broker.Port)
	} else {
		kafkaConfig.Addresses = broker.Hostname
	}
}

// GetLoggingConfiguration returns logging configuration
func GetLoggingConfiguration(config *ConfigStruct) LoggingConfiguration {
	return config.Logging
}

// GetEvaluationConfiguration returns evaluation configuration
func GetEvaluationConfiguration(config *ConfigStruct) EvaluationConfiguration {
	return config.Evaluation
}

// GetStorageConfiguration returns storage configuration
func GetStorageConfiguration(config *ConfigStruct) StorageConfiguration {
	return config.Storage
}

// GetKafkaBrokerConfiguration returns kafka broker configuration
func GetKafkaBrokerConfiguration(config *ConfigStruct) KafkaConfiguration {
	return config.Kafka
}

// GetMetricsConfiguration returns metrics configuration
func GetMetricsConfiguration(config *ConfigStruct) MetricsConfiguration {
	return config.Metrics
}

// GetCleanerConfiguration returns cleaner configuration
func GetCleanerConfiguration(config *ConfigStruct) CleanerConfiguration {
	return config.Cleaner
}

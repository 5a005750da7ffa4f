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

package conf_test

import (
	"os"
	"testing"
	"time"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	conf "github.com/RedHatInsights/rpn-calculator/conf"
)

const envVar = "RPN_CALCULATOR_CONFIG_FILE"

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func mustLoadConfiguration(envVar string) conf.ConfigStruct {
	config, err := conf.LoadConfiguration(envVar, "../tests/config1")
	if err != nil {
		panic(err)
	}
	return config
}

func mustSetEnv(t *testing.T, key, val string) {
	err := os.Setenv(key, val)
	helpers.FailOnError(t, err)
}

func loadConfig2(t *testing.T) conf.ConfigStruct {
	os.Clearenv()
	mustSetEnv(t, envVar, "../tests/config2")
	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")
	return config
}

// TestLoadDefaultConfiguration loads a configuration file for testing
func TestLoadDefaultConfiguration(t *testing.T) {
	os.Clearenv()
	mustLoadConfiguration("nonExistingEnvVar")
}

// TestLoadConfigurationFromEnvVariable tests loading the config. file for
// testing from an environment variable
func TestLoadConfigurationFromEnvVariable(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config2")
	mustLoadConfiguration(envVar)
}

// TestLoadConfigurationNonEnvVarUnknownConfigFile tests loading an unexisting
// config file when no environment variable is provided
func TestLoadConfigurationNonEnvVarUnknownConfigFile(t *testing.T) {
	os.Clearenv()

	config, err := conf.LoadConfiguration("", "foobar")
	assert.Nil(t, err)

	// default trace output is set even without configuration file
	assert.Equal(t, conf.TraceOutputLog, config.Evaluation.TraceOutput)
}

// TestLoadConfigurationBadConfigFile tests loading a config file with wrong
// syntax
func TestLoadConfigurationBadConfigFile(t *testing.T) {
	os.Clearenv()

	_, err := conf.LoadConfiguration("", "../tests/config3")
	assert.Contains(t, err.Error(), `fatal error config file: While parsing config:`)
}

// TestLoadingConfigurationEnvVariableBadValueNoDefaultConfig tests loading a
// non-existent configuration file set in environment
func TestLoadingConfigurationEnvVariableBadValueNoDefaultConfig(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "non existing file")

	_, err := conf.LoadConfiguration(envVar, "")
	assert.Contains(t, err.Error(), `fatal error config file: Config File "non existing file" Not Found in`)
}

// TestLoadLoggingConfiguration tests loading the logging configuration sub-tree
func TestLoadLoggingConfiguration(t *testing.T) {
	config := loadConfig2(t)

	loggingCfg := conf.GetLoggingConfiguration(&config)

	assert.True(t, loggingCfg.Debug)
	assert.Equal(t, "", loggingCfg.LogLevel)
}

// TestLoadEvaluationConfiguration tests loading the evaluation configuration
// sub-tree
func TestLoadEvaluationConfiguration(t *testing.T) {
	config := loadConfig2(t)

	evaluationCfg := conf.GetEvaluationConfiguration(&config)

	assert.True(t, evaluationCfg.Verbose)
	assert.True(t, evaluationCfg.ContinueOnError)
	assert.Equal(t, conf.TraceOutputStdout, evaluationCfg.TraceOutput)
}

// TestLoadStorageConfiguration tests loading the storage configuration sub-tree
func TestLoadStorageConfiguration(t *testing.T) {
	config := loadConfig2(t)

	storageCfg := conf.GetStorageConfiguration(&config)

	assert.True(t, storageCfg.Enabled)
	assert.Equal(t, "postgres", storageCfg.Driver)
	assert.Equal(t, "user", storageCfg.PGUsername)
	assert.Equal(t, "password", storageCfg.PGPassword)
	assert.Equal(t, "localhost", storageCfg.PGHost)
	assert.Equal(t, 5432, storageCfg.PGPort)
	assert.Equal(t, "calculator", storageCfg.PGDBName)
	assert.Equal(t, "sslmode=disable", storageCfg.PGParams)
}

// TestLoadBrokerConfiguration tests loading the broker configuration sub-tree
func TestLoadBrokerConfiguration(t *testing.T) {
	config := loadConfig2(t)

	brokerCfg := conf.GetKafkaBrokerConfiguration(&config)

	assert.True(t, brokerCfg.Enabled)
	assert.Equal(t, "localhost:29092", brokerCfg.Addresses)
	assert.Equal(t, "SASL_SSL", brokerCfg.SecurityProtocol)
	assert.Equal(t, "SCRAM-SHA-512", brokerCfg.SaslMechanism)
	assert.Equal(t, "rpn_calculator_test_results", brokerCfg.Topic)
	assert.Equal(t, 20*time.Second, brokerCfg.Timeout)
}

// TestLoadMetricsConfiguration tests loading the metrics configuration
// sub-tree
func TestLoadMetricsConfiguration(t *testing.T) {
	config := loadConfig2(t)

	metricsCfg := conf.GetMetricsConfiguration(&config)

	assert.Equal(t, "rpn_calculator", metricsCfg.Job)
	assert.Equal(t, "rpn_calculator_namespace", metricsCfg.Namespace)
	assert.Equal(t, ":9091", metricsCfg.GatewayURL)
	assert.Equal(t, "", metricsCfg.GatewayAuthToken)
	assert.Equal(t, 3, metricsCfg.Retries)
	assert.Equal(t, time.Minute, metricsCfg.RetryAfter)
}

// TestLoadCleanerConfiguration tests loading the cleaner configuration
// sub-tree
func TestLoadCleanerConfiguration(t *testing.T) {
	config := loadConfig2(t)

	cleanerCfg := conf.GetCleanerConfiguration(&config)

	assert.Equal(t, "7 days", cleanerCfg.MaxAge)
}

// TestLoadConfigurationOverrideFromEnv tests overriding configuration file
// values from environment variables
func TestLoadConfigurationOverrideFromEnv(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config2")
	mustSetEnv(t, "RPN_CALCULATOR_LOGGING__LOG_LEVEL", "error")
	mustSetEnv(t, "RPN_CALCULATOR_CLEANER__MAX_AGE", "1 day")

	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")

	assert.Equal(t, "error", conf.GetLoggingConfiguration(&config).LogLevel)
	assert.Equal(t, "1 day", conf.GetCleanerConfiguration(&config).MaxAge)
}

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

package kafka_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/rpn-calculator/conf"
	"github.com/RedHatInsights/rpn-calculator/producer"
	"github.com/RedHatInsights/rpn-calculator/producer/kafka"
	"github.com/RedHatInsights/rpn-calculator/types"
)

var (
	brokerCfg = conf.KafkaConfiguration{
		Addresses: "localhost:9092",
		Topic:     "rpn_calculator_results",
		Timeout:   30 * time.Second,
		Enabled:   true,
	}
)

// check that Kafka producer implements the Producer interface
var _ producer.Producer = &kafka.Producer{}

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func evaluationMessage(t *testing.T) types.ProducerMessage {
	result := int32(7)
	msgBytes, err := json.Marshal(types.EvaluationEvent{
		RunID:       "run-1",
		LineNumber:  1,
		Expression:  "3 4 +",
		Result:      &result,
		EvaluatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	helpers.FailOnError(t, err)
	return msgBytes
}

// TestNewProducerBadBroker checks producer creation with a non accessible
// Kafka broker
func TestNewProducerBadBroker(t *testing.T) {
	_, err := kafka.New(&conf.ConfigStruct{
		Kafka: conf.KafkaConfiguration{
			Addresses: "",
			Topic:     "whatever",
			Timeout:   0,
			Enabled:   true,
		}})
	assert.Error(t, err)
}

// TestProducerClose makes sure it's possible to close the connection
func TestProducerClose(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	prod := kafka.Producer{
		Configuration: brokerCfg,
		Producer:      mockProducer,
	}

	err := prod.Close()
	assert.NoError(t, err, "failed to close Kafka producer")
}

// TestProducerSendEvaluationMessage checks that message is sent to broker
func TestProducerSendEvaluationMessage(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndSucceed()

	kafkaProducer := kafka.Producer{
		Configuration: brokerCfg,
		Producer:      mockProducer,
	}

	_, _, err := kafkaProducer.ProduceMessage(evaluationMessage(t))
	assert.NoError(t, err, "Couldn't produce message with given broker configuration")
	helpers.FailOnError(t, kafkaProducer.Close())
}

// TestProducerSendFailure checks that broker error is returned to caller
func TestProducerSendFailure(t *testing.T) {
	brokerError := errors.New("broker is not available")

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndFail(brokerError)

	kafkaProducer := kafka.Producer{
		Configuration: brokerCfg,
		Producer:      mockProducer,
	}

	_, _, err := kafkaProducer.ProduceMessage(evaluationMessage(t))
	assert.ErrorIs(t, err, brokerError)
	helpers.FailOnError(t, kafkaProducer.Close())
}

// TestProducerDisabledInConfiguration checks that no message is sent when
// broker is disabled
func TestProducerDisabledInConfiguration(t *testing.T) {
	// no expectations, so any sent message would fail the test
	mockProducer := mocks.NewSyncProducer(t, nil)

	disabledCfg := brokerCfg
	disabledCfg.Enabled = false

	kafkaProducer := kafka.Producer{
		Configuration: disabledCfg,
		Producer:      mockProducer,
	}

	partition, offset, err := kafkaProducer.ProduceMessage(evaluationMessage(t))
	assert.NoError(t, err)
	assert.Equal(t, int32(0), partition)
	assert.Equal(t, int64(0), offset)
	helpers.FailOnError(t, kafkaProducer.Close())
}

// TestSaramaConfigFromBrokerConfigNoSecurity checks the plain configuration
func TestSaramaConfigFromBrokerConfigNoSecurity(t *testing.T) {
	saramaConfig, err := kafka.SaramaConfigFromBrokerConfig(&brokerCfg)
	assert.Nil(t, err)
	assert.False(t, saramaConfig.Net.TLS.Enable)
	assert.False(t, saramaConfig.Net.SASL.Enable)
	assert.True(t, saramaConfig.Producer.Return.Successes)
	assert.Equal(t, brokerCfg.Timeout, saramaConfig.Net.DialTimeout)
}

// TestSaramaConfigFromBrokerWithSASLEnabledNoSASLMechanism function checks
// that the Sarama config returned for a broker configuration with SASL
// enabled contains the expected fields
func TestSaramaConfigFromBrokerWithSASLEnabledNoSASLMechanism(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Addresses:        "localhost:9092",
		Topic:            "rpn_calculator_results",
		Enabled:          true,
		SecurityProtocol: "SASL_",
		SaslUsername:     "sasl_user",
		SaslPassword:     "sasl_password",
		SaslMechanism:    "",
	}

	saramaConfig, err := kafka.SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Nil(t, err)
	assert.True(t, saramaConfig.Net.SASL.Enable)
	assert.Equal(t, saramaConfig.Net.SASL.User, brokerConfiguration.SaslUsername)
	assert.Equal(t, saramaConfig.Net.SASL.Password, brokerConfiguration.SaslPassword)
	assert.Nil(t, saramaConfig.Net.SASL.SCRAMClientGeneratorFunc, "SCRAM client generator function should not be created with given config")
}

// TestSaramaConfigFromBrokerWithSASLEnabledSCRAMAuth function checks that the
// Sarama config returned for a broker configuration with SASL enabled using
// SCRAM authentication mechanism contains expected fields
func TestSaramaConfigFromBrokerWithSASLEnabledSCRAMAuth(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Addresses:        "localhost:9092",
		Topic:            "rpn_calculator_results",
		Enabled:          true,
		SecurityProtocol: "SASL_SSL",
		SaslUsername:     "sasl_user",
		SaslPassword:     "sasl_password",
		SaslMechanism:    sarama.SASLTypeSCRAMSHA512,
	}

	saramaConfig, err := kafka.SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Nil(t, err)
	assert.True(t, saramaConfig.Net.TLS.Enable)
	assert.True(t, saramaConfig.Net.SASL.Enable)
	assert.True(t, saramaConfig.Net.SASL.Handshake)
	assert.NotNil(t, saramaConfig.Net.SASL.SCRAMClientGeneratorFunc, "SCRAM client generator function should have been created with given config")

	// the generated client must be able to start SCRAM conversation
	client := saramaConfig.Net.SASL.SCRAMClientGeneratorFunc()
	helpers.FailOnError(t, client.Begin("sasl_user", "sasl_password", ""))

	response, err := client.Step("")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(response, "n,,n=sasl_user,r="), response)
	assert.False(t, client.Done())
}

// TestSaramaConfigFromBrokerWithSASLEnabledUnexpectedAuthMechanism function
// checks that the Sarama config returned for a broker configuration with SASL
// enabled using unhandled authentication mechanism contains expected fields
func TestSaramaConfigFromBrokerWithSASLEnabledUnexpectedAuthMechanism(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Addresses:        "localhost:9092",
		Topic:            "rpn_calculator_results",
		Enabled:          true,
		SecurityProtocol: "SASL_",
		SaslUsername:     "sasl_user",
		SaslPassword:     "sasl_password",
		SaslMechanism:    sarama.SASLTypeSCRAMSHA256,
	}

	saramaConfig, err := kafka.SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Nil(t, err)
	assert.True(t, saramaConfig.Net.SASL.Enable)
	assert.Nil(t, saramaConfig.Net.SASL.SCRAMClientGeneratorFunc, "SCRAM client generator function should not be created with given config")
}

// TestSaramaConfigFromBrokerWithSSLAndMissingCert checks that missing
// certificate is reported
func TestSaramaConfigFromBrokerWithSSLAndMissingCert(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Addresses:        "localhost:9092",
		Topic:            "rpn_calculator_results",
		Enabled:          true,
		SecurityProtocol: "SSL",
		CertPath:         "/this/file/does/not/exist.pem",
	}

	_, err := kafka.SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Error(t, err)
}

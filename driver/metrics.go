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

// File metrics contains all metrics that needs to be exposed to Prometheus and
// indirectly to Grafana. The calculator is a short living process so metrics
// are pushed into the configured push gateway at the end of each run.

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-calculator/conf"
	"github.com/RedHatInsights/rpn-calculator/utils"
)

// Metrics names
const (
	LinesReadName            = "lines_read"
	ExpressionsEvaluatedName = "expressions_evaluated"
	EvaluationErrorsName     = "evaluation_errors"
	SourceErrorsName         = "source_errors"
	StorageSetupErrorsName   = "storage_setup_errors"
	StorageWriteErrorsName   = "storage_write_errors"
	ProducerSetupErrorsName  = "producer_setup_errors"
	MessagesProducedName     = "messages_produced"
	ProducerErrorsName       = "producer_errors"
)

// Metrics helps
const (
	LinesReadHelp            = "The total number of lines read from formula file or standard input"
	ExpressionsEvaluatedHelp = "The total number of successfully evaluated expressions"
	EvaluationErrorsHelp     = "The total number of expressions that could not be evaluated, by error kind"
	SourceErrorsHelp         = "The total number of errors when opening formula file"
	StorageSetupErrorsHelp   = "The total number of errors when setting up storage connection"
	StorageWriteErrorsHelp   = "The total number of errors when writing evaluation records into storage"
	ProducerSetupErrorsHelp  = "The total number of errors when setting up Kafka producer"
	MessagesProducedHelp     = "The total number of evaluation results sent to the configured Kafka topic"
	ProducerErrorsHelp       = "The total number of evaluation results not sent because of a Kafka producer error"
)

// errorKindLabel is label used to distinguish evaluation errors
const errorKindLabel = "kind"

// PushGatewayClient is a simple wrapper over http.Client so that prometheus
// can do HTTP requests with the given authentication header
type PushGatewayClient struct {
	AuthToken string

	httpClient http.Client
}

// Do is a simple wrapper over http.Client.Do method that includes
// the authentication header configured in the PushGatewayClient instance
func (pgc *PushGatewayClient) Do(request *http.Request) (*http.Response, error) {
	if pgc.AuthToken != "" {
		log.Debug().Msg("Adding authorization header to HTTP request")
		request.Header.Set("Authorization", "Basic "+pgc.AuthToken)
	} else {
		log.Debug().Msg("No authorization token provided. Making HTTP request without credentials.")
	}
	log.Debug().Str("request", request.URL.String()).Str("method", request.Method).Msg("Pushing metrics to Prometheus push gateway")
	resp, err := pgc.httpClient.Do(request)
	if resp != nil {
		log.Debug().Int("code", resp.StatusCode).Msg("Returned status code")
	}
	return resp, err
}

// LinesRead shows number of lines read from input
var LinesRead = promauto.NewCounter(prometheus.CounterOpts{
	Name: LinesReadName,
	Help: LinesReadHelp,
})

// ExpressionsEvaluated shows number of successfully evaluated expressions
var ExpressionsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
	Name: ExpressionsEvaluatedName,
	Help: ExpressionsEvaluatedHelp,
})

// EvaluationErrors shows number of failed evaluations by error kind
var EvaluationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: EvaluationErrorsName,
	Help: EvaluationErrorsHelp,
}, []string{errorKindLabel})

// SourceErrors shows number of errors when opening formula file
var SourceErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: SourceErrorsName,
	Help: SourceErrorsHelp,
})

// StorageSetupErrors shows number of errors when setting up storage
var StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: StorageSetupErrorsName,
	Help: StorageSetupErrorsHelp,
})

// StorageWriteErrors shows number of errors when writing into storage
var StorageWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: StorageWriteErrorsName,
	Help: StorageWriteErrorsHelp,
})

// ProducerSetupErrors shows number of errors when setting up Kafka producer
var ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ProducerSetupErrorsName,
	Help: ProducerSetupErrorsHelp,
})

// MessagesProduced shows number of messages sent to the configured Kafka topic
var MessagesProduced = promauto.NewCounter(prometheus.CounterOpts{
	Name: MessagesProducedName,
	Help: MessagesProducedHelp,
})

// ProducerErrors shows number of messages not sent because of a Kafka
// producer error
var ProducerErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ProducerErrorsName,
	Help: ProducerErrorsHelp,
})

// AddMetricsWithNamespace register the desired metrics using a given namespace
func AddMetricsWithNamespace(namespace string) {
	// Unregister all metrics and registrer them again
	prometheus.Unregister(LinesRead)
	prometheus.Unregister(ExpressionsEvaluated)
	prometheus.Unregister(EvaluationErrors)
	prometheus.Unregister(SourceErrors)
	prometheus.Unregister(StorageSetupErrors)
	prometheus.Unregister(StorageWriteErrors)
	prometheus.Unregister(ProducerSetupErrors)
	prometheus.Unregister(MessagesProduced)
	prometheus.Unregister(ProducerErrors)

	LinesRead = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      LinesReadName,
		Help:      LinesReadHelp,
	})

	ExpressionsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ExpressionsEvaluatedName,
		Help:      ExpressionsEvaluatedHelp,
	})

	EvaluationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      EvaluationErrorsName,
		Help:      EvaluationErrorsHelp,
	}, []string{errorKindLabel})

	SourceErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      SourceErrorsName,
		Help:      SourceErrorsHelp,
	})

	StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      StorageSetupErrorsName,
		Help:      StorageSetupErrorsHelp,
	})

	StorageWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      StorageWriteErrorsName,
		Help:      StorageWriteErrorsHelp,
	})

	ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ProducerSetupErrorsName,
		Help:      ProducerSetupErrorsHelp,
	})

	MessagesProduced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      MessagesProducedName,
		Help:      MessagesProducedHelp,
	})

	ProducerErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ProducerErrorsName,
		Help:      ProducerErrorsHelp,
	})
}

// PushMetrics function pushes the metrics to the configured prometheus push
// gateway
func PushMetrics(metricsConf conf.MetricsConfiguration) error {
	client := PushGatewayClient{metricsConf.GatewayAuthToken, http.Client{}}

	// Creates a pusher to the gateway "$PUSHGW_URL/metrics/job/$(job_name)
	return push.New(utils.SetHTTPPrefix(metricsConf.GatewayURL), metricsConf.Job).
		Collector(LinesRead).
		Collector(ExpressionsEvaluated).
		Collector(EvaluationErrors).
		Collector(SourceErrors).
		Collector(StorageSetupErrors).
		Collector(StorageWriteErrors).
		Collector(ProducerSetupErrors).
		Collector(MessagesProduced).
		Collector(ProducerErrors).
		Client(&client).
		Push()
}

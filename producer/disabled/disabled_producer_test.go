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

package disabled_test

import (
	"encoding/json"
	"testing"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/rpn-calculator/producer"
	"github.com/RedHatInsights/rpn-calculator/producer/disabled"
	"github.com/RedHatInsights/rpn-calculator/types"
)

// check that disabled producer implements the Producer interface
var _ producer.Producer = &disabled.Producer{}

func TestDisabledProducer(t *testing.T) {
	p := disabled.Producer{}

	msgBytes, err := json.Marshal(types.EvaluationEvent{})
	helpers.FailOnError(t, err)

	partition, offset, err := p.ProduceMessage(msgBytes)
	assert.NoError(t, err, "error producing message")
	assert.Equal(t, int32(0), partition)
	assert.Equal(t, int64(-1), offset)
	assert.NoError(t, p.Close(), "error closing producer")
}

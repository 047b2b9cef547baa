// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespaceAPI = "anchor_api"

// Outcomes of a handled request.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeFailure  = "failure"
)

// Requests counts handled requests per handler and outcome.
type Requests struct {
	total *prometheus.CounterVec
}

// NewRequests creates the request counters and registers them with the given
// registerer.
func NewRequests(registerer prometheus.Registerer) *Requests {
	totalOpts := prometheus.CounterOpts{
		Name:      "requests_total",
		Namespace: namespaceAPI,
		Help:      "number of handled requests",
	}
	total := promauto.With(registerer).NewCounterVec(totalOpts, []string{"handler", "outcome"})

	r := Requests{
		total: total,
	}

	return &r
}

func (r *Requests) Request(handler string, outcome string) {
	r.total.WithLabelValues(handler, outcome).Inc()
}

// Noop discards all recorded requests.
type Noop struct{}

func (Noop) Request(string, string) {}

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

package connection

import (
	"time"

	"github.com/optakt/anchor-api/models/network"
)

var DefaultConfig = Config{
	Endpoints: network.Endpoints,
	Timeout:   30 * time.Second,
}

// Config is the configuration of a connection factory.
type Config struct {
	Endpoints map[network.Cluster]string
	Timeout   time.Duration
}

type Option func(*Config)

// WithEndpoint overrides the RPC endpoint used for a cluster.
func WithEndpoint(cluster network.Cluster, endpoint string) Option {
	return func(cfg *Config) {
		endpoints := make(map[network.Cluster]string, len(cfg.Endpoints)+1)
		for c, e := range cfg.Endpoints {
			endpoints[c] = e
		}
		endpoints[cluster] = endpoint
		cfg.Endpoints = endpoints
	}
}

// WithTimeout sets the timeout of outbound RPC requests.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.Timeout = timeout
	}
}

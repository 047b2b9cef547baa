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

package mocks

import (
	"testing"

	"github.com/optakt/anchor-api/models/network"
	"github.com/optakt/anchor-api/service/connection"
)

type Connector struct {
	ConnectFunc func(cluster network.Cluster) (*connection.Connection, error)
}

// BaselineConnector returns a connector whose connections use the given RPC
// client.
func BaselineConnector(t *testing.T, client connection.RPCClient) *Connector {
	t.Helper()

	c := Connector{
		ConnectFunc: func(network.Cluster) (*connection.Connection, error) {
			return connection.New(client, GenericIdentity), nil
		},
	}

	return &c
}

func (c *Connector) Connect(cluster network.Cluster) (*connection.Connection, error) {
	return c.ConnectFunc(cluster)
}

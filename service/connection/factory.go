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
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/optakt/anchor-api/models/network"
)

// Factory opens connections to the configured clusters.
type Factory struct {
	cfg Config
}

// NewFactory returns a factory with the given options applied to the default
// configuration.
func NewFactory(options ...Option) *Factory {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	f := Factory{
		cfg: cfg,
	}

	return &f
}

// Connect opens a connection to the given cluster with a freshly generated
// identity.
func (f *Factory) Connect(cluster network.Cluster) (*Connection, error) {

	endpoint, ok := f.cfg.Endpoints[cluster]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCluster, cluster)
	}

	wallet := solana.NewWallet()

	client := rpc.NewWithCustomRPCClient(jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{
			Timeout: f.cfg.Timeout,
		},
	}))

	return New(client, wallet.PublicKey()), nil
}

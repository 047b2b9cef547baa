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

package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/anchor-api/models/network"
)

func TestCluster_Valid(t *testing.T) {
	tests := []struct {
		cluster network.Cluster
		want    bool
	}{
		{cluster: network.MainnetBeta, want: true},
		{cluster: network.Testnet, want: true},
		{cluster: network.Devnet, want: true},
		{cluster: "localnet", want: false},
		{cluster: "Mainnet-Beta", want: false},
		{cluster: "", want: false},
	}

	for _, test := range tests {
		test := test
		t.Run(string(test.cluster), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, test.cluster.Valid())
		})
	}
}

func TestEndpoints(t *testing.T) {
	assert.Equal(t, network.MainnetBeta, network.Default)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", network.Endpoints[network.MainnetBeta])
	assert.Equal(t, "https://api.testnet.solana.com", network.Endpoints[network.Testnet])
	assert.Equal(t, "https://api.devnet.solana.com", network.Endpoints[network.Devnet])

	assert.Len(t, network.Clusters(), len(network.Endpoints))
	for _, cluster := range network.Clusters() {
		assert.True(t, cluster.Valid())
	}
}

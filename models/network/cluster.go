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

package network

import (
	"github.com/gagliardetto/solana-go/rpc"
)

// Cluster is the name of one of the public Solana clusters.
type Cluster string

const (
	MainnetBeta Cluster = "mainnet-beta"
	Testnet     Cluster = "testnet"
	Devnet      Cluster = "devnet"
)

// Default is the cluster used when a request does not name one.
const Default = MainnetBeta

// Endpoints maps each known cluster to its public RPC endpoint. Deployments
// can point clusters at other endpoints through the configuration, but the set
// of cluster names is closed.
var Endpoints = map[Cluster]string{
	MainnetBeta: rpc.MainNetBeta_RPC,
	Testnet:     rpc.TestNet_RPC,
	Devnet:      rpc.DevNet_RPC,
}

func (c Cluster) String() string {
	return string(c)
}

// Valid returns whether the cluster is part of the known set.
func (c Cluster) Valid() bool {
	_, ok := Endpoints[c]
	return ok
}

// Clusters returns the known clusters in a stable order.
func Clusters() []Cluster {
	return []Cluster{MainnetBeta, Testnet, Devnet}
}

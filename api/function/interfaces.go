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

package function

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/anchor-api/anchor/decoder"
	"github.com/optakt/anchor-api/models/anchor"
	"github.com/optakt/anchor-api/models/network"
	"github.com/optakt/anchor-api/service/connection"
)

type Validator interface {
	Request(request interface{}) error
}

type Connector interface {
	Connect(cluster network.Cluster) (*connection.Connection, error)
}

type Resolver interface {
	IDL(program solana.PublicKey) (solana.PublicKey, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, account solana.PublicKey, cluster network.Cluster) ([]byte, error)
}

type Decoder interface {
	Account(idl *anchor.IDL, name string, data []byte) (*decoder.Object, error)
}

type Recorder interface {
	Request(handler string, outcome string)
}

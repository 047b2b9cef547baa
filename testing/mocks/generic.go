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
	"errors"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/optakt/anchor-api/anchor/decoder"
	"github.com/optakt/anchor-api/models/network"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test the API components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericBytes = []byte(`test`)

	GenericCluster = network.Devnet

	GenericProgramID  = solana.MustPublicKeyFromBase58("GrAkKfEpTKQuVHG2Y97Y2FF4i7y7Q5AHLK94JBy7Y5yv")
	GenericAccountID  = solana.MustPublicKeyFromBase58("43JchZn2K9ZD1dAfP9hTNUSWFvWYhK8df7R5RKeVQB2G")
	GenericIDLAddress = solana.MustPublicKeyFromBase58("4Q6WW2ouZ6V3iaNm56MTd5n2tnTm4C5fiH8miFHnAFHo")
	GenericIdentity   = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")

	GenericAccountType = "registrar"

	GenericIDL = []byte(`{
  "version": "0.2.0",
  "name": "voter_stake_registry",
  "instructions": [],
  "accounts": [
    {
      "name": "Registrar",
      "type": {
        "kind": "struct",
        "fields": [
          {"name": "governanceProgramId", "type": "publicKey"},
          {"name": "bump", "type": "u8"}
        ]
      }
    }
  ]
}`)

	GenericObject = genericObject()
)

// AccountInfo wraps raw account data into an RPC result.
func AccountInfo(data []byte) *rpc.GetAccountInfoResult {
	return &rpc.GetAccountInfoResult{
		Value: &rpc.Account{
			Owner: GenericProgramID,
			Data:  rpc.DataBytesOrJSONFromBytes(data),
		},
	}
}

func genericObject() *decoder.Object {
	object := decoder.NewObject()
	object.Set("governanceProgramId", GenericProgramID.String())
	object.Set("bump", uint8(254))
	return object
}

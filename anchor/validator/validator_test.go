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

package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/anchor-api/anchor/validator"
	"github.com/optakt/anchor-api/api/function"
	"github.com/optakt/anchor-api/testing/mocks"
)

func TestValidator_Request(t *testing.T) {
	program := mocks.GenericProgramID.String()
	account := mocks.GenericAccountID.String()

	tests := []struct {
		desc    string
		request interface{}
		wantErr error
	}{
		{
			desc: "valid account decoder request",
			request: function.DeserialiseRequest{
				ProgramID:   program,
				AccountType: "registrar",
				AccountID:   account,
				Cluster:     "mainnet-beta",
			},
			wantErr: nil,
		},
		{
			desc: "valid account decoder request on devnet",
			request: function.DeserialiseRequest{
				ProgramID:   program,
				AccountType: "registrar",
				AccountID:   account,
				Cluster:     "devnet",
			},
			wantErr: nil,
		},
		{
			desc:    "missing program ID reported first",
			request: function.DeserialiseRequest{Cluster: "nowhere"},
			wantErr: function.ErrProgramEmpty,
		},
		{
			desc: "missing account type",
			request: function.DeserialiseRequest{
				ProgramID: "not base58!",
				AccountID: account,
				Cluster:   "mainnet-beta",
			},
			wantErr: function.ErrAccountTypeEmpty,
		},
		{
			desc: "missing account ID",
			request: function.DeserialiseRequest{
				ProgramID:   program,
				AccountType: "registrar",
				Cluster:     "mainnet-beta",
			},
			wantErr: function.ErrAccountEmpty,
		},
		{
			desc: "unknown cluster reported before invalid program",
			request: function.DeserialiseRequest{
				ProgramID:   "invalid",
				AccountType: "registrar",
				AccountID:   account,
				Cluster:     "localnet",
			},
			wantErr: function.ErrClusterInvalid,
		},
		{
			desc: "empty cluster",
			request: function.DeserialiseRequest{
				ProgramID:   program,
				AccountType: "registrar",
				AccountID:   account,
			},
			wantErr: function.ErrClusterInvalid,
		},
		{
			desc: "invalid program ID",
			request: function.DeserialiseRequest{
				ProgramID:   "0OIl",
				AccountType: "registrar",
				AccountID:   account,
				Cluster:     "testnet",
			},
			wantErr: function.ErrProgramInvalid,
		},
		{
			desc: "program ID of wrong length",
			request: function.DeserialiseRequest{
				ProgramID:   "3xyZ",
				AccountType: "registrar",
				AccountID:   account,
				Cluster:     "testnet",
			},
			wantErr: function.ErrProgramInvalid,
		},
		{
			desc: "invalid account ID",
			request: function.DeserialiseRequest{
				ProgramID:   program,
				AccountType: "registrar",
				AccountID:   "invalid",
				Cluster:     "testnet",
			},
			wantErr: function.ErrProgramInvalid,
		},
		{
			desc: "valid IDL request",
			request: function.IDLRequest{
				IDLAccountID: account,
				Cluster:      "testnet",
			},
			wantErr: nil,
		},
		{
			desc:    "missing IDL account ID",
			request: function.IDLRequest{Cluster: "testnet"},
			wantErr: function.ErrIDLAccountEmpty,
		},
		{
			desc:    "missing cluster",
			request: function.IDLRequest{IDLAccountID: account},
			wantErr: function.ErrClusterEmpty,
		},
		{
			desc: "unknown cluster",
			request: function.IDLRequest{
				IDLAccountID: "invalid",
				Cluster:      "Mainnet-Beta",
			},
			wantErr: function.ErrClusterInvalid,
		},
		{
			desc: "invalid IDL account ID",
			request: function.IDLRequest{
				IDLAccountID: "invalid",
				Cluster:      "devnet",
			},
			wantErr: function.ErrIDLAccountInvalid,
		},
		{
			desc:    "not a struct",
			request: "programId",
			wantErr: function.ErrInvalidValidation,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			v := validator.New()

			err := v.Request(test.request)

			if test.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

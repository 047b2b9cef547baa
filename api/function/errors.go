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
	"errors"
)

// Validation tags. Each one identifies a failed check on a request and maps to
// exactly one of the sentinel errors below.
const (
	ParamsEmpty       = "params_empty"
	ProgramEmpty      = "program_empty"
	AccountTypeEmpty  = "account_type_empty"
	AccountEmpty      = "account_empty"
	IDLAccountEmpty   = "idl_account_empty"
	ClusterEmpty      = "cluster_empty"
	ClusterInvalid    = "cluster_invalid"
	ProgramInvalid    = "program_invalid"
	IDLAccountInvalid = "idl_account_invalid"
)

// Error messages returned to callers.
var (
	ErrInvalidValidation = errors.New("invalid validation input")

	ErrParamsEmpty       = errors.New("No query string parameters provided")
	ErrProgramEmpty      = errors.New("No program ID provided")
	ErrAccountTypeEmpty  = errors.New("No account type provided")
	ErrAccountEmpty      = errors.New("No accountID provided")
	ErrIDLAccountEmpty   = errors.New("No IDL account ID provided")
	ErrClusterEmpty      = errors.New("No cluster provided")
	ErrClusterInvalid    = errors.New("Invalid cluster provided")
	ErrProgramInvalid    = errors.New("Invalid program ID")
	ErrIDLAccountInvalid = errors.New("Invalid IDL account ID")

	ErrFetchIDL     = errors.New("Error fetching IDL")
	ErrRetrieveData = errors.New("Error retrieving account data")
	ErrIDLNotFound  = errors.New("IDL account not found")
	ErrDecodeIDL    = errors.New("Error decoding IDL")
)
